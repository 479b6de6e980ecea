// Package automation runs the heuristic detectors that turn the note set
// and knowledge graph into ranked suggestions: duplicate merges, emerging
// projects, cleanup flags, and next actions.
package automation

import (
	"encoding/json"
	"fmt"

	"nexmind-be/internal/entity"

	"github.com/google/uuid"
)

// Suggestion payloads form a tagged union keyed by the suggestion type:
// exactly one payload shape exists per type, and DecodePayload dispatches
// exhaustively on the tag.

// DuplicatePayload proposes merging a cluster of near-identical notes.
type DuplicatePayload struct {
	NoteIds       []uuid.UUID      `json:"note_ids"`
	MergedContent string           `json:"merged_content"`
	Entities      entity.EntityBag `json:"entities"`
}

// EmergingProjectPayload marks a topic whose notes behave like a project.
type EmergingProjectPayload struct {
	Topic       string      `json:"topic"`
	NoteIds     []uuid.UUID `json:"note_ids"`
	TaskCount   int         `json:"task_count"`
	PersonCount int         `json:"person_count"`
}

// ProjectPairPayload marks two topics that co-occur often enough to be one
// project.
type ProjectPairPayload struct {
	Topics        [2]string   `json:"topics"`
	SharedNoteIds []uuid.UUID `json:"shared_note_ids"`
}

type CleanupKind string

const (
	CleanupOutdated   CleanupKind = "outdated"
	CleanupIncomplete CleanupKind = "incomplete"
	CleanupAmbiguous  CleanupKind = "ambiguous"
)

// CleanupPayload flags a single note for attention.
type CleanupPayload struct {
	NoteId uuid.UUID   `json:"note_id"`
	Kind   CleanupKind `json:"kind"`
}

type ActionKind string

const (
	ActionOverdueTasks  ActionKind = "overdue_tasks"
	ActionUntaggedNotes ActionKind = "untagged_notes"
	ActionStaleTasks    ActionKind = "stale_tasks"
	ActionReviewCluster ActionKind = "review_cluster"
)

// ActionPayload proposes a concrete next step over a set of notes.
type ActionPayload struct {
	Kind     ActionKind          `json:"kind"`
	Priority entity.TaskPriority `json:"priority"`
	NoteIds  []uuid.UUID         `json:"note_ids"`
}

// EncodePayload serializes a variant payload for storage.
func EncodePayload(payload interface{}) ([]byte, error) {
	return json.Marshal(payload)
}

// DecodePayload deserializes stored payload bytes into the variant matching
// the suggestion type. Adding a suggestion type without extending this
// switch is a bug caught by the default branch.
func DecodePayload(suggestionType entity.SuggestionType, data []byte) (interface{}, error) {
	switch suggestionType {
	case entity.SuggestionDuplicate:
		var p DuplicatePayload
		return &p, json.Unmarshal(data, &p)
	case entity.SuggestionEmergingProject:
		var p EmergingProjectPayload
		return &p, json.Unmarshal(data, &p)
	case entity.SuggestionProject:
		var p ProjectPairPayload
		return &p, json.Unmarshal(data, &p)
	case entity.SuggestionCleanup:
		var p CleanupPayload
		return &p, json.Unmarshal(data, &p)
	case entity.SuggestionAction:
		var p ActionPayload
		return &p, json.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("unknown suggestion type %q", suggestionType)
	}
}
