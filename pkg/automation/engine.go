package automation

import (
	"fmt"
	"sort"
	"time"

	"nexmind-be/internal/entity"
	"nexmind-be/pkg/graph"

	"github.com/google/uuid"
)

// candidate is a detector result before it becomes a stored suggestion.
type candidate struct {
	Type        entity.SuggestionType
	Title       string
	Description string
	Confidence  float64
	Payload     interface{}
}

// Input is one immutable snapshot the engine runs over. The engine never
// mutates the snapshot; a concurrent note edit racing a run yields at worst
// a suggestion against slightly stale data, which is accepted.
type Input struct {
	UserId  uuid.UUID
	Notes   []*entity.Note       // the user's full live note set
	Graph   *graph.Graph         // current knowledge graph for the user
	Pending []*entity.Suggestion // existing pending suggestions, for dedupe
	Now     time.Time
}

// Engine is the fixed detector pipeline. Stateless; safe to share.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Run executes every detector and returns the new suggestions, sorted by
// descending confidence. Candidates whose (type, title) matches an existing
// pending suggestion are dropped, so re-running over an unchanged snapshot
// produces nothing new.
func (e *Engine) Run(in Input) ([]*entity.Suggestion, error) {
	notes := sortedNewestFirst(in.Notes)

	var candidates []candidate

	dups, err := e.detectDuplicates(notes)
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, dups...)

	notesById := make(map[uuid.UUID]*entity.Note, len(notes))
	for _, n := range notes {
		notesById[n.Id] = n
	}
	if in.Graph != nil {
		candidates = append(candidates, e.detectEmergingProjects(in.Graph, notesById)...)
	}

	candidates = append(candidates, e.detectCleanup(notes, in.Now)...)

	actions, err := e.detectNextActions(notes, in.Now)
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, actions...)

	pending := make(map[string]bool, len(in.Pending))
	for _, s := range in.Pending {
		if s.Status == entity.SuggestionPending {
			pending[dedupeKey(s.Type, s.Title)] = true
		}
	}

	var suggestions []*entity.Suggestion
	for _, c := range candidates {
		key := dedupeKey(c.Type, c.Title)
		if pending[key] {
			continue
		}
		pending[key] = true

		payload, err := EncodePayload(c.Payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", c.Type, err)
		}
		suggestions = append(suggestions, &entity.Suggestion{
			Id:          uuid.New(),
			UserId:      in.UserId,
			Type:        c.Type,
			Title:       c.Title,
			Description: c.Description,
			Payload:     payload,
			Confidence:  c.Confidence,
			Status:      entity.SuggestionPending,
			CreatedAt:   in.Now,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions, nil
}

func dedupeKey(t entity.SuggestionType, title string) string {
	return string(t) + "|" + title
}

func sortedNewestFirst(notes []*entity.Note) []*entity.Note {
	sorted := make([]*entity.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastTouched().After(sorted[j].LastTouched())
	})
	return sorted
}
