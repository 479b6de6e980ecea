package automation

import (
	"fmt"
	"sort"
	"time"

	"nexmind-be/internal/entity"
	"nexmind-be/pkg/similarity"

	"github.com/google/uuid"
)

const (
	staleTaskAfter    = 7 * 24 * time.Hour
	minUntaggedNotes  = 5
	recentClusterSize = 20
	maxActionItems    = 2
)

var actionConfidence = map[entity.TaskPriority]float64{
	entity.PriorityHigh:   0.9,
	entity.PriorityMedium: 0.7,
	entity.PriorityLow:    0.5,
}

var priorityRank = map[entity.TaskPriority]int{
	entity.PriorityHigh:   0,
	entity.PriorityMedium: 1,
	entity.PriorityLow:    2,
}

// detectNextActions surfaces what the user should do next: overdue work
// first, then stale in-progress tasks and recent duplicate clusters, then
// low-priority tidying.
func (e *Engine) detectNextActions(notes []*entity.Note, now time.Time) ([]candidate, error) {
	var candidates []candidate
	today := now.Format("2006-01-02")

	var overdue, stale, untagged []uuid.UUID
	for _, note := range notes {
		if note.IsOpenTask() && note.DueDate != nil && *note.DueDate < today {
			overdue = append(overdue, note.Id)
		}
		if note.Category == entity.CategoryTask &&
			note.TaskStatus != nil && *note.TaskStatus == entity.TaskInProgress &&
			now.Sub(note.LastTouched()) > staleTaskAfter {
			stale = append(stale, note.Id)
		}
		if len(note.Entities.Topics) == 0 {
			untagged = append(untagged, note.Id)
		}
	}

	if len(overdue) > 0 {
		candidates = append(candidates, actionCandidate(ActionOverdueTasks, entity.PriorityHigh, overdue,
			fmt.Sprintf("%d task(s) are past their due date.", len(overdue)),
			"Work through overdue tasks"))
	}

	if len(stale) > 0 {
		candidates = append(candidates, actionCandidate(ActionStaleTasks, entity.PriorityMedium, stale,
			fmt.Sprintf("%d in-progress task(s) have not moved in over a week.", len(stale)),
			"Revisit stalled tasks"))
	}

	clusters, err := recentDuplicateClusters(notes)
	if err != nil {
		return nil, err
	}
	for _, cluster := range clusters {
		candidates = append(candidates, actionCandidate(ActionReviewCluster, entity.PriorityMedium, cluster,
			fmt.Sprintf("%d recent notes overlap heavily.", len(cluster)),
			fmt.Sprintf("Review %d overlapping recent notes", len(cluster))))
	}

	if len(untagged) >= minUntaggedNotes {
		candidates = append(candidates, actionCandidate(ActionUntaggedNotes, entity.PriorityLow, untagged,
			fmt.Sprintf("%d notes carry no topic tag, which weakens clustering.", len(untagged)),
			"Tag topic-less notes"))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pi := candidates[i].Payload.(ActionPayload).Priority
		pj := candidates[j].Payload.(ActionPayload).Priority
		return priorityRank[pi] < priorityRank[pj]
	})
	if len(candidates) > maxActionItems {
		candidates = candidates[:maxActionItems]
	}
	return candidates, nil
}

func actionCandidate(kind ActionKind, priority entity.TaskPriority, ids []uuid.UUID, description, title string) candidate {
	return candidate{
		Type:        entity.SuggestionAction,
		Title:       title,
		Description: description,
		Confidence:  actionConfidence[priority],
		Payload: ActionPayload{
			Kind:     kind,
			Priority: priority,
			NoteIds:  ids,
		},
	}
}

func recentDuplicateClusters(notes []*entity.Note) ([][]uuid.UUID, error) {
	window := notes
	if len(window) > recentClusterSize {
		window = window[:recentClusterSize]
	}

	cands := make([]similarity.Candidate, 0, len(window))
	for _, n := range window {
		cands = append(cands, similarity.Candidate{Id: n.Id, Vector: n.Embedding})
	}

	clusters, err := similarity.Clusters(cands, duplicateThreshold)
	if err != nil {
		return nil, err
	}

	var out [][]uuid.UUID
	for _, c := range clusters {
		if len(c) >= 2 {
			out = append(out, c)
		}
	}
	return out, nil
}
