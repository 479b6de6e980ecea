package automation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"nexmind-be/internal/entity"
)

const (
	outdatedAfter     = 90 * 24 * time.Hour
	veryOutdatedAfter = 180 * 24 * time.Hour

	confidenceOutdated     = 0.6
	confidenceVeryOutdated = 0.9
	confidenceIncomplete   = 0.8
	confidenceTooShort     = 0.7
	confidenceNoEntities   = 0.5

	shortTaskChars  = 15
	maxCleanupItems = 3
)

// detectCleanup flags outdated, incomplete, and ambiguous notes and keeps
// only the highest-confidence few per run.
func (e *Engine) detectCleanup(notes []*entity.Note, now time.Time) []candidate {
	var candidates []candidate

	for _, note := range notes {
		age := now.Sub(note.LastTouched())

		switch {
		case age > veryOutdatedAfter:
			candidates = append(candidates, cleanupCandidate(note, CleanupOutdated, confidenceVeryOutdated,
				fmt.Sprintf("Untouched for %d days. Archive or delete?", int(age.Hours()/24))))
		case age > outdatedAfter:
			candidates = append(candidates, cleanupCandidate(note, CleanupOutdated, confidenceOutdated,
				fmt.Sprintf("Untouched for %d days. Still relevant?", int(age.Hours()/24))))
		}

		if note.IsOpenTask() &&
			(note.DueDate == nil || note.TaskPriority == nil || len(note.Content) < shortTaskChars) {
			candidates = append(candidates, cleanupCandidate(note, CleanupIncomplete, confidenceIncomplete,
				"Open task is missing a due date, a priority, or a usable description."))
		}

		words := len(strings.Fields(note.Content))
		switch {
		case words < 3:
			candidates = append(candidates, cleanupCandidate(note, CleanupAmbiguous, confidenceTooShort,
				"Too short to be useful later."))
		case words > 5 && note.Entities.IsEmpty():
			candidates = append(candidates, cleanupCandidate(note, CleanupAmbiguous, confidenceNoEntities,
				"No people, places, projects, or topics could be extracted."))
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if len(candidates) > maxCleanupItems {
		candidates = candidates[:maxCleanupItems]
	}
	return candidates
}

func cleanupCandidate(note *entity.Note, kind CleanupKind, confidence float64, reason string) candidate {
	return candidate{
		Type:        entity.SuggestionCleanup,
		Title:       fmt.Sprintf("Clean up (%s): %q", kind, snippet(note.Content, 40)),
		Description: reason,
		Confidence:  confidence,
		Payload: CleanupPayload{
			NoteId: note.Id,
			Kind:   kind,
		},
	}
}
