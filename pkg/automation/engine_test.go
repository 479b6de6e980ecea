package automation

import (
	"testing"
	"time"

	"nexmind-be/internal/entity"
	"nexmind-be/pkg/graph"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC)

func note(content string, vec []float32, age time.Duration) *entity.Note {
	return &entity.Note{
		Id:        uuid.New(),
		Content:   content,
		Category:  entity.CategoryInfo,
		Embedding: vec,
		CreatedAt: now.Add(-age),
	}
}

func runEngine(t *testing.T, notes []*entity.Note, pending []*entity.Suggestion) []*entity.Suggestion {
	t.Helper()
	g, err := graph.NewBuilder().Rebuild(notes)
	require.NoError(t, err)

	out, err := NewEngine().Run(Input{
		UserId:  uuid.New(),
		Notes:   notes,
		Graph:   g,
		Pending: pending,
		Now:     now,
	})
	require.NoError(t, err)
	return out
}

func ofType(suggestions []*entity.Suggestion, t entity.SuggestionType) []*entity.Suggestion {
	var out []*entity.Suggestion
	for _, s := range suggestions {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

func TestDuplicateDetectionGroupsOnlyCloseNotes(t *testing.T) {
	a := note("quarterly budget review meeting notes", []float32{1, 0}, time.Hour)
	b := note("quarterly budget review meeting notes", []float32{0.99, 0.1}, 2*time.Hour)
	c := note("completely different topic here", []float32{0.5, 0.866}, 3*time.Hour)

	suggestions := runEngine(t, []*entity.Note{a, b, c}, nil)
	dups := ofType(suggestions, entity.SuggestionDuplicate)
	require.Len(t, dups, 1)

	payload, err := DecodePayload(entity.SuggestionDuplicate, dups[0].Payload)
	require.NoError(t, err)
	dp := payload.(*DuplicatePayload)
	assert.ElementsMatch(t, []uuid.UUID{a.Id, b.Id}, dp.NoteIds)
	assert.Equal(t, confidenceIdentical, dups[0].Confidence)
}

func TestDuplicateConfidenceLowerWhenContentsDiffer(t *testing.T) {
	a := note("buy milk at the store", []float32{1, 0.01}, time.Hour)
	b := note("buy milk from the store", []float32{0.99, 0.02}, 2*time.Hour)

	suggestions := runEngine(t, []*entity.Note{a, b}, nil)
	dups := ofType(suggestions, entity.SuggestionDuplicate)
	require.Len(t, dups, 1)
	assert.Equal(t, confidenceSimilar, dups[0].Confidence)

	payload, err := DecodePayload(entity.SuggestionDuplicate, dups[0].Payload)
	require.NoError(t, err)
	assert.Contains(t, payload.(*DuplicatePayload).MergedContent, "buy milk at the store")
	assert.Contains(t, payload.(*DuplicatePayload).MergedContent, "buy milk from the store")
}

func TestSuggestionsSortedByConfidenceDesc(t *testing.T) {
	a := note("identical duplicate content", []float32{1, 0}, time.Hour)
	b := note("identical duplicate content", []float32{1, 0}, 2*time.Hour)
	old := note("forgotten note from long ago still around", []float32{0, 1}, 200*24*time.Hour)

	suggestions := runEngine(t, []*entity.Note{a, b, old}, nil)
	require.NotEmpty(t, suggestions)
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Confidence, suggestions[i].Confidence)
	}
}

func TestRerunDoesNotDuplicatePending(t *testing.T) {
	a := note("identical duplicate content", []float32{1, 0}, time.Hour)
	b := note("identical duplicate content", []float32{1, 0}, 2*time.Hour)
	notes := []*entity.Note{a, b}

	first := runEngine(t, notes, nil)
	require.NotEmpty(t, first)

	second := runEngine(t, notes, first)
	for _, s := range second {
		for _, p := range first {
			assert.False(t, s.Type == p.Type && s.Title == p.Title,
				"re-run re-emitted pending suggestion %s/%s", s.Type, s.Title)
		}
	}
}

func TestAcceptedSuggestionsDoNotBlockReemission(t *testing.T) {
	a := note("identical duplicate content", []float32{1, 0}, time.Hour)
	b := note("identical duplicate content", []float32{1, 0}, 2*time.Hour)
	notes := []*entity.Note{a, b}

	first := runEngine(t, notes, nil)
	require.NotEmpty(t, first)
	for _, s := range first {
		s.Status = entity.SuggestionRejected
	}

	second := runEngine(t, notes, first)
	dups := ofType(second, entity.SuggestionDuplicate)
	assert.NotEmpty(t, dups, "rejected suggestions should not suppress new runs")
}

func TestEmergingProjectDetection(t *testing.T) {
	var notes []*entity.Note
	for i := 0; i < 3; i++ {
		n := note("plan the relaunch work item", nil, time.Duration(i)*time.Hour)
		n.Category = entity.CategoryTask
		n.Entities = entity.EntityBag{
			Topics:  []string{"relaunch"},
			Persons: []string{"Anna", "Jonas"},
		}
		notes = append(notes, n)
	}

	suggestions := runEngine(t, notes, nil)
	emerging := ofType(suggestions, entity.SuggestionEmergingProject)
	require.Len(t, emerging, 1)
	// 0.2 base + 0.4 task signal + 0.2 for two people
	assert.InDelta(t, 0.8, emerging[0].Confidence, 1e-9)

	payload, err := DecodePayload(entity.SuggestionEmergingProject, emerging[0].Payload)
	require.NoError(t, err)
	ep := payload.(*EmergingProjectPayload)
	assert.Equal(t, 3, ep.TaskCount)
	assert.Equal(t, 2, ep.PersonCount)
}

func TestEmergingProjectSkippedWhenProjectExists(t *testing.T) {
	var notes []*entity.Note
	for i := 0; i < 3; i++ {
		n := note("relaunch work item", nil, time.Duration(i)*time.Hour)
		n.Category = entity.CategoryTask
		n.Entities = entity.EntityBag{
			Topics:   []string{"relaunch"},
			Projects: []string{"Relaunch"},
		}
		notes = append(notes, n)
	}

	suggestions := runEngine(t, notes, nil)
	assert.Empty(t, ofType(suggestions, entity.SuggestionEmergingProject))
}

func TestCleanupOutdatedConfidenceSteps(t *testing.T) {
	old := note("an old note with plenty of words inside", nil, 100*24*time.Hour)
	old.Entities.Topics = []string{"something"}
	veryOld := note("an even older note with plenty of words", nil, 200*24*time.Hour)
	veryOld.Entities.Topics = []string{"something"}

	suggestions := runEngine(t, []*entity.Note{old, veryOld}, nil)
	cleanup := ofType(suggestions, entity.SuggestionCleanup)
	require.Len(t, cleanup, 2)
	assert.Equal(t, confidenceVeryOutdated, cleanup[0].Confidence)
	assert.Equal(t, confidenceOutdated, cleanup[1].Confidence)
}

func TestCleanupIncompleteTask(t *testing.T) {
	task := note("fix the login bug on staging", nil, time.Hour)
	task.Category = entity.CategoryTask
	task.Entities.Topics = []string{"staging"}
	// no due date, no priority

	suggestions := runEngine(t, []*entity.Note{task}, nil)
	cleanup := ofType(suggestions, entity.SuggestionCleanup)
	require.NotEmpty(t, cleanup)
	assert.Equal(t, confidenceIncomplete, cleanup[0].Confidence)
}

func TestCleanupCapsAtThree(t *testing.T) {
	var notes []*entity.Note
	for i := 0; i < 6; i++ {
		notes = append(notes, note("hm", nil, time.Duration(i)*time.Hour)) // under 3 words
	}

	suggestions := runEngine(t, notes, nil)
	assert.LessOrEqual(t, len(ofType(suggestions, entity.SuggestionCleanup)), maxCleanupItems)
}

func TestNextActionsOverdueFirstAndCapped(t *testing.T) {
	due := "2026-08-01" // before the fixed "now"
	status := entity.TaskInProgress

	overdue := note("ship the report to the client", nil, time.Hour)
	overdue.Category = entity.CategoryTask
	overdue.DueDate = &due
	overdue.Entities.Topics = []string{"report"}

	stale := note("migrate the database to the new host", nil, 10*24*time.Hour)
	stale.Category = entity.CategoryTask
	stale.TaskStatus = &status
	stale.Entities.Topics = []string{"migration"}

	var untagged []*entity.Note
	for i := 0; i < 5; i++ {
		untagged = append(untagged, note("note without any tags attached here", nil, time.Duration(i)*time.Hour))
	}

	notes := append([]*entity.Note{overdue, stale}, untagged...)
	suggestions := runEngine(t, notes, nil)
	actions := ofType(suggestions, entity.SuggestionAction)
	require.Len(t, actions, maxActionItems)

	payload, err := DecodePayload(entity.SuggestionAction, actions[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, ActionOverdueTasks, payload.(*ActionPayload).Kind)
	assert.Equal(t, entity.PriorityHigh, payload.(*ActionPayload).Priority)
}

func TestDecodePayloadUnknownType(t *testing.T) {
	_, err := DecodePayload(entity.SuggestionType("mystery"), []byte("{}"))
	assert.Error(t, err)
}
