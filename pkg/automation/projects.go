package automation

import (
	"fmt"
	"sort"

	"nexmind-be/internal/entity"
	"nexmind-be/pkg/graph"

	"github.com/google/uuid"
)

const (
	minTopicNotes     = 3
	minSharedTopics   = 3
	projectBaseScore  = 0.2
	taskSignalScore   = 0.4
	personSignalScore = 0.2
)

// detectEmergingProjects looks for topics whose linked notes already behave
// like a project: several tasks, or more than one person involved, and no
// project node attached to any of them yet.
func (e *Engine) detectEmergingProjects(g *graph.Graph, notesById map[uuid.UUID]*entity.Note) []candidate {
	var candidates []candidate

	topics := g.NodesByType(graph.NodeTopic)
	sort.Slice(topics, func(i, j int) bool { return topics[i].Id < topics[j].Id })

	for _, topic := range topics {
		linkedIds := g.NoteIdsLinkedTo(topic.Id, graph.EdgeTopicOf)
		if len(linkedIds) < minTopicNotes {
			continue
		}

		var linked []*entity.Note
		hasProject := false
		for _, id := range linkedIds {
			note, ok := notesById[id]
			if !ok {
				continue
			}
			linked = append(linked, note)
			if len(note.Entities.Projects) > 0 {
				hasProject = true
			}
		}
		if hasProject || len(linked) < minTopicNotes {
			continue
		}

		taskCount := 0
		persons := make(map[string]bool)
		for _, note := range linked {
			if note.Category == entity.CategoryTask {
				taskCount++
			}
			for _, p := range note.Entities.Persons {
				persons[graph.NormalizeLabel(p)] = true
			}
		}

		confidence := projectBaseScore
		if taskCount >= 2 {
			confidence += taskSignalScore
		}
		switch {
		case len(persons) == 2:
			confidence += personSignalScore
		case len(persons) > 2:
			confidence += 2 * personSignalScore
		}
		if confidence <= projectBaseScore {
			continue // no project-like signal at all
		}
		if confidence > 1.0 {
			confidence = 1.0
		}

		ids := make([]uuid.UUID, 0, len(linked))
		for _, n := range linked {
			ids = append(ids, n.Id)
		}

		candidates = append(candidates, candidate{
			Type:        entity.SuggestionEmergingProject,
			Title:       fmt.Sprintf("Emerging project: %s", topic.Label),
			Description: fmt.Sprintf("%d notes share the topic %q with %d tasks and %d people involved. This looks like a project taking shape.", len(linked), topic.Label, taskCount, len(persons)),
			Confidence:  confidence,
			Payload: EmergingProjectPayload{
				Topic:       topic.Label,
				NoteIds:     ids,
				TaskCount:   taskCount,
				PersonCount: len(persons),
			},
		})
	}

	candidates = append(candidates, e.detectTopicPairs(notesById)...)
	return candidates
}

// detectTopicPairs mines topic pairs that co-occur on enough notes to be
// one project under two names.
func (e *Engine) detectTopicPairs(notesById map[uuid.UUID]*entity.Note) []candidate {
	type pairKey struct{ a, b string }
	shared := make(map[pairKey][]uuid.UUID)

	for id, note := range notesById {
		topics := make([]string, 0, len(note.Entities.Topics))
		seen := make(map[string]bool)
		for _, t := range note.Entities.Topics {
			norm := graph.NormalizeLabel(t)
			if !seen[norm] {
				seen[norm] = true
				topics = append(topics, norm)
			}
		}
		sort.Strings(topics)
		for i := 0; i < len(topics); i++ {
			for j := i + 1; j < len(topics); j++ {
				key := pairKey{topics[i], topics[j]}
				shared[key] = append(shared[key], id)
			}
		}
	}

	keys := make([]pairKey, 0, len(shared))
	for k := range shared {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})

	var candidates []candidate
	for _, key := range keys {
		ids := shared[key]
		if len(ids) < minSharedTopics {
			continue
		}
		confidence := projectBaseScore + 0.1*float64(len(ids))
		if confidence > 0.8 {
			confidence = 0.8
		}
		candidates = append(candidates, candidate{
			Type:        entity.SuggestionProject,
			Title:       fmt.Sprintf("Project candidate: %s + %s", key.a, key.b),
			Description: fmt.Sprintf("The topics %q and %q appear together on %d notes.", key.a, key.b, len(ids)),
			Confidence:  confidence,
			Payload: ProjectPairPayload{
				Topics:        [2]string{key.a, key.b},
				SharedNoteIds: ids,
			},
		})
	}
	return candidates
}
