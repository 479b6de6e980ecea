package automation

import (
	"fmt"
	"strings"

	"nexmind-be/internal/entity"
	"nexmind-be/pkg/similarity"

	"github.com/google/uuid"
)

const (
	// duplicateThreshold is deliberately higher than the graph's similarTo
	// threshold: a merge proposal needs near-identity, not mere relatedness.
	duplicateThreshold = 0.88

	duplicateWindow = 20

	confidenceIdentical = 0.95
	confidenceSimilar   = 0.75
)

// detectDuplicates scans the most recent notes pairwise and proposes one
// merge per cluster above the duplicate threshold. Grouping is the same
// greedy seed-based pass used everywhere else: order-dependent on purpose.
func (e *Engine) detectDuplicates(notes []*entity.Note) ([]candidate, error) {
	window := notes
	if len(window) > duplicateWindow {
		window = window[:duplicateWindow]
	}

	grouped := make(map[uuid.UUID]bool)
	var candidates []candidate

	for i, seed := range window {
		if grouped[seed.Id] || len(seed.Embedding) == 0 {
			continue
		}

		cluster := []*entity.Note{seed}
		for _, other := range window[i+1:] {
			if grouped[other.Id] || len(other.Embedding) == 0 {
				continue
			}
			score, err := similarity.Cosine(seed.Embedding, other.Embedding)
			if err != nil {
				return nil, err
			}
			if score >= duplicateThreshold {
				cluster = append(cluster, other)
				grouped[other.Id] = true
			}
		}
		if len(cluster) < 2 {
			continue
		}
		grouped[seed.Id] = true

		candidates = append(candidates, buildMergeCandidate(cluster))
	}

	return candidates, nil
}

func buildMergeCandidate(cluster []*entity.Note) candidate {
	ids := make([]uuid.UUID, 0, len(cluster))
	var contents []string
	seenContent := make(map[string]bool)
	identical := true

	var merged entity.EntityBag
	for _, n := range cluster {
		ids = append(ids, n.Id)
		if n.Content != cluster[0].Content {
			identical = false
		}
		if !seenContent[n.Content] {
			seenContent[n.Content] = true
			contents = append(contents, n.Content)
		}
		merged.Persons = unionStrings(merged.Persons, n.Entities.Persons)
		merged.Places = unionStrings(merged.Places, n.Entities.Places)
		merged.Projects = unionStrings(merged.Projects, n.Entities.Projects)
		merged.Topics = unionStrings(merged.Topics, n.Entities.Topics)
	}

	confidence := confidenceSimilar
	if identical {
		confidence = confidenceIdentical
	}

	return candidate{
		Type:        entity.SuggestionDuplicate,
		Title:       fmt.Sprintf("Merge %d similar notes: %q", len(cluster), snippet(cluster[0].Content, 40)),
		Description: fmt.Sprintf("%d notes look like duplicates of each other. Merging keeps one note with the combined content and entities.", len(cluster)),
		Confidence:  confidence,
		Payload: DuplicatePayload{
			NoteIds:       ids,
			MergedContent: strings.Join(contents, "\n\n"),
			Entities:      merged,
		},
	}
}

func unionStrings(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			seen[s] = true
			dst = append(dst, s)
		}
	}
	return dst
}

func snippet(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "…"
}
