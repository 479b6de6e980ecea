package graph

import (
	"time"

	"nexmind-be/internal/entity"
	"nexmind-be/pkg/similarity"
)

// Builder applies note data to a graph: one node per note, merged entity
// nodes per distinct normalized label, and bidirectional similarity edges
// between note pairs above the threshold.
type Builder struct {
	Threshold float64
}

func NewBuilder() *Builder {
	return &Builder{Threshold: SimilarityThreshold}
}

// noteLabel is the display label of a note node: the first few words of
// its content.
func noteLabel(content string) string {
	const maxLen = 60
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen]
}

// UpdateForNote upserts the note and its entity links, then connects it to
// every other note whose embedding clears the similarity threshold.
// A length mismatch between embeddings is returned as an error.
func (b *Builder) UpdateForNote(g *Graph, note *entity.Note, others []*entity.Note) error {
	noteNode := g.UpsertNoteNode(note.Id, noteLabel(note.Content), note.Embedding)

	for _, person := range note.Entities.Persons {
		n := g.UpsertEntityNode(NodePerson, person)
		g.UpsertEdge(noteNode.Id, n.Id, EdgeMentions, StrengthMentions)
	}
	for _, place := range note.Entities.Places {
		n := g.UpsertEntityNode(NodePlace, place)
		g.UpsertEdge(noteNode.Id, n.Id, EdgeMentions, StrengthMentions)
	}
	for _, project := range note.Entities.Projects {
		n := g.UpsertEntityNode(NodeProject, project)
		g.UpsertEdge(noteNode.Id, n.Id, EdgeProjectOf, StrengthProjectOf)
	}
	for _, topic := range note.Entities.Topics {
		n := g.UpsertEntityNode(NodeTopic, topic)
		g.UpsertEdge(noteNode.Id, n.Id, EdgeTopicOf, StrengthTopicOf)
	}

	if len(note.Embedding) == 0 {
		g.LastUpdated = time.Now()
		return nil
	}

	for _, other := range others {
		if other.Id == note.Id || len(other.Embedding) == 0 {
			continue
		}
		score, err := similarity.Cosine(note.Embedding, other.Embedding)
		if err != nil {
			return err
		}
		if score < b.Threshold {
			continue
		}
		otherNodeId := NoteNodeId(other.Id)
		if _, ok := g.Nodes[otherNodeId]; !ok {
			g.UpsertNoteNode(other.Id, noteLabel(other.Content), other.Embedding)
		}
		// Similarity is symmetric; keep both directions explicit so plain
		// edge scans from either side find the link.
		g.UpsertEdge(noteNode.Id, otherNodeId, EdgeSimilarTo, score)
		g.UpsertEdge(otherNodeId, noteNode.Id, EdgeSimilarTo, score)
	}

	g.LastUpdated = time.Now()
	return nil
}

// Rebuild constructs a fresh graph from the full note collection. Used at
// startup when the persisted graph is empty, and for manual rebuilds.
func (b *Builder) Rebuild(notes []*entity.Note) (*Graph, error) {
	g := New()
	for i, note := range notes {
		// Preceding notes suffice: the pairwise pass is symmetric, so each
		// pair is visited exactly once.
		if err := b.UpdateForNote(g, note, notes[:i]); err != nil {
			return nil, err
		}
	}
	return g, nil
}
