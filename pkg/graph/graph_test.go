package graph

import (
	"encoding/json"
	"testing"
	"time"

	"nexmind-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maria", "maria"},
		{"  Project  Phoenix ", "project_phoenix"},
		{"NEW\tYork", "new_york"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLabel(tt.in))
	}
}

func TestUpsertEntityNodeMerges(t *testing.T) {
	g := New()

	first := g.UpsertEntityNode(NodePerson, "Maria")
	second := g.UpsertEntityNode(NodePerson, "maria")

	assert.Same(t, first, second)
	assert.Equal(t, 2, second.Meta.MentionCount)
	assert.Len(t, g.Nodes, 1)
}

func TestUpsertEdgeKeepsMaxStrength(t *testing.T) {
	g := New()

	g.UpsertEdge("a", "b", EdgeSimilarTo, 0.7)
	g.UpsertEdge("a", "b", EdgeSimilarTo, 0.65)
	g.UpsertEdge("a", "b", EdgeSimilarTo, 0.9)

	assert.Len(t, g.Edges, 1)
	assert.Equal(t, 0.9, g.Edges[EdgeId("a", "b", EdgeSimilarTo)].Strength)
}

func noteWithVector(content string, vec []float32) *entity.Note {
	return &entity.Note{
		Id:        uuid.New(),
		Content:   content,
		Category:  entity.CategoryInfo,
		Embedding: vec,
		CreatedAt: time.Now(),
	}
}

func TestBuilderSimilarityEdgesBothDirections(t *testing.T) {
	b := NewBuilder()

	a := noteWithVector("note a", []float32{1, 0, 0})
	other := noteWithVector("note b", []float32{0.9, 0.1, 0})

	g, err := b.Rebuild([]*entity.Note{a, other})
	assert.NoError(t, err)

	simEdges := g.EdgesByType(EdgeSimilarTo)
	assert.Len(t, simEdges, 2)
	forward := g.Edges[EdgeId(NoteNodeId(other.Id), NoteNodeId(a.Id), EdgeSimilarTo)]
	backward := g.Edges[EdgeId(NoteNodeId(a.Id), NoteNodeId(other.Id), EdgeSimilarTo)]
	assert.NotNil(t, forward)
	assert.NotNil(t, backward)
	assert.Equal(t, forward.Strength, backward.Strength)
	assert.GreaterOrEqual(t, forward.Strength, SimilarityThreshold)
}

func TestBuilderBelowThresholdNoEdges(t *testing.T) {
	b := NewBuilder()

	a := noteWithVector("note a", []float32{1, 0, 0})
	other := noteWithVector("note b", []float32{0, 1, 0})

	g, err := b.Rebuild([]*entity.Note{a, other})
	assert.NoError(t, err)
	assert.Empty(t, g.EdgesByType(EdgeSimilarTo))
}

func TestBuilderEntityMentions(t *testing.T) {
	b := NewBuilder()
	g := New()

	n1 := &entity.Note{Id: uuid.New(), Content: "call Maria", Entities: entity.EntityBag{Persons: []string{"Maria"}}}
	n2 := &entity.Note{Id: uuid.New(), Content: "lunch with maria", Entities: entity.EntityBag{Persons: []string{"maria"}}}

	assert.NoError(t, b.UpdateForNote(g, n1, nil))
	assert.NoError(t, b.UpdateForNote(g, n2, []*entity.Note{n1}))

	persons := g.NodesByType(NodePerson)
	assert.Len(t, persons, 1)
	assert.Equal(t, 2, persons[0].Meta.MentionCount)
	assert.Len(t, g.EdgesByType(EdgeMentions), 2)
}

func TestBuilderTopicAndProjectStrengths(t *testing.T) {
	b := NewBuilder()
	g := New()

	n := &entity.Note{
		Id:      uuid.New(),
		Content: "phoenix planning",
		Entities: entity.EntityBag{
			Projects: []string{"Phoenix"},
			Topics:   []string{"planning"},
		},
	}
	assert.NoError(t, b.UpdateForNote(g, n, nil))

	projEdge := g.Edges[EdgeId(NoteNodeId(n.Id), NodeId(NodeProject, "Phoenix"), EdgeProjectOf)]
	topicEdge := g.Edges[EdgeId(NoteNodeId(n.Id), NodeId(NodeTopic, "planning"), EdgeTopicOf)]
	assert.NotNil(t, projEdge)
	assert.NotNil(t, topicEdge)
	assert.Equal(t, StrengthProjectOf, projEdge.Strength)
	assert.Equal(t, StrengthTopicOf, topicEdge.Strength)
}

func TestSnapshotRoundTrip(t *testing.T) {
	b := NewBuilder()
	a := noteWithVector("a", []float32{1, 0})
	c := noteWithVector("c", []float32{0.95, 0.05})

	g, err := b.Rebuild([]*entity.Note{a, c})
	assert.NoError(t, err)

	data, err := json.Marshal(g.Snapshot())
	assert.NoError(t, err)

	var snap Snapshot
	assert.NoError(t, json.Unmarshal(data, &snap))

	restored := FromSnapshot(&snap)
	assert.Equal(t, len(g.Nodes), len(restored.Nodes))
	assert.Equal(t, len(g.Edges), len(restored.Edges))
}

func TestFromSnapshotNilIsEmpty(t *testing.T) {
	g := FromSnapshot(nil)
	assert.True(t, g.Empty())
}

func TestNoteIdsLinkedTo(t *testing.T) {
	b := NewBuilder()
	g := New()

	n1 := &entity.Note{Id: uuid.New(), Content: "a", Entities: entity.EntityBag{Topics: []string{"budget"}}}
	n2 := &entity.Note{Id: uuid.New(), Content: "b", Entities: entity.EntityBag{Topics: []string{"budget"}}}

	assert.NoError(t, b.UpdateForNote(g, n1, nil))
	assert.NoError(t, b.UpdateForNote(g, n2, nil))

	linked := g.NoteIdsLinkedTo(NodeId(NodeTopic, "budget"), EdgeTopicOf)
	assert.ElementsMatch(t, []uuid.UUID{n1.Id, n2.Id}, linked)
}
