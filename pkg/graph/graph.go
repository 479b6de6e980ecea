// Package graph maintains the knowledge graph connecting notes to the
// entities they mention and to each other by embedding similarity.
package graph

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type NodeType string

const (
	NodeNote    NodeType = "note"
	NodePerson  NodeType = "person"
	NodePlace   NodeType = "place"
	NodeProject NodeType = "project"
	NodeTopic   NodeType = "topic"
)

type EdgeType string

const (
	EdgeMentions  EdgeType = "mentions"
	EdgeTopicOf   EdgeType = "topicOf"
	EdgeProjectOf EdgeType = "projectOf"
	EdgeSimilarTo EdgeType = "similarTo"
	EdgeRelatedTo EdgeType = "relatedTo"
)

// Fixed edge strengths per relation type. Similarity edges carry the
// observed cosine score instead.
const (
	StrengthMentions  = 0.9
	StrengthProjectOf = 0.95
	StrengthTopicOf   = 0.85

	// SimilarityThreshold is the minimum cosine score at which two notes
	// get connected by a bidirectional similarTo edge.
	SimilarityThreshold = 0.6
)

type NodeMeta struct {
	MentionCount int        `json:"mention_count,omitempty"`
	SourceNoteId *uuid.UUID `json:"source_note_id,omitempty"`
}

type Node struct {
	Id        string    `json:"id"`
	Type      NodeType  `json:"type"`
	Label     string    `json:"label"`
	Embedding []float32 `json:"embedding,omitempty"`
	Meta      NodeMeta  `json:"meta"`
}

type Edge struct {
	Id       string   `json:"id"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Type     EdgeType `json:"type"`
	Strength float64  `json:"strength"`
}

// Graph is an adjacency structure over deduplicated nodes and edges.
// It is not safe for concurrent mutation; callers serialize access.
type Graph struct {
	Nodes       map[string]*Node
	Edges       map[string]*Edge
	LastUpdated time.Time
}

func New() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: make(map[string]*Edge),
	}
}

// NormalizeLabel collapses case and spacing variants of an entity label so
// re-mentions of the same name map to one node. Two distinct real-world
// entities sharing a normalized name merge silently; accepted for this scope.
func NormalizeLabel(label string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(label)))
	return strings.Join(fields, "_")
}

// NodeId derives the deterministic identifier for a (type, label) pair.
func NodeId(nodeType NodeType, label string) string {
	return fmt.Sprintf("%s:%s", nodeType, NormalizeLabel(label))
}

// NoteNodeId derives the node identifier for a note.
func NoteNodeId(noteId uuid.UUID) string {
	return fmt.Sprintf("%s:%s", NodeNote, noteId)
}

// EdgeId derives the deterministic identifier for a directed edge.
func EdgeId(from, to string, edgeType EdgeType) string {
	return fmt.Sprintf("%s|%s|%s", from, to, edgeType)
}

// UpsertNoteNode adds or refreshes the node representing a note. Re-adding
// replaces label and embedding; it does not touch the mention count.
func (g *Graph) UpsertNoteNode(noteId uuid.UUID, label string, vector []float32) *Node {
	id := NoteNodeId(noteId)
	node, ok := g.Nodes[id]
	if !ok {
		node = &Node{Id: id, Type: NodeNote}
		g.Nodes[id] = node
	}
	node.Label = label
	node.Embedding = vector
	sourceId := noteId
	node.Meta.SourceNoteId = &sourceId
	return node
}

// UpsertEntityNode adds or merges an entity node, counting every mention.
func (g *Graph) UpsertEntityNode(nodeType NodeType, label string) *Node {
	id := NodeId(nodeType, label)
	node, ok := g.Nodes[id]
	if !ok {
		node = &Node{Id: id, Type: nodeType, Label: label}
		g.Nodes[id] = node
	}
	node.Meta.MentionCount++
	return node
}

// UpsertEdge inserts an edge, keeping the maximum observed strength when the
// same edge is re-inserted.
func (g *Graph) UpsertEdge(from, to string, edgeType EdgeType, strength float64) *Edge {
	id := EdgeId(from, to, edgeType)
	edge, ok := g.Edges[id]
	if !ok {
		edge = &Edge{Id: id, From: from, To: to, Type: edgeType, Strength: strength}
		g.Edges[id] = edge
		return edge
	}
	if strength > edge.Strength {
		edge.Strength = strength
	}
	return edge
}

// NodesByType returns all nodes of the given type.
func (g *Graph) NodesByType(nodeType NodeType) []*Node {
	var nodes []*Node
	for _, n := range g.Nodes {
		if n.Type == nodeType {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// EdgesByType returns all edges of the given type.
func (g *Graph) EdgesByType(edgeType EdgeType) []*Edge {
	var edges []*Edge
	for _, e := range g.Edges {
		if e.Type == edgeType {
			edges = append(edges, e)
		}
	}
	return edges
}

// NoteIdsLinkedTo returns the note ids that have an edge of the given type
// pointing at the target node.
func (g *Graph) NoteIdsLinkedTo(target string, edgeType EdgeType) []uuid.UUID {
	var ids []uuid.UUID
	for _, e := range g.Edges {
		if e.Type != edgeType || e.To != target {
			continue
		}
		node, ok := g.Nodes[e.From]
		if !ok || node.Type != NodeNote || node.Meta.SourceNoteId == nil {
			continue
		}
		ids = append(ids, *node.Meta.SourceNoteId)
	}
	return ids
}

// Neighbors returns the directly connected nodes of a node, in either edge
// direction, with the strength of the connecting edge.
type Neighbor struct {
	Node     *Node
	Edge     *Edge
	Strength float64
}

func (g *Graph) Neighbors(nodeId string) []Neighbor {
	var out []Neighbor
	for _, e := range g.Edges {
		var otherId string
		switch nodeId {
		case e.From:
			otherId = e.To
		case e.To:
			otherId = e.From
		default:
			continue
		}
		if other, ok := g.Nodes[otherId]; ok {
			out = append(out, Neighbor{Node: other, Edge: e, Strength: e.Strength})
		}
	}
	return out
}
