package graph

import (
	"sort"
	"time"
)

// Snapshot is the serialized form of the graph: flat node and edge arrays
// plus the time of the last mutation, stored as one object per user.
type Snapshot struct {
	Nodes       []*Node   `json:"nodes"`
	Edges       []*Edge   `json:"edges"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Snapshot flattens the graph into its persisted form. Output order is
// stable so repeated saves of an unchanged graph produce identical bytes.
func (g *Graph) Snapshot() *Snapshot {
	nodes := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Id < nodes[j].Id })

	edges := make([]*Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Id < edges[j].Id })

	return &Snapshot{
		Nodes:       nodes,
		Edges:       edges,
		LastUpdated: g.LastUpdated,
	}
}

// FromSnapshot rebuilds the in-memory graph from its persisted form.
// A nil snapshot yields an empty graph, matching the "treat unreadable
// state as empty" recovery rule.
func FromSnapshot(s *Snapshot) *Graph {
	g := New()
	if s == nil {
		return g
	}
	for _, n := range s.Nodes {
		g.Nodes[n.Id] = n
	}
	for _, e := range s.Edges {
		g.Edges[e.Id] = e
	}
	g.LastUpdated = s.LastUpdated
	return g
}

// Empty reports whether the graph holds no nodes.
func (g *Graph) Empty() bool {
	return len(g.Nodes) == 0
}
