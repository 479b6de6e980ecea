package dto

import (
	"time"

	"nexmind-be/pkg/graph"

	"github.com/google/uuid"
)

type GraphResponse struct {
	Nodes       []*graph.Node `json:"nodes"`
	Edges       []*graph.Edge `json:"edges"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

type RebuildGraphResponse struct {
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

// NoteNeighborsResponse lists the notes directly connected to a note in
// the knowledge graph, with the connecting edges.
type NoteNeighborsResponse struct {
	NoteId  uuid.UUID     `json:"note_id"`
	Nodes   []*graph.Node `json:"nodes"`
	Edges   []*graph.Edge `json:"edges"`
	NoteIds []uuid.UUID   `json:"note_ids"`
}
