package contract

import (
	"context"

	"nexmind-be/pkg/graph"

	"github.com/google/uuid"
)

// KnowledgeGraphRepository persists one graph snapshot per user. Load
// returns nil when no snapshot exists yet; Save overwrites the whole row.
type KnowledgeGraphRepository interface {
	Load(ctx context.Context, userId uuid.UUID) (*graph.Snapshot, error)
	Save(ctx context.Context, userId uuid.UUID, snapshot *graph.Snapshot) error
	Delete(ctx context.Context, userId uuid.UUID) error
}
