package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nexmind-be/internal/model"
	"nexmind-be/internal/repository/contract"
	"nexmind-be/pkg/graph"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KnowledgeGraphRepositoryImpl struct {
	db *gorm.DB
}

func NewKnowledgeGraphRepository(db *gorm.DB) contract.KnowledgeGraphRepository {
	return &KnowledgeGraphRepositoryImpl{db: db}
}

func (r *KnowledgeGraphRepositoryImpl) Load(ctx context.Context, userId uuid.UUID) (*graph.Snapshot, error) {
	var m model.KnowledgeGraph
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	snapshot := &graph.Snapshot{LastUpdated: m.LastUpdated}
	if len(m.Nodes) > 0 {
		if err := json.Unmarshal(m.Nodes, &snapshot.Nodes); err != nil {
			return nil, fmt.Errorf("failed to decode graph nodes for user %s: %w", userId, err)
		}
	}
	if len(m.Edges) > 0 {
		if err := json.Unmarshal(m.Edges, &snapshot.Edges); err != nil {
			return nil, fmt.Errorf("failed to decode graph edges for user %s: %w", userId, err)
		}
	}
	return snapshot, nil
}

func (r *KnowledgeGraphRepositoryImpl) Save(ctx context.Context, userId uuid.UUID, snapshot *graph.Snapshot) error {
	nodes, err := json.Marshal(snapshot.Nodes)
	if err != nil {
		return fmt.Errorf("failed to encode graph nodes: %w", err)
	}
	edges, err := json.Marshal(snapshot.Edges)
	if err != nil {
		return fmt.Errorf("failed to encode graph edges: %w", err)
	}

	m := &model.KnowledgeGraph{
		UserId:      userId,
		Nodes:       nodes,
		Edges:       edges,
		LastUpdated: snapshot.LastUpdated,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}

func (r *KnowledgeGraphRepositoryImpl) Delete(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.KnowledgeGraph{}).Error
}
