package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// KnowledgeGraph stores one serialized graph snapshot per user: flat node
// and edge arrays plus the last mutation time. The row is read and written
// whole; there is no per-node persistence.
type KnowledgeGraph struct {
	UserId      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Nodes       datatypes.JSON `gorm:"type:jsonb"`
	Edges       datatypes.JSON `gorm:"type:jsonb"`
	LastUpdated time.Time
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (KnowledgeGraph) TableName() string {
	return "knowledge_graphs"
}
