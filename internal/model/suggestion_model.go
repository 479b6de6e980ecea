package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Suggestion rows are append-only apart from status transitions; old
// entries are filtered by age at read time, never deleted.
type Suggestion struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type        string         `gorm:"type:varchar(30);not null;index"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	Confidence  float64
	Status      string    `gorm:"type:varchar(10);not null;index;default:'pending'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Suggestion) TableName() string {
	return "ai_suggestions"
}
