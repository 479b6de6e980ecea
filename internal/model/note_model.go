package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Note is the wide persistence schema: every field of the domain note
// survives a round trip, including entities, embedding, and classification
// provenance.
type Note struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Content  string    `gorm:"type:text;not null"`
	Category string    `gorm:"type:varchar(20);not null;index"`

	Entities       datatypes.JSON   `gorm:"type:jsonb"`
	Embedding      *pgvector.Vector `gorm:"type:vector(128)"` // nil until the consumer has embedded the note
	Confidence     *float64
	Reason         string         `gorm:"type:text"`
	TaskStatus     *string        `gorm:"type:varchar(20)"`
	TaskPriority   *string        `gorm:"type:varchar(10)"`
	DueDate        *string        `gorm:"type:varchar(10)"` // YYYY-MM-DD
	RelatedNoteIds datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Note) TableName() string {
	return "notes"
}
