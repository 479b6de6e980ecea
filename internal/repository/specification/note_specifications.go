package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByTaskStatus struct {
	Status string
}

func (s ByTaskStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("task_status = ?", s.Status)
}

type WithEmbedding struct{}

func (s WithEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NOT NULL")
}

type CreatedBefore struct {
	Before time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.Before)
}
