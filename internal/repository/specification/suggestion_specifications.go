package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuggestionOwnedByUser struct {
	UserID uuid.UUID
}

func (s SuggestionOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ai_suggestions.user_id = ?", s.UserID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByType struct {
	Type string
}

func (s ByType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}
