package entity

import (
	"time"

	"github.com/google/uuid"
)

type SuggestionType string

const (
	SuggestionDuplicate       SuggestionType = "duplicate"
	SuggestionProject         SuggestionType = "project"
	SuggestionEmergingProject SuggestionType = "emerging_project"
	SuggestionCleanup         SuggestionType = "cleanup"
	SuggestionAction          SuggestionType = "action"
)

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
)

// Suggestion is a system-proposed action awaiting user accept/reject.
// Payload is the serialized variant-specific data; its shape is fixed per
// Type (see pkg/automation payload types). Suggestions are never hard
// deleted, only transitioned between statuses.
type Suggestion struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID `gorm:"type:uuid;index"`
	Type        SuggestionType
	Title       string
	Description string
	Payload     []byte
	Confidence  float64
	Status      SuggestionStatus
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
