package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ListSuggestionsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=pending accepted rejected"`
	Type   string `query:"type" validate:"omitempty,oneof=duplicate project emerging_project cleanup action"`
}

type SuggestionResponse struct {
	Id          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Payload     json.RawMessage `json:"payload"`
	Confidence  float64         `json:"confidence"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ResolveSuggestionResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type RunAutomationResponse struct {
	Created int `json:"created"`
}
