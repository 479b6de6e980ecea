// Package nlp turns raw captured text into structured note items. The
// primary path asks a remote LLM; a deterministic keyword pipeline covers
// every failure mode so capture never hard-fails.
package nlp

import (
	"context"

	"nexmind-be/internal/entity"
)

// ClassifiedItem is one structured note extracted from raw input text.
// A single capture can yield several items when the input contains
// multiple thoughts.
type ClassifiedItem struct {
	Category      entity.NoteCategory  `json:"category"`
	Content       string               `json:"content"`
	DueExpression string               `json:"due,omitempty"`      // raw expression, e.g. "morgen"
	DueDate       *string              `json:"due_date,omitempty"` // resolved YYYY-MM-DD
	Priority      *entity.TaskPriority `json:"priority,omitempty"`
	Entities      entity.EntityBag     `json:"entities"`
	Confidence    *float64             `json:"confidence,omitempty"`
	Reason        string               `json:"reason,omitempty"`
	GroupId       string               `json:"group_id,omitempty"`
}

// Classifier is one classification stage. Remote and local classifiers both
// implement it; the pipeline composes them.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]ClassifiedItem, error)
}
