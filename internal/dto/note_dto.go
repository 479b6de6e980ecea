package dto

import (
	"time"

	"nexmind-be/internal/entity"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"omitempty,oneof=task event idea info person"`
}

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

// CaptureNoteRequest carries free-form text that the NLP pipeline splits
// into one or more classified notes.
type CaptureNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type CaptureNoteResponse struct {
	Notes []NoteResponse `json:"notes"`
}

type NoteResponse struct {
	Id             uuid.UUID        `json:"id"`
	Content        string           `json:"content"`
	Category       string           `json:"category"`
	Entities       entity.EntityBag `json:"entities"`
	Confidence     *float64         `json:"confidence,omitempty"`
	Reason         string           `json:"reason,omitempty"`
	TaskStatus     *string          `json:"task_status,omitempty"`
	TaskPriority   *string          `json:"task_priority,omitempty"`
	DueDate        *string          `json:"due_date,omitempty"`
	RelatedNoteIds []uuid.UUID      `json:"related_note_ids,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at"`
}

type ListNotesRequest struct {
	Category   string `query:"category" validate:"omitempty,oneof=task event idea info person"`
	TaskStatus string `query:"task_status" validate:"omitempty,oneof=open in_progress done"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset     int    `query:"offset" validate:"omitempty,min=0"`
}

type UpdateNoteRequest struct {
	Id       uuid.UUID
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"omitempty,oneof=task event idea info person"`
}

type UpdateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

// PatchTaskRequest updates only the task-tracking fields of a note.
// Absent fields are left untouched.
type PatchTaskRequest struct {
	Id       uuid.UUID
	Status   *string `json:"status" validate:"omitempty,oneof=open in_progress done"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate  *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}
