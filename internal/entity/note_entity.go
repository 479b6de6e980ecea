package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteCategory string

const (
	CategoryTask   NoteCategory = "task"
	CategoryEvent  NoteCategory = "event"
	CategoryIdea   NoteCategory = "idea"
	CategoryInfo   NoteCategory = "info"
	CategoryPerson NoteCategory = "person"
)

type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// EntityBag holds the names extracted from a note's text. Lists are
// unordered and may repeat across notes; deduplication happens at the
// graph-node level.
type EntityBag struct {
	Persons  []string `json:"persons,omitempty"`
	Places   []string `json:"places,omitempty"`
	Projects []string `json:"projects,omitempty"`
	Topics   []string `json:"topics,omitempty"`
}

func (b EntityBag) IsEmpty() bool {
	return len(b.Persons) == 0 && len(b.Places) == 0 && len(b.Projects) == 0 && len(b.Topics) == 0
}

type Note struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId   uuid.UUID `gorm:"type:uuid;index"`
	Content  string
	Category NoteCategory

	Entities  EntityBag
	Embedding []float32

	// Classification provenance, set when the remote classifier produced
	// the note.
	Confidence *float64
	Reason     string

	// Task fields, only meaningful for CategoryTask.
	TaskStatus   *TaskStatus
	TaskPriority *TaskPriority
	DueDate      *string // ISO calendar date, YYYY-MM-DD

	RelatedNoteIds []uuid.UUID

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// LastTouched is UpdatedAt when set, CreatedAt otherwise.
func (n *Note) LastTouched() time.Time {
	if n.UpdatedAt != nil {
		return *n.UpdatedAt
	}
	return n.CreatedAt
}

// IsOpenTask reports whether the note is a task not yet done.
func (n *Note) IsOpenTask() bool {
	if n.Category != CategoryTask {
		return false
	}
	return n.TaskStatus == nil || *n.TaskStatus != TaskDone
}
