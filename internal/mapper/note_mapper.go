package mapper

import (
	"encoding/json"
	"time"

	"nexmind-be/internal/entity"
	"nexmind-be/internal/model"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var deletedAt *time.Time
	if n.DeletedAt.Valid {
		t := n.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	// Unreadable JSON columns degrade to empty values instead of failing
	// the read; the note itself is still usable.
	var entities entity.EntityBag
	if len(n.Entities) > 0 {
		_ = json.Unmarshal(n.Entities, &entities)
	}
	var relatedIds []uuid.UUID
	if len(n.RelatedNoteIds) > 0 {
		_ = json.Unmarshal(n.RelatedNoteIds, &relatedIds)
	}

	var status *entity.TaskStatus
	if n.TaskStatus != nil {
		s := entity.TaskStatus(*n.TaskStatus)
		status = &s
	}
	var priority *entity.TaskPriority
	if n.TaskPriority != nil {
		p := entity.TaskPriority(*n.TaskPriority)
		priority = &p
	}

	return &entity.Note{
		Id:             n.Id,
		UserId:         n.UserId,
		Content:        n.Content,
		Category:       entity.NoteCategory(n.Category),
		Entities:       entities,
		Embedding:      embeddingSlice(n.Embedding),
		Confidence:     n.Confidence,
		Reason:         n.Reason,
		TaskStatus:     status,
		TaskPriority:   priority,
		DueDate:        n.DueDate,
		RelatedNoteIds: relatedIds,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      n.DeletedAt.Valid,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if n.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *n.DeletedAt, Valid: true}
	} else if n.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	entitiesJson, _ := json.Marshal(n.Entities)
	var relatedJson []byte
	if len(n.RelatedNoteIds) > 0 {
		relatedJson, _ = json.Marshal(n.RelatedNoteIds)
	}

	var status *string
	if n.TaskStatus != nil {
		s := string(*n.TaskStatus)
		status = &s
	}
	var priority *string
	if n.TaskPriority != nil {
		p := string(*n.TaskPriority)
		priority = &p
	}

	return &model.Note{
		Id:             n.Id,
		UserId:         n.UserId,
		Content:        n.Content,
		Category:       string(n.Category),
		Entities:       entitiesJson,
		Embedding:      embeddingColumn(n.Embedding),
		Confidence:     n.Confidence,
		Reason:         n.Reason,
		TaskStatus:     status,
		TaskPriority:   priority,
		DueDate:        n.DueDate,
		RelatedNoteIds: relatedJson,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func embeddingSlice(v *pgvector.Vector) []float32 {
	if v == nil {
		return nil
	}
	return v.Slice()
}

func embeddingColumn(emb []float32) *pgvector.Vector {
	if len(emb) == 0 {
		return nil
	}
	v := pgvector.NewVector(emb)
	return &v
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) ToModels(notes []*entity.Note) []*model.Note {
	models := make([]*model.Note, len(notes))
	for i, n := range notes {
		models[i] = m.ToModel(n)
	}
	return models
}
