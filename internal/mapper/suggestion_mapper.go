package mapper

import (
	"time"

	"nexmind-be/internal/entity"
	"nexmind-be/internal/model"
)

type SuggestionMapper struct{}

func NewSuggestionMapper() *SuggestionMapper {
	return &SuggestionMapper{}
}

func (m *SuggestionMapper) ToEntity(s *model.Suggestion) *entity.Suggestion {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Suggestion{
		Id:          s.Id,
		UserId:      s.UserId,
		Type:        entity.SuggestionType(s.Type),
		Title:       s.Title,
		Description: s.Description,
		Payload:     []byte(s.Payload),
		Confidence:  s.Confidence,
		Status:      entity.SuggestionStatus(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *SuggestionMapper) ToModel(s *entity.Suggestion) *model.Suggestion {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Suggestion{
		Id:          s.Id,
		UserId:      s.UserId,
		Type:        string(s.Type),
		Title:       s.Title,
		Description: s.Description,
		Payload:     s.Payload,
		Confidence:  s.Confidence,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *SuggestionMapper) ToEntities(suggestions []*model.Suggestion) []*entity.Suggestion {
	entities := make([]*entity.Suggestion, len(suggestions))
	for i, s := range suggestions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
