package contract

import (
	"context"

	"nexmind-be/internal/entity"
	"nexmind-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *entity.Suggestion) error
	CreateAll(ctx context.Context, suggestions []*entity.Suggestion) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SuggestionStatus) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Suggestion, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Suggestion, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
