package implementation

import (
	"context"
	"errors"

	"nexmind-be/internal/entity"
	"nexmind-be/internal/mapper"
	"nexmind-be/internal/model"
	"nexmind-be/internal/repository/contract"
	"nexmind-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuggestionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SuggestionMapper
}

func NewSuggestionRepository(db *gorm.DB) contract.SuggestionRepository {
	return &SuggestionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSuggestionMapper(),
	}
}

func (r *SuggestionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SuggestionRepositoryImpl) Create(ctx context.Context, suggestion *entity.Suggestion) error {
	m := r.mapper.ToModel(suggestion)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*suggestion = *r.mapper.ToEntity(m)
	return nil
}

func (r *SuggestionRepositoryImpl) CreateAll(ctx context.Context, suggestions []*entity.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	models := make([]*model.Suggestion, len(suggestions))
	for i, s := range suggestions {
		models[i] = r.mapper.ToModel(s)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*suggestions[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *SuggestionRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SuggestionStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Suggestion{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SuggestionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Suggestion, error) {
	var m model.Suggestion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SuggestionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Suggestion, error) {
	var models []*model.Suggestion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SuggestionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Suggestion{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
