package service

import (
	"context"
	"errors"

	"nexmind-be/internal/dto"
	"nexmind-be/internal/entity"
	"nexmind-be/internal/repository/specification"
	"nexmind-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ErrSuggestionResolved is returned when accepting or rejecting a
// suggestion that already left the pending state.
var ErrSuggestionResolved = errors.New("suggestion already resolved")

type ISuggestionService interface {
	List(ctx context.Context, userId uuid.UUID, req *dto.ListSuggestionsRequest) ([]*dto.SuggestionResponse, error)
	Accept(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResolveSuggestionResponse, error)
	Reject(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResolveSuggestionResponse, error)
	Run(ctx context.Context, userId uuid.UUID) (*dto.RunAutomationResponse, error)
}

type suggestionService struct {
	uowFactory        unitofwork.RepositoryFactory
	automationService IAutomationService
}

func NewSuggestionService(
	uowFactory unitofwork.RepositoryFactory,
	automationService IAutomationService,
) ISuggestionService {
	return &suggestionService{
		uowFactory:        uowFactory,
		automationService: automationService,
	}
}

func (c *suggestionService) List(ctx context.Context, userId uuid.UUID, req *dto.ListSuggestionsRequest) ([]*dto.SuggestionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.SuggestionOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "confidence", Desc: true},
	}
	if req.Status != "" {
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}
	if req.Type != "" {
		specs = append(specs, specification.ByType{Type: req.Type})
	}

	suggestions, err := uow.SuggestionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SuggestionResponse, 0, len(suggestions))
	for _, suggestion := range suggestions {
		res = append(res, toSuggestionResponse(suggestion))
	}
	return res, nil
}

func (c *suggestionService) Accept(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResolveSuggestionResponse, error) {
	return c.resolve(ctx, userId, id, entity.SuggestionAccepted)
}

func (c *suggestionService) Reject(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResolveSuggestionResponse, error) {
	return c.resolve(ctx, userId, id, entity.SuggestionRejected)
}

// resolve moves a pending suggestion into a terminal state. Suggestions are
// never hard deleted; a rejected one keeps suppression off the next engine
// run only while the (type, title) pair stays pending elsewhere.
func (c *suggestionService) resolve(ctx context.Context, userId uuid.UUID, id uuid.UUID, status entity.SuggestionStatus) (*dto.ResolveSuggestionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	suggestion, err := uow.SuggestionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.SuggestionOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if suggestion == nil {
		return nil, nil
	}
	if suggestion.Status != entity.SuggestionPending {
		return nil, ErrSuggestionResolved
	}

	if err := uow.SuggestionRepository().UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return &dto.ResolveSuggestionResponse{
		Id:     id,
		Status: string(status),
	}, nil
}

func (c *suggestionService) Run(ctx context.Context, userId uuid.UUID) (*dto.RunAutomationResponse, error) {
	created, err := c.automationService.RunForUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.RunAutomationResponse{
		Created: len(created),
	}, nil
}
