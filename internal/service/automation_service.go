package service

import (
	"context"
	"encoding/json"
	"time"

	"nexmind-be/internal/dto"
	"nexmind-be/internal/entity"
	"nexmind-be/internal/pkg/logger"
	"nexmind-be/internal/repository/specification"
	"nexmind-be/internal/repository/unitofwork"
	"nexmind-be/internal/websocket"
	"nexmind-be/pkg/automation"
	"nexmind-be/pkg/graph"

	"github.com/google/uuid"
)

type IAutomationService interface {
	// Start runs the periodic engine loop until ctx is cancelled.
	Start(ctx context.Context)
	RunForUser(ctx context.Context, userId uuid.UUID) ([]*entity.Suggestion, error)
}

type automationService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     *automation.Engine
	builder    *graph.Builder
	hub        *websocket.Hub
	logger     logger.ILogger
	interval   time.Duration
}

func NewAutomationService(
	uowFactory unitofwork.RepositoryFactory,
	hub *websocket.Hub,
	log logger.ILogger,
	interval time.Duration,
) IAutomationService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &automationService{
		uowFactory: uowFactory,
		engine:     automation.NewEngine(),
		builder:    graph.NewBuilder(),
		hub:        hub,
		logger:     log,
		interval:   interval,
	}
}

func (s *automationService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Automation", "Scheduler started", map[string]interface{}{"interval": s.interval.String()})

	lastRun := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Automation", "Scheduler stopped", nil)
			return
		case <-ticker.C:
			since := lastRun
			lastRun = time.Now()
			s.tick(ctx, since)
		}
	}
}

// tick runs the engine for every user with note activity since the last
// pass. Users without fresh writes produce the same suggestions anyway, so
// skipping them only saves work.
func (s *automationService) tick(ctx context.Context, since time.Time) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	userIds, err := uow.NoteRepository().ActiveUserIds(ctx, since)
	if err != nil {
		s.logger.Error("Automation", "Failed to list active users", map[string]interface{}{"error": err.Error()})
		return
	}

	for _, userId := range userIds {
		created, err := s.RunForUser(ctx, userId)
		if err != nil {
			s.logger.Error("Automation", "Engine run failed", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
			continue
		}
		if len(created) > 0 {
			s.logger.Info("Automation", "Suggestions created", map[string]interface{}{
				"user_id": userId,
				"count":   len(created),
			})
		}
	}
}

func (s *automationService) RunForUser(ctx context.Context, userId uuid.UUID) ([]*entity.Suggestion, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx, specification.NoteOwnedByUser{UserID: userId})
	if err != nil {
		return nil, err
	}

	snapshot, err := uow.KnowledgeGraphRepository().Load(ctx, userId)
	if err != nil {
		// Unreadable snapshots degrade to an empty graph; the rebuild
		// below replaces them.
		s.logger.Warn("Automation", "Failed to load graph snapshot, rebuilding", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		snapshot = nil
	}
	g := graph.FromSnapshot(snapshot)
	if g.Empty() {
		if g, err = s.builder.Rebuild(notes); err != nil {
			return nil, err
		}
		if err := uow.KnowledgeGraphRepository().Save(ctx, userId, g.Snapshot()); err != nil {
			return nil, err
		}
	}

	pending, err := uow.SuggestionRepository().FindAll(ctx,
		specification.SuggestionOwnedByUser{UserID: userId},
		specification.ByStatus{Status: string(entity.SuggestionPending)},
	)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.engine.Run(automation.Input{
		UserId:  userId,
		Notes:   notes,
		Graph:   g,
		Pending: pending,
		Now:     time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, nil
	}

	if err := uow.SuggestionRepository().CreateAll(ctx, suggestions); err != nil {
		return nil, err
	}

	if s.hub != nil {
		for _, suggestion := range suggestions {
			s.hub.Send(userId, websocket.PushMessage{
				Type: "suggestion",
				Data: toSuggestionResponse(suggestion),
			})
		}
	}

	return suggestions, nil
}

func toSuggestionResponse(s *entity.Suggestion) *dto.SuggestionResponse {
	return &dto.SuggestionResponse{
		Id:          s.Id,
		Type:        string(s.Type),
		Title:       s.Title,
		Description: s.Description,
		Payload:     json.RawMessage(s.Payload),
		Confidence:  s.Confidence,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
	}
}
