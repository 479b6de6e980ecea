package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nexmind-be/internal/dto"
	"nexmind-be/internal/entity"
	"nexmind-be/internal/repository/specification"
	"nexmind-be/internal/repository/unitofwork"
	"nexmind-be/pkg/events"
	pktNats "nexmind-be/pkg/nats"
	"nexmind-be/pkg/nlp"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Capture(ctx context.Context, userId uuid.UUID, req *dto.CaptureNoteRequest) (*dto.CaptureNoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListNotesRequest) ([]*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	PatchTask(ctx context.Context, userId uuid.UUID, req *dto.PatchTaskRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	pipeline         *nlp.Pipeline
	eventPublisher   *pktNats.Publisher
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	pipeline *nlp.Pipeline,
	eventPublisher *pktNats.Publisher,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		pipeline:         pipeline,
		eventPublisher:   eventPublisher,
	}
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	category := entity.NoteCategory(req.Category)
	if category == "" {
		category = entity.CategoryInfo
	}

	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   req.Content,
		Category:  category,
		CreatedAt: time.Now(),
	}
	if category == entity.CategoryTask {
		status := entity.TaskOpen
		note.TaskStatus = &status
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	if err := c.publishEmbed(ctx, note.Id, userId, false); err != nil {
		return nil, err
	}
	c.publishEvent(ctx, events.NoteCreated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return &dto.CreateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) Capture(ctx context.Context, userId uuid.UUID, req *dto.CaptureNoteRequest) (*dto.CaptureNoteResponse, error) {
	items, err := c.pipeline.Classify(ctx, req.Text)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	notes := make([]*entity.Note, 0, len(items))
	byGroup := make(map[string][]*entity.Note)

	for _, item := range items {
		note := &entity.Note{
			Id:         uuid.New(),
			UserId:     userId,
			Content:    item.Content,
			Category:   item.Category,
			Entities:   item.Entities,
			Confidence: item.Confidence,
			Reason:     item.Reason,
			DueDate:    item.DueDate,
			CreatedAt:  now,
		}
		if item.Category == entity.CategoryTask {
			status := entity.TaskOpen
			note.TaskStatus = &status
			note.TaskPriority = item.Priority
		}
		notes = append(notes, note)
		if item.GroupId != "" {
			byGroup[item.GroupId] = append(byGroup[item.GroupId], note)
		}
	}

	// Items classified out of the same capture reference each other.
	for _, group := range byGroup {
		if len(group) < 2 {
			continue
		}
		for _, note := range group {
			for _, other := range group {
				if other.Id != note.Id {
					note.RelatedNoteIds = append(note.RelatedNoteIds, other.Id)
				}
			}
		}
	}

	res := &dto.CaptureNoteResponse{Notes: make([]dto.NoteResponse, 0, len(notes))}
	for _, note := range notes {
		if err := uow.NoteRepository().Create(ctx, note); err != nil {
			return nil, err
		}
		if err := c.publishEmbed(ctx, note.Id, userId, false); err != nil {
			return nil, err
		}
		res.Notes = append(res.Notes, *toNoteResponse(note))
	}

	c.publishEvent(ctx, events.NotesCaptured, map[string]interface{}{
		"user_id": userId,
		"count":   len(notes),
	})

	return res, nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil // Not found
	}

	return toNoteResponse(note), nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID, req *dto.ListNotesRequest) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.NoteOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if req.Category != "" {
		specs = append(specs, specification.ByCategory{Category: req.Category})
	}
	if req.TaskStatus != "" {
		specs = append(specs, specification.ByTaskStatus{Status: req.TaskStatus})
	}
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: req.Offset})

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNoteResponse(note))
	}
	return res, nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	now := time.Now()
	note.Content = req.Content
	if req.Category != "" {
		note.Category = entity.NoteCategory(req.Category)
	}
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	if err := c.publishEmbed(ctx, note.Id, userId, false); err != nil {
		return nil, err
	}
	c.publishEvent(ctx, events.NoteUpdated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return &dto.UpdateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) PatchTask(ctx context.Context, userId uuid.UUID, req *dto.PatchTaskRequest) (*dto.UpdateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	now := time.Now()
	if req.Status != nil {
		status := entity.TaskStatus(*req.Status)
		note.TaskStatus = &status
	}
	if req.Priority != nil {
		priority := entity.TaskPriority(*req.Priority)
		note.TaskPriority = &priority
	}
	if req.DueDate != nil {
		note.DueDate = req.DueDate
	}
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return &dto.UpdateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return nil
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	// Incremental updates cannot remove nodes, so a delete forces a rebuild.
	if err := c.publishEmbed(ctx, id, userId, true); err != nil {
		return err
	}
	c.publishEvent(ctx, events.NoteDeleted, map[string]interface{}{
		"note_id": id,
		"user_id": userId,
	})

	return nil
}

func (c *noteService) publishEmbed(ctx context.Context, noteId, userId uuid.UUID, rebuild bool) error {
	payload := dto.PublishEmbedNoteMessage{
		NoteId:  noteId,
		UserId:  userId,
		Rebuild: rebuild,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.publisherService.Publish(ctx, payloadJson)
}

// publishEvent logs but never fails the request; the event bus is auxiliary.
func (c *noteService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if c.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	res := &dto.NoteResponse{
		Id:             note.Id,
		Content:        note.Content,
		Category:       string(note.Category),
		Entities:       note.Entities,
		Confidence:     note.Confidence,
		Reason:         note.Reason,
		DueDate:        note.DueDate,
		RelatedNoteIds: note.RelatedNoteIds,
		CreatedAt:      note.CreatedAt,
		UpdatedAt:      note.UpdatedAt,
	}
	if note.TaskStatus != nil {
		s := string(*note.TaskStatus)
		res.TaskStatus = &s
	}
	if note.TaskPriority != nil {
		p := string(*note.TaskPriority)
		res.TaskPriority = &p
	}
	return res
}
