package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nexmind-be/internal/entity"
	"nexmind-be/internal/repository/contract"
	"nexmind-be/internal/repository/specification"
	"nexmind-be/internal/repository/unitofwork"
	"nexmind-be/pkg/graph"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubLogger struct{}

func (stubLogger) Debug(module, message string, details map[string]interface{}) {}
func (stubLogger) Info(module, message string, details map[string]interface{})  {}
func (stubLogger) Warn(module, message string, details map[string]interface{})  {}
func (stubLogger) Error(module, message string, details map[string]interface{}) {}
func (stubLogger) Sync() error                                                  { return nil }

type stubNoteRepo struct {
	contract.NoteRepository
	notes []*entity.Note
}

func (r *stubNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	return r.notes, nil
}

type stubGraphRepo struct {
	loadErr  error
	snapshot *graph.Snapshot
	saved    *graph.Snapshot
}

func (r *stubGraphRepo) Load(ctx context.Context, userId uuid.UUID) (*graph.Snapshot, error) {
	return r.snapshot, r.loadErr
}

func (r *stubGraphRepo) Save(ctx context.Context, userId uuid.UUID, snapshot *graph.Snapshot) error {
	r.saved = snapshot
	return nil
}

func (r *stubGraphRepo) Delete(ctx context.Context, userId uuid.UUID) error { return nil }

type stubUow struct {
	notes  *stubNoteRepo
	graphs *stubGraphRepo
}

func (u *stubUow) Begin(ctx context.Context) error { return nil }
func (u *stubUow) Commit() error                   { return nil }
func (u *stubUow) Rollback() error                 { return nil }

func (u *stubUow) NoteRepository() contract.NoteRepository              { return u.notes }
func (u *stubUow) SuggestionRepository() contract.SuggestionRepository  { return nil }
func (u *stubUow) KnowledgeGraphRepository() contract.KnowledgeGraphRepository {
	return u.graphs
}

type stubFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func TestGraphServiceShowRebuildsWhenSnapshotUnreadable(t *testing.T) {
	userId := uuid.New()
	notes := []*entity.Note{
		{
			Id:        uuid.New(),
			UserId:    userId,
			Content:   "Plan the budget review",
			Category:  entity.CategoryInfo,
			Entities:  entity.EntityBag{Topics: []string{"budget"}},
			Embedding: []float32{1, 0, 0},
			CreatedAt: time.Now(),
		},
	}
	graphs := &stubGraphRepo{loadErr: errors.New("corrupt snapshot")}
	uow := &stubUow{notes: &stubNoteRepo{notes: notes}, graphs: graphs}

	svc := NewGraphService(&stubFactory{uow: uow}, stubLogger{})

	resp, err := svc.Show(context.Background(), userId)
	assert.NoError(t, err)
	if assert.NotNil(t, resp) {
		assert.NotEmpty(t, resp.Nodes)
	}
	// The rebuilt graph replaces the unreadable snapshot.
	assert.NotNil(t, graphs.saved)
}
