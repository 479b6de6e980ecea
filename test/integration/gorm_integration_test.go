package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"nexmind-be/internal/entity"
	"nexmind-be/internal/repository/specification"
	"nexmind-be/internal/repository/unitofwork"
	"nexmind-be/pkg/database"
	"nexmind-be/pkg/graph"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.NoteRepository())
	assert.NotNil(t, uow.SuggestionRepository())
	assert.NotNil(t, uow.KnowledgeGraphRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Note Repository", func(t *testing.T) {
		count, err := uow.NoteRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Note count: %d", count)
	})

	t.Run("Note round trip in transaction", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		status := entity.TaskOpen
		priority := entity.PriorityHigh
		due := "2026-09-15"
		note := &entity.Note{
			Id:       uuid.New(),
			UserId:   userId,
			Content:  "Call the landlord about the lease renewal",
			Category: entity.CategoryTask,
			Entities: entity.EntityBag{
				Topics: []string{"lease"},
			},
			TaskStatus:   &status,
			TaskPriority: &priority,
			DueDate:      &due,
			CreatedAt:    time.Now(),
		}

		err = uow.NoteRepository().Create(ctx, note)
		assert.NoError(t, err)

		found, err := uow.NoteRepository().FindOne(ctx,
			specification.ByID{ID: note.Id},
			specification.NoteOwnedByUser{UserID: userId},
		)
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, note.Content, found.Content)
			assert.Equal(t, entity.CategoryTask, found.Category)
			assert.Equal(t, []string{"lease"}, found.Entities.Topics)
			assert.Equal(t, due, *found.DueDate)
		}

		old, err := uow.NoteRepository().FindAll(ctx,
			specification.NoteOwnedByUser{UserID: userId},
			specification.CreatedBefore{Before: time.Now().Add(time.Minute)},
		)
		assert.NoError(t, err)
		assert.Len(t, old, 1)

		// Hard-delete the fixture rows so reruns against a shared DB stay clean.
		err = uow.NoteRepository().DeleteAllByUserIdUnscoped(ctx, userId)
		assert.NoError(t, err)

		remaining, err := uow.NoteRepository().FindAll(ctx,
			specification.NoteOwnedByUser{UserID: userId},
		)
		assert.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("Graph snapshot round trip", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		g := graph.New()
		g.UpsertEntityNode(graph.NodeTopic, "Budget")
		g.LastUpdated = time.Now()

		err := uow.KnowledgeGraphRepository().Save(ctx, userId, g.Snapshot())
		assert.NoError(t, err)

		loaded, err := uow.KnowledgeGraphRepository().Load(ctx, userId)
		assert.NoError(t, err)
		if assert.NotNil(t, loaded) {
			assert.Len(t, loaded.Nodes, 1)
			assert.Equal(t, "topic:budget", loaded.Nodes[0].Id)
		}

		err = uow.KnowledgeGraphRepository().Delete(ctx, userId)
		assert.NoError(t, err)
	})
}
