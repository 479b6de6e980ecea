package service

import (
	"context"
	"encoding/json"
	"log"

	"nexmind-be/internal/dto"
	"nexmind-be/internal/entity"
	"nexmind-be/internal/repository/specification"
	"nexmind-be/internal/repository/unitofwork"
	"nexmind-be/pkg/embedding"
	"nexmind-be/pkg/graph"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	builder           *graph.Builder
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		builder:           graph.NewBuilder(),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedNoteMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if payload.Rebuild {
		cs.processRebuild(ctx, msg, payload.UserId)
		return
	}

	log.Printf("[INFO] Processing note embedding for NoteId: %s", payload.NoteId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: payload.NoteId})
	if err != nil {
		log.Printf("[ERROR] Failed to get note %s: %v", payload.NoteId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if note == nil {
		log.Printf("[WARN] Note not found, skipping: %s", payload.NoteId)
		msg.Ack() // Note deleted? Ack.
		return
	}

	res, err := cs.embeddingProvider.Generate(note.Content, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for note %s: %v", payload.NoteId, err)
		msg.Nack()
		return
	}
	note.Embedding = res.Embedding.Values

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		log.Printf("[ERROR] Failed to persist embedding for note %s: %v", payload.NoteId, err)
		msg.Nack()
		return
	}

	if err := cs.updateGraph(ctx, uow, note); err != nil {
		log.Printf("[ERROR] Failed to update graph for note %s: %v", payload.NoteId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Note embedded and graph updated for NoteId: %s", payload.NoteId)
	msg.Ack()
}

// updateGraph applies the incremental per-note graph update against the
// stored snapshot.
func (cs *consumerService) updateGraph(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note) error {
	snapshot, err := uow.KnowledgeGraphRepository().Load(ctx, note.UserId)
	if err != nil {
		// An unreadable snapshot is treated as empty state, not a failure.
		log.Printf("[WARN] Failed to load graph snapshot for user %s, starting empty: %v", note.UserId, err)
		snapshot = nil
	}
	g := graph.FromSnapshot(snapshot)

	others, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: note.UserId},
		specification.WithEmbedding{},
	)
	if err != nil {
		return err
	}

	if err := cs.builder.UpdateForNote(g, note, others); err != nil {
		return err
	}

	return uow.KnowledgeGraphRepository().Save(ctx, note.UserId, g.Snapshot())
}

func (cs *consumerService) processRebuild(ctx context.Context, msg *message.Message, userId uuid.UUID) {
	log.Printf("[INFO] Rebuilding knowledge graph for user: %s", userId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx, specification.NoteOwnedByUser{UserID: userId})
	if err != nil {
		log.Printf("[ERROR] Failed to load notes for rebuild: %v", err)
		msg.Nack()
		return
	}

	g, err := cs.builder.Rebuild(notes)
	if err != nil {
		log.Printf("[ERROR] Graph rebuild failed for user %s: %v", userId, err)
		msg.Nack()
		return
	}

	if err := uow.KnowledgeGraphRepository().Save(ctx, userId, g.Snapshot()); err != nil {
		log.Printf("[ERROR] Failed to save rebuilt graph for user %s: %v", userId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Graph rebuilt for user %s (%d nodes, %d edges)", userId, len(g.Nodes), len(g.Edges))
	msg.Ack()
}
