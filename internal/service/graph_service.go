package service

import (
	"context"

	"nexmind-be/internal/dto"
	"nexmind-be/internal/pkg/logger"
	"nexmind-be/internal/repository/specification"
	"nexmind-be/internal/repository/unitofwork"
	"nexmind-be/pkg/graph"

	"github.com/google/uuid"
)

type IGraphService interface {
	Show(ctx context.Context, userId uuid.UUID) (*dto.GraphResponse, error)
	Rebuild(ctx context.Context, userId uuid.UUID) (*dto.RebuildGraphResponse, error)
	NoteNeighbors(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.NoteNeighborsResponse, error)
}

type graphService struct {
	uowFactory unitofwork.RepositoryFactory
	builder    *graph.Builder
	logger     logger.ILogger
}

func NewGraphService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IGraphService {
	return &graphService{
		uowFactory: uowFactory,
		builder:    graph.NewBuilder(),
		logger:     log,
	}
}

// load returns the user's graph, rebuilding from the note set when no
// snapshot exists yet.
func (c *graphService) load(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*graph.Graph, error) {
	snapshot, err := uow.KnowledgeGraphRepository().Load(ctx, userId)
	if err != nil {
		// An unreadable snapshot is treated as absent; the rebuild below
		// writes a fresh one.
		c.logger.Warn("GraphService", "Failed to load graph snapshot, rebuilding", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		snapshot = nil
	}
	g := graph.FromSnapshot(snapshot)
	if !g.Empty() {
		return g, nil
	}
	return c.rebuild(ctx, uow, userId)
}

func (c *graphService) rebuild(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*graph.Graph, error) {
	notes, err := uow.NoteRepository().FindAll(ctx, specification.NoteOwnedByUser{UserID: userId})
	if err != nil {
		return nil, err
	}

	g, err := c.builder.Rebuild(notes)
	if err != nil {
		return nil, err
	}
	if err := uow.KnowledgeGraphRepository().Save(ctx, userId, g.Snapshot()); err != nil {
		return nil, err
	}
	return g, nil
}

func (c *graphService) Show(ctx context.Context, userId uuid.UUID) (*dto.GraphResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	g, err := c.load(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	snapshot := g.Snapshot()
	return &dto.GraphResponse{
		Nodes:       snapshot.Nodes,
		Edges:       snapshot.Edges,
		LastUpdated: snapshot.LastUpdated,
	}, nil
}

func (c *graphService) Rebuild(ctx context.Context, userId uuid.UUID) (*dto.RebuildGraphResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	g, err := c.rebuild(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	return &dto.RebuildGraphResponse{
		NodeCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
	}, nil
}

func (c *graphService) NoteNeighbors(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.NoteNeighborsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	g, err := c.load(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	res := &dto.NoteNeighborsResponse{NoteId: noteId}
	for _, neighbor := range g.Neighbors(graph.NoteNodeId(noteId)) {
		res.Nodes = append(res.Nodes, neighbor.Node)
		res.Edges = append(res.Edges, neighbor.Edge)
		if neighbor.Node.Type == graph.NodeNote && neighbor.Node.Meta.SourceNoteId != nil {
			res.NoteIds = append(res.NoteIds, *neighbor.Node.Meta.SourceNoteId)
		}
	}
	return res, nil
}
