package unitofwork

import (
	"context"

	"nexmind-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	SuggestionRepository() contract.SuggestionRepository
	KnowledgeGraphRepository() contract.KnowledgeGraphRepository
}
