package unitofwork

import (
	"context"

	"ai-boardroom-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TwinRepository() contract.TwinRepository
	TwinEmbeddingRepository() contract.TwinEmbeddingRepository
}
