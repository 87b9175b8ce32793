package unitofwork

import "context"

// RepositoryFactory hands out transaction-scoped units of work.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
