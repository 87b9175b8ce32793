package contract

import (
	"context"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TwinRepository interface {
	Create(ctx context.Context, twin *entity.Twin) error
	Update(ctx context.Context, twin *entity.Twin) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Twin, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Twin, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
