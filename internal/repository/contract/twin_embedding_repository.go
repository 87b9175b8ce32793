package contract

import (
	"context"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/specification"
)

// ScoredChunk wraps a stored document with its cosine distance to the query
// vector (0.0 = identical, higher = less similar).
type ScoredChunk struct {
	Document string
	Distance float64
}

type TwinEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.TwinEmbedding) error
	DeleteByCollection(ctx context.Context, collection string) error
	DeleteByCollectionAndSource(ctx context.Context, collection, sourceType string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TwinEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar returns the nearest chunks in one partition ordered by
	// cosine distance ascending.
	SearchSimilar(ctx context.Context, collection string, vector []float32, limit int) ([]*ScoredChunk, error)
}
