package implementation

import (
	"context"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/contract"
	"ai-boardroom-be/internal/repository/specification"
	"ai-boardroom-be/pkg/vectorstore"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartitionStore adapts the twin embedding repository to the generic
// vector store contract used by the retrieval stage.
type PartitionStore struct {
	repo contract.TwinEmbeddingRepository
}

var _ vectorstore.Store = &PartitionStore{}

func NewPartitionStore(db *gorm.DB) *PartitionStore {
	return &PartitionStore{repo: NewTwinEmbeddingRepository(db)}
}

func (s *PartitionStore) Upsert(ctx context.Context, collection string, docs []vectorstore.Document) error {
	embeddings := make([]*entity.TwinEmbedding, len(docs))
	for i, doc := range docs {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			id = uuid.New()
		}
		sourceType := ""
		if doc.Metadata != nil {
			if st, ok := doc.Metadata["source_type"].(string); ok {
				sourceType = st
			}
		}
		embeddings[i] = &entity.TwinEmbedding{
			Id:             id,
			Collection:     collection,
			Document:       doc.Content,
			EmbeddingValue: doc.Vector,
			SourceType:     sourceType,
			ChunkIndex:     i,
		}
	}
	if err := s.repo.CreateBulk(ctx, embeddings); err != nil {
		return vectorstore.NewRetrievalError(collection, err)
	}
	return nil
}

func (s *PartitionStore) Query(ctx context.Context, collection string, vector []float32, k int) (*vectorstore.QueryResult, error) {
	chunks, err := s.repo.SearchSimilar(ctx, collection, vector, k)
	if err != nil {
		return nil, vectorstore.NewRetrievalError(collection, err)
	}

	result := &vectorstore.QueryResult{
		Documents: make([]string, len(chunks)),
		Distances: make([]float64, len(chunks)),
	}
	for i, c := range chunks {
		result.Documents[i] = c.Document
		result.Distances[i] = c.Distance
	}
	return result, nil
}

func (s *PartitionStore) Count(ctx context.Context, collection string) (int64, error) {
	return s.repo.Count(ctx, specification.ByCollection{Collection: collection})
}
