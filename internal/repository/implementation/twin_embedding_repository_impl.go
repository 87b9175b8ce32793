package implementation

import (
	"context"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/mapper"
	"ai-boardroom-be/internal/model"
	"ai-boardroom-be/internal/repository/contract"
	"ai-boardroom-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type TwinEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TwinEmbeddingMapper
}

func NewTwinEmbeddingRepository(db *gorm.DB) contract.TwinEmbeddingRepository {
	return &TwinEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewTwinEmbeddingMapper(),
	}
}

func (r *TwinEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TwinEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.TwinEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *TwinEmbeddingRepositoryImpl) DeleteByCollection(ctx context.Context, collection string) error {
	return r.db.WithContext(ctx).Where("collection = ?", collection).Delete(&model.TwinEmbedding{}).Error
}

func (r *TwinEmbeddingRepositoryImpl) DeleteByCollectionAndSource(ctx context.Context, collection, sourceType string) error {
	return r.db.WithContext(ctx).
		Where("collection = ? AND source_type = ?", collection, sourceType).
		Delete(&model.TwinEmbedding{}).Error
}

func (r *TwinEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TwinEmbedding, error) {
	var models []*model.TwinEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TwinEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.TwinEmbedding{}).Count(&count).Error
	return count, err
}

func (r *TwinEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, collection string, vector []float32, limit int) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector: embedding_value <=> query_vector
	type result struct {
		Document string
		Distance float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("twin_embeddings").
		Select("document, embedding_value <=> ? as distance", queryVector).
		Where("collection = ?", collection).
		Where("deleted_at IS NULL").
		Order("distance ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]*contract.ScoredChunk, len(results))
	for i, res := range results {
		chunks[i] = &contract.ScoredChunk{Document: res.Document, Distance: res.Distance}
	}
	return chunks, nil
}
