package mapper

import (
	"time"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type TwinEmbeddingMapper struct{}

func NewTwinEmbeddingMapper() *TwinEmbeddingMapper {
	return &TwinEmbeddingMapper{}
}

func (m *TwinEmbeddingMapper) ToEntity(e *model.TwinEmbedding) *entity.TwinEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.TwinEmbedding{
		Id:             e.Id,
		Collection:     e.Collection,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		SourceType:     e.SourceType,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *TwinEmbeddingMapper) ToModel(e *entity.TwinEmbedding) *model.TwinEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.TwinEmbedding{
		Id:             e.Id,
		Collection:     e.Collection,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		SourceType:     e.SourceType,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *TwinEmbeddingMapper) ToEntities(embeddings []*model.TwinEmbedding) []*entity.TwinEmbedding {
	entities := make([]*entity.TwinEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *TwinEmbeddingMapper) ToModels(embeddings []*entity.TwinEmbedding) []*model.TwinEmbedding {
	models := make([]*model.TwinEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
