package entity

import (
	"time"

	"github.com/google/uuid"
)

type Twin struct {
	Id        uuid.UUID
	Name      string
	OwnerKey  string
	Profile   map[string]string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type TwinEmbedding struct {
	Id             uuid.UUID
	Collection     string
	Document       string
	EmbeddingValue []float32
	SourceType     string
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
