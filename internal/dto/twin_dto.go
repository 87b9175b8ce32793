package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-boardroom-be/pkg/twin"
)

type CreateTwinRequest struct {
	Name     string            `json:"name" validate:"required"`
	OwnerKey string            `json:"owner_key"`
	Profile  map[string]string `json:"profile"`
}

type CreateTwinResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateTwinRequest struct {
	Id      uuid.UUID
	Name    string            `json:"name" validate:"required"`
	Profile map[string]string `json:"profile"`
}

type UpdateTwinResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowTwinResponse struct {
	Id        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	OwnerKey  string            `json:"owner_key"`
	Profile   map[string]string `json:"profile"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt *time.Time        `json:"updated_at"`
}

type AskTwinRequest struct {
	Id    uuid.UUID
	Query string `json:"query" validate:"required"`
}

type AskTwinResponse struct {
	Response   string          `json:"response"`
	Confidence twin.Confidence `json:"confidence"`
	Escalated  bool            `json:"escalated"`
}

type IngestTwinRequest struct {
	Id         uuid.UUID
	SourceType string `json:"source_type" validate:"required,oneof=email document decision exchange"`
	Content    string `json:"content" validate:"required"`
}

type IngestTwinResponse struct {
	Queued bool `json:"queued"`
}

// PublishIngestMessage is the watermill payload for one ingestion job.
type PublishIngestMessage struct {
	TwinId     uuid.UUID `json:"twin_id"`
	SourceType string    `json:"source_type"`
	Content    string    `json:"content"`
}
