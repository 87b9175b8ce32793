package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"ai-boardroom-be/internal/constant"
	"ai-boardroom-be/internal/dto"
	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/specification"
	"ai-boardroom-be/internal/repository/unitofwork"
	"ai-boardroom-be/pkg/embedding"
	"ai-boardroom-be/pkg/twin"
	"ai-boardroom-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing ingest for TwinId: %s source=%s", payload.TwinId, payload.SourceType)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	t, err := uow.TwinRepository().FindOne(ctx, specification.ByID{ID: payload.TwinId})
	if err != nil {
		log.Printf("[ERROR] Failed to get twin %s: %v", payload.TwinId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if t == nil {
		log.Printf("[ERROR] Twin not found: %s", payload.TwinId)
		msg.Ack() // Twin deleted? Ack.
		return
	}

	// ChunkSize 1500 chars with 200 overlap, same shape the data was
	// indexed with previously so re-ingest replaces cleanly.
	chunks := utils.SplitText(payload.Content, constant.IngestChunkSize, constant.IngestChunkOverlap)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	byCollection := make(map[string][]*entity.TwinEmbedding)
	for i, chunk := range chunks {
		collection := classifyChunk(payload.TwinId.String(), payload.SourceType, chunk)

		vec, err := cs.embeddingProvider.Embed(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d for twin %s: %v", i, payload.TwinId, err)
			msg.Nack()
			return
		}

		byCollection[collection] = append(byCollection[collection], &entity.TwinEmbedding{
			Id:             uuid.New(),
			Collection:     collection,
			Document:       chunk,
			EmbeddingValue: vec,
			SourceType:     payload.SourceType,
			ChunkIndex:     i,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	total := 0
	for collection, embeddings := range byCollection {
		// Exchanges accumulate; other sources replace their prior batch.
		if payload.SourceType != constant.SourceTypeExchange {
			if err := uow.TwinEmbeddingRepository().DeleteByCollectionAndSource(ctx, collection, payload.SourceType); err != nil {
				log.Printf("[ERROR] Failed to delete old embeddings in %s: %v", collection, err)
				msg.Nack()
				return
			}
		}
		if err := uow.TwinEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
			log.Printf("[ERROR] Failed to create embeddings in %s: %v", collection, err)
			msg.Nack()
			return
		}
		total += len(embeddings)
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Ingest processed: %d chunks for TwinId: %s", total, payload.TwinId)
	msg.Ack()
}

// classifyChunk routes a chunk to one of the twin's three partitions.
// Decisions and conversation exchanges always land in decision history;
// other sources split between style and business context on keywords.
func classifyChunk(twinID, sourceType, chunk string) string {
	switch sourceType {
	case constant.SourceTypeDecision, constant.SourceTypeExchange:
		return twin.DecisionCollection(twinID)
	}

	lowered := strings.ToLower(chunk)
	for _, kw := range constant.StyleKeywords {
		if strings.Contains(lowered, kw) {
			return twin.StyleCollection(twinID)
		}
	}
	return twin.ContextCollection(twinID)
}
