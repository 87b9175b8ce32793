package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-boardroom-be/internal/constant"
	"ai-boardroom-be/internal/dto"
	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/memory"
	"ai-boardroom-be/internal/repository/specification"
	"ai-boardroom-be/internal/repository/unitofwork"
	"ai-boardroom-be/pkg/twin"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITwinService interface {
	Create(ctx context.Context, req *dto.CreateTwinRequest) (*dto.CreateTwinResponse, error)
	Update(ctx context.Context, req *dto.UpdateTwinRequest) (*dto.UpdateTwinResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowTwinResponse, error)
	GetAll(ctx context.Context, ownerKey string) ([]*dto.ShowTwinResponse, error)
	Ask(ctx context.Context, req *dto.AskTwinRequest) (*dto.AskTwinResponse, error)
	Ingest(ctx context.Context, req *dto.IngestTwinRequest) (*dto.IngestTwinResponse, error)
}

type twinService struct {
	uowFactory    unitofwork.RepositoryFactory
	workflow      *twin.Workflow
	conversations *memory.ConversationRepository
	publisher     IPublisherService
	logger        *log.Logger
}

func NewTwinService(
	uowFactory unitofwork.RepositoryFactory,
	workflow *twin.Workflow,
	conversations *memory.ConversationRepository,
	publisher IPublisherService,
	logger *log.Logger,
) ITwinService {
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	return &twinService{
		uowFactory:    uowFactory,
		workflow:      workflow,
		conversations: conversations,
		publisher:     publisher,
		logger:        logger,
	}
}

func (s *twinService) Create(ctx context.Context, req *dto.CreateTwinRequest) (*dto.CreateTwinResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	t := &entity.Twin{
		Id:       uuid.New(),
		Name:     req.Name,
		OwnerKey: req.OwnerKey,
		Profile:  req.Profile,
	}
	if err := uow.TwinRepository().Create(ctx, t); err != nil {
		return nil, err
	}

	return &dto.CreateTwinResponse{Id: t.Id}, nil
}

func (s *twinService) Update(ctx context.Context, req *dto.UpdateTwinRequest) (*dto.UpdateTwinResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	t, err := uow.TwinRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Twin not found")
	}

	t.Name = req.Name
	if req.Profile != nil {
		t.Profile = req.Profile
	}
	if err := uow.TwinRepository().Update(ctx, t); err != nil {
		return nil, err
	}

	return &dto.UpdateTwinResponse{Id: t.Id}, nil
}

// Delete removes the twin and all three of its vector partitions.
func (s *twinService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	t, err := uow.TwinRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if t == nil {
		return fiber.NewError(fiber.StatusNotFound, "Twin not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	twinID := id.String()
	for _, collection := range []string{
		twin.StyleCollection(twinID),
		twin.ContextCollection(twinID),
		twin.DecisionCollection(twinID),
	} {
		if err := uow.TwinEmbeddingRepository().DeleteByCollection(ctx, collection); err != nil {
			return err
		}
	}
	if err := uow.TwinRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.conversations.Clear(twinID)
	return uow.Commit()
}

func (s *twinService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowTwinResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	t, err := uow.TwinRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Twin not found")
	}

	return toShowTwinResponse(t), nil
}

func (s *twinService) GetAll(ctx context.Context, ownerKey string) ([]*dto.ShowTwinResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if ownerKey != "" {
		specs = append(specs, specification.ByOwnerKey{OwnerKey: ownerKey})
	}

	twins, err := uow.TwinRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowTwinResponse, len(twins))
	for i, t := range twins {
		res[i] = toShowTwinResponse(t)
	}
	return res, nil
}

// Ask runs the full reasoning workflow for one question, records the
// exchange in the short-term conversation window, and queues it for
// long-term decision-history indexing.
func (s *twinService) Ask(ctx context.Context, req *dto.AskTwinRequest) (*dto.AskTwinResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	t, err := uow.TwinRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Twin not found")
	}

	// Feed the short-term window back in so follow-ups resolve references
	// like "that" or "the second option".
	var history []string
	for _, ex := range s.conversations.Get(t.Id.String()) {
		history = append(history, fmt.Sprintf("Q: %s\nA: %s", ex.Query, ex.Response))
	}

	result := s.workflow.Run(ctx, t.Id.String(), req.Query, t.Profile, history)

	s.conversations.Append(t.Id.String(), memory.Exchange{
		Query:    req.Query,
		Response: result.Response,
		At:       time.Now(),
	})

	// Queue the exchange so future questions can retrieve it.
	exchange := fmt.Sprintf("Question: %s\nAnswer: %s", req.Query, result.Response)
	if err := s.publisher.PublishIngest(ctx, dto.PublishIngestMessage{
		TwinId:     t.Id,
		SourceType: constant.SourceTypeExchange,
		Content:    exchange,
	}); err != nil {
		s.logger.Printf("[WARN] Failed to queue exchange for twin %s: %v", t.Id, err)
	}

	return &dto.AskTwinResponse{
		Response:   result.Response,
		Confidence: result.Confidence,
		Escalated:  result.Escalated,
	}, nil
}

func (s *twinService) Ingest(ctx context.Context, req *dto.IngestTwinRequest) (*dto.IngestTwinResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	t, err := uow.TwinRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Twin not found")
	}

	if err := s.publisher.PublishIngest(ctx, dto.PublishIngestMessage{
		TwinId:     t.Id,
		SourceType: req.SourceType,
		Content:    req.Content,
	}); err != nil {
		return nil, err
	}

	return &dto.IngestTwinResponse{Queued: true}, nil
}

func toShowTwinResponse(t *entity.Twin) *dto.ShowTwinResponse {
	return &dto.ShowTwinResponse{
		Id:        t.Id,
		Name:      t.Name,
		OwnerKey:  t.OwnerKey,
		Profile:   t.Profile,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
