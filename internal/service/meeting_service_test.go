package service

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"

	"ai-boardroom-be/internal/dto"
	"ai-boardroom-be/internal/repository/contract"
	"ai-boardroom-be/internal/repository/unitofwork"
	"ai-boardroom-be/pkg/meeting"

	"github.com/stretchr/testify/assert"
)

type stubUnitOfWork struct{}

func (stubUnitOfWork) Begin(ctx context.Context) error { return nil }
func (stubUnitOfWork) Commit() error                   { return nil }
func (stubUnitOfWork) Rollback() error                 { return nil }
func (stubUnitOfWork) TwinRepository() contract.TwinRepository {
	return nil
}
func (stubUnitOfWork) TwinEmbeddingRepository() contract.TwinEmbeddingRepository {
	return nil
}

type stubUowFactory struct{}

func (stubUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return stubUnitOfWork{}
}

type countingRecommender struct {
	mu    sync.Mutex
	calls int
}

func (c *countingRecommender) Recommend(_ context.Context, _ meeting.Persona, _, _, _ string, _ int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return "advice", nil
}

func newTestMeetingService(rec meeting.Recommender, defaultTurns int) IMeetingService {
	return NewMeetingService(
		stubUowFactory{},
		rec,
		meeting.NewMemoryRunStore(),
		defaultTurns,
		nil,
		log.New(os.Stdout, "", 0),
	)
}

func TestStartDefaultsTurnsFromConfig(t *testing.T) {
	rec := &countingRecommender{}
	svc := newTestMeetingService(rec, 3)

	res, err := svc.Start(context.Background(), &dto.StartMeetingRequest{
		Task:   "Quarterly plan review",
		Agents: []string{"Sam_Altman"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, res.Turns)
	assert.Equal(t, 3, rec.calls)
}

func TestStartHonorsExplicitTurns(t *testing.T) {
	rec := &countingRecommender{}
	svc := newTestMeetingService(rec, 3)

	res, err := svc.Start(context.Background(), &dto.StartMeetingRequest{
		Task:   "Quarterly plan review",
		Agents: []string{"Sam_Altman", "Andrew_Ng"},
		Turns:  2,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Turns)
	assert.Equal(t, 4, rec.calls)
}
