package service

import (
	"context"
	"log"
	"sort"
	"time"

	"ai-boardroom-be/internal/constant"
	"ai-boardroom-be/internal/dto"
	"ai-boardroom-be/internal/repository/specification"
	"ai-boardroom-be/internal/repository/unitofwork"
	"ai-boardroom-be/pkg/events"
	"ai-boardroom-be/pkg/meeting"
	pktNats "ai-boardroom-be/pkg/nats"

	"github.com/google/uuid"
)

type IMeetingService interface {
	Start(ctx context.Context, req *dto.StartMeetingRequest) (*dto.MeetingRunResponse, error)
	GetRun(ctx context.Context, runID string) (*dto.MeetingRunResponse, error)
	ListPersonas(ctx context.Context) ([]*dto.PersonaResponse, error)
}

type meetingService struct {
	uowFactory   unitofwork.RepositoryFactory
	recommender  meeting.Recommender
	runs         meeting.RunStore
	memory       *meeting.PersonaMemory
	defaultTurns int
	natsPub      *pktNats.Publisher
	logger       *log.Logger
}

func NewMeetingService(
	uowFactory unitofwork.RepositoryFactory,
	recommender meeting.Recommender,
	runs meeting.RunStore,
	defaultTurns int,
	natsPub *pktNats.Publisher,
	logger *log.Logger,
) IMeetingService {
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	if defaultTurns < 1 {
		defaultTurns = 1
	}
	return &meetingService{
		uowFactory:   uowFactory,
		recommender:  recommender,
		runs:         runs,
		memory:       meeting.NewPersonaMemory(24 * time.Hour),
		defaultTurns: defaultTurns,
		natsPub:      natsPub,
		logger:       logger,
	}
}

// Start assembles the roster (fixed leaders plus any digital twins named by
// UUID in the agents list) and runs the panel.
func (s *meetingService) Start(ctx context.Context, req *dto.StartMeetingRequest) (*dto.MeetingRunResponse, error) {
	roster, err := s.buildRoster(ctx, req.Agents)
	if err != nil {
		return nil, err
	}

	turns := req.Turns
	if turns <= 0 {
		// Omitted in the request; run the configured default.
		turns = s.defaultTurns
	}

	orch := meeting.NewOrchestrator(roster, s.recommender, s.runs, s.memory, s.logger)
	st, err := orch.Run(ctx, req.Task, req.UserProfile, req.Agents, meeting.Config{
		MeetingType: req.MeetingType,
		Turns:       turns,
	})
	if err != nil {
		return nil, err
	}

	s.publishCompleted(ctx, st)

	return toMeetingRunResponse(st), nil
}

func (s *meetingService) GetRun(ctx context.Context, runID string) (*dto.MeetingRunResponse, error) {
	st, err := s.runs.Get(ctx, runID)
	if err != nil {
		return nil, err
	}
	return toMeetingRunResponse(st), nil
}

func (s *meetingService) ListPersonas(ctx context.Context) ([]*dto.PersonaResponse, error) {
	res := make([]*dto.PersonaResponse, 0, len(constant.Leaders))
	for _, p := range constant.Leaders {
		res = append(res, &dto.PersonaResponse{
			Id:          p.ID,
			Name:        p.Name,
			Company:     p.Company,
			Role:        p.Role,
			Description: p.Description,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res, nil
}

// buildRoster starts from the fixed leaders and resolves agent ids that look
// like twin UUIDs against the database. Unresolvable ids are left out so the
// orchestrator rejects them before any node runs.
func (s *meetingService) buildRoster(ctx context.Context, agents []string) (map[string]meeting.Persona, error) {
	roster := make(map[string]meeting.Persona, len(constant.Leaders))
	for id, p := range constant.Leaders {
		roster[id] = p
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	for _, id := range agents {
		if _, ok := roster[id]; ok {
			continue
		}
		twinID, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		t, err := uow.TwinRepository().FindOne(ctx, specification.ByID{ID: twinID})
		if err != nil {
			return nil, err
		}
		if t == nil {
			continue
		}
		roster[id] = meeting.Persona{
			ID:          id,
			Name:        t.Name,
			Company:     profileOr(t.Profile, constant.ProfileKeyCompany, "Organization"),
			Role:        profileOr(t.Profile, constant.ProfileKeyDesignation, "Executive"),
			Description: profileOr(t.Profile, constant.ProfileKeyGoals, "Digital twin of a business leader."),
		}
	}
	return roster, nil
}

func (s *meetingService) publishCompleted(ctx context.Context, st *meeting.State) {
	if s.natsPub == nil {
		return
	}
	event := events.BaseEvent{
		Type: "MEETING_COMPLETED",
		Data: map[string]interface{}{
			"run_id":       st.RunID,
			"task":         st.Task,
			"meeting_type": st.MeetingType,
			"turns":        st.Turns,
			"personas":     len(st.Recommendations),
		},
		OccurredAt: time.Now(),
	}
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.logger.Printf("[WARN] Failed to publish MEETING_COMPLETED for run %s: %v", st.RunID, err)
	}
}

func profileOr(profile map[string]string, key, fallback string) string {
	if v, ok := profile[key]; ok && v != "" {
		return v
	}
	return fallback
}

func toMeetingRunResponse(st *meeting.State) *dto.MeetingRunResponse {
	return &dto.MeetingRunResponse{
		RunId:           st.RunID,
		Task:            st.Task,
		MeetingType:     st.MeetingType,
		Turns:           st.Turns,
		Recommendations: st.Recommendations,
		CompletedAt:     st.CompletedAt,
	}
}
