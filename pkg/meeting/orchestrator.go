package meeting

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Config parameterizes one meeting run.
type Config struct {
	MeetingType string
	Turns       int
}

// Orchestrator runs the turn-taking panel: for each turn it fans out one
// goroutine per persona, waits for all of them at a barrier, merges their
// outputs, then starts the next turn. Personas never see each other's
// same-turn output, only their own previous-turn recommendation.
type Orchestrator struct {
	roster      map[string]Persona
	recommender Recommender
	runs        RunStore
	memory      *PersonaMemory
	logger      *log.Logger
}

// NewOrchestrator wires a panel run. memory may be nil, in which case every
// persona starts each run cold.
func NewOrchestrator(roster map[string]Persona, recommender Recommender, runs RunStore, memory *PersonaMemory, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	return &Orchestrator{
		roster:      roster,
		recommender: recommender,
		runs:        runs,
		memory:      memory,
		logger:      logger,
	}
}

type turnResult struct {
	persona string
	text    string
}

// Run validates the requested personas, executes the configured number of
// turns, persists the final state keyed by a generated run id, and returns
// it. Unknown personas reject the whole run before any node executes.
func (o *Orchestrator) Run(ctx context.Context, task, userProfile string, agents []string, cfg Config) (*State, error) {
	personas := make([]Persona, 0, len(agents))
	for _, id := range agents {
		p, ok := o.roster[id]
		if !ok {
			return nil, NewValidationError("agents", fmt.Sprintf("unknown persona %q", id))
		}
		personas = append(personas, p)
	}

	st := &State{
		RunID:           uuid.NewString(),
		Task:            task,
		UserProfile:     userProfile,
		MeetingType:     cfg.MeetingType,
		Turns:           cfg.Turns,
		Recommendations: map[string]string{},
	}

	o.logger.Printf("[MEETING] run=%s personas=%d turns=%d starting", st.RunID, len(personas), cfg.Turns)

	for turn := 1; turn <= cfg.Turns; turn++ {
		st.Recommendations = MergeRecommendations(st.Recommendations, o.runTurn(ctx, st, personas, turn))
		st.CurrentTurn = turn
	}

	st.CompletedAt = time.Now().UTC()
	o.rememberRecommendations(st)
	if err := o.runs.Save(ctx, st); err != nil {
		// The run itself succeeded; persistence failure should not throw
		// away the recommendations.
		o.logger.Printf("[MEETING] run=%s persist failed: %v", st.RunID, err)
	}

	o.logger.Printf("[MEETING] run=%s complete recommendations=%d", st.RunID, len(st.Recommendations))
	return st, nil
}

// runTurn fans out one goroutine per persona and collects results at the
// barrier. Each goroutine reads only its own persona's previous-turn text,
// snapshotted before any goroutine starts.
func (o *Orchestrator) runTurn(ctx context.Context, st *State, personas []Persona, turn int) map[string]string {
	previous := make(map[string]string, len(personas))
	for _, p := range personas {
		prev := st.Recommendations[p.ID]
		if prev == "" && turn == 1 && o.memory != nil {
			// A returning persona resumes from its last meeting's position.
			prev = o.memory.Recall(p.ID)
		}
		previous[p.ID] = prev
	}

	results := make(chan turnResult, len(personas))
	var wg sync.WaitGroup
	for _, p := range personas {
		wg.Add(1)
		go func(p Persona) {
			defer wg.Done()
			text, err := o.recommender.Recommend(ctx, p, st.Task, st.UserProfile, previous[p.ID], turn)
			if err != nil || text == "" {
				o.logger.Printf("[MEETING] run=%s turn=%d persona=%s failed: %v", st.RunID, turn, p.ID, err)
				text = fallbackFor(p.ID)
			}
			results <- turnResult{persona: p.ID, text: text}
		}(p)
	}
	wg.Wait()
	close(results)

	updates := make(map[string]string, len(personas))
	for r := range results {
		updates[r.persona] = r.text
	}
	return updates
}

func fallbackFor(personaID string) string {
	return fmt.Sprintf("Fallback recommendation for %s", personaID)
}

// rememberRecommendations feeds final outputs into cross-run persona memory.
// Fallback placeholders are not worth remembering.
func (o *Orchestrator) rememberRecommendations(st *State) {
	if o.memory == nil {
		return
	}
	for id, text := range st.Recommendations {
		if text == fallbackFor(id) {
			continue
		}
		o.memory.Remember(id, text)
	}
}
