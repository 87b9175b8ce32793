package meeting

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordedCall struct {
	persona  string
	previous string
	turn     int
}

// fakeRecommender records every call; safe for the per-turn fan-out.
type fakeRecommender struct {
	mu      sync.Mutex
	calls   []recordedCall
	failFor map[string]bool
}

func (f *fakeRecommender) Recommend(_ context.Context, p Persona, task, userProfile, previous string, turn int) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{persona: p.ID, previous: previous, turn: turn})
	f.mu.Unlock()
	if f.failFor[p.ID] {
		return "", errors.New("provider unavailable")
	}
	return fmt.Sprintf("%s advice turn %d", p.ID, turn), nil
}

func (f *fakeRecommender) callsFor(persona string, turn int) []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedCall
	for _, c := range f.calls {
		if c.persona == persona && c.turn == turn {
			out = append(out, c)
		}
	}
	return out
}

func testRoster() map[string]Persona {
	return map[string]Persona{
		"Sam_Altman":   {ID: "Sam_Altman", Name: "Sam Altman", Company: "OpenAI", Role: "CEO"},
		"Jensen_Huang": {ID: "Jensen_Huang", Name: "Jensen Huang", Company: "NVIDIA", Role: "CEO"},
		"Andrew_Ng":    {ID: "Andrew_Ng", Name: "Andrew Ng", Company: "DeepLearning.AI", Role: "Founder"},
	}
}

func quietLogger() *log.Logger {
	return log.New(os.Stdout, "", 0)
}

func TestRunMultiTurnPanel(t *testing.T) {
	rec := &fakeRecommender{}
	orch := NewOrchestrator(testRoster(), rec, NewMemoryRunStore(), nil, quietLogger())
	agents := []string{"Sam_Altman", "Jensen_Huang", "Andrew_Ng"}

	st, err := orch.Run(context.Background(), "Should we expand?", "CEO profile", agents, Config{MeetingType: "board_meeting", Turns: 2})

	assert.NoError(t, err)
	assert.Len(t, rec.calls, 6)
	assert.Len(t, st.Recommendations, 3)
	assert.Equal(t, 2, st.CurrentTurn)
	for _, id := range agents {
		// Later turns overwrite earlier ones.
		assert.Equal(t, fmt.Sprintf("%s advice turn 2", id), st.Recommendations[id])
	}
	assert.False(t, st.CompletedAt.IsZero())
}

func TestRunPersonaIsolation(t *testing.T) {
	rec := &fakeRecommender{}
	orch := NewOrchestrator(testRoster(), rec, NewMemoryRunStore(), nil, quietLogger())
	agents := []string{"Sam_Altman", "Jensen_Huang"}

	_, err := orch.Run(context.Background(), "task", "profile", agents, Config{Turns: 2})
	assert.NoError(t, err)

	for _, id := range agents {
		first := rec.callsFor(id, 1)
		second := rec.callsFor(id, 2)
		assert.Len(t, first, 1)
		assert.Len(t, second, 1)
		// Turn 1 starts blank; turn 2 sees only this persona's own prior text.
		assert.Empty(t, first[0].previous)
		assert.Equal(t, fmt.Sprintf("%s advice turn 1", id), second[0].previous)
	}
}

func TestRunRejectsUnknownPersona(t *testing.T) {
	rec := &fakeRecommender{}
	orch := NewOrchestrator(testRoster(), rec, NewMemoryRunStore(), nil, quietLogger())

	st, err := orch.Run(context.Background(), "task", "profile",
		[]string{"Sam_Altman", "nonexistent_agent"}, Config{Turns: 1})

	assert.Nil(t, st)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "nonexistent_agent")
	// Validation happens before any node runs.
	assert.Empty(t, rec.calls)
}

func TestRunZeroTurns(t *testing.T) {
	rec := &fakeRecommender{}
	store := NewMemoryRunStore()
	orch := NewOrchestrator(testRoster(), rec, store, nil, quietLogger())

	st, err := orch.Run(context.Background(), "task", "profile", []string{"Sam_Altman"}, Config{Turns: 0})

	assert.NoError(t, err)
	assert.Empty(t, rec.calls)
	assert.Empty(t, st.Recommendations)

	persisted, err := store.Get(context.Background(), st.RunID)
	assert.NoError(t, err)
	assert.Equal(t, st.RunID, persisted.RunID)
}

func TestRunPersonaFailureFallsBack(t *testing.T) {
	rec := &fakeRecommender{failFor: map[string]bool{"Jensen_Huang": true}}
	orch := NewOrchestrator(testRoster(), rec, NewMemoryRunStore(), nil, quietLogger())

	st, err := orch.Run(context.Background(), "task", "profile",
		[]string{"Sam_Altman", "Jensen_Huang"}, Config{Turns: 1})

	assert.NoError(t, err)
	assert.Equal(t, "Fallback recommendation for Jensen_Huang", st.Recommendations["Jensen_Huang"])
	assert.Equal(t, "Sam_Altman advice turn 1", st.Recommendations["Sam_Altman"])
}

func TestRunPersistsAndRetrieves(t *testing.T) {
	rec := &fakeRecommender{}
	store := NewMemoryRunStore()
	orch := NewOrchestrator(testRoster(), rec, store, nil, quietLogger())

	st, err := orch.Run(context.Background(), "task", "profile", []string{"Andrew_Ng"}, Config{MeetingType: "advisory", Turns: 1})
	assert.NoError(t, err)

	got, err := store.Get(context.Background(), st.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "advisory", got.MeetingType)
	assert.Equal(t, st.Recommendations, got.Recommendations)

	_, err = store.Get(context.Background(), "missing-run")
	assert.Error(t, err)
}

func TestRunSeedsFromPersonaMemory(t *testing.T) {
	rec := &fakeRecommender{}
	memory := NewPersonaMemory(time.Hour)
	orch := NewOrchestrator(testRoster(), rec, NewMemoryRunStore(), memory, quietLogger())

	// First meeting: cold start, output remembered.
	_, err := orch.Run(context.Background(), "task", "profile", []string{"Sam_Altman"}, Config{Turns: 1})
	assert.NoError(t, err)
	assert.Empty(t, rec.callsFor("Sam_Altman", 1)[0].previous)
	assert.Equal(t, "Sam_Altman advice turn 1", memory.Recall("Sam_Altman"))

	// Second meeting: turn 1 resumes from the remembered position.
	rec.calls = nil
	_, err = orch.Run(context.Background(), "task", "profile", []string{"Sam_Altman"}, Config{Turns: 1})
	assert.NoError(t, err)
	assert.Equal(t, "Sam_Altman advice turn 1", rec.callsFor("Sam_Altman", 1)[0].previous)
}

func TestRunDoesNotRememberFallbacks(t *testing.T) {
	rec := &fakeRecommender{failFor: map[string]bool{"Andrew_Ng": true}}
	memory := NewPersonaMemory(time.Hour)
	orch := NewOrchestrator(testRoster(), rec, NewMemoryRunStore(), memory, quietLogger())

	_, err := orch.Run(context.Background(), "task", "profile", []string{"Andrew_Ng"}, Config{Turns: 1})
	assert.NoError(t, err)
	assert.Empty(t, memory.Recall("Andrew_Ng"))
}
