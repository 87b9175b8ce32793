package twin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCritiqueFeedbackTriggers(t *testing.T) {
	tests := []struct {
		name     string
		critique string
		want     bool
	}{
		{"significant risk", "This plan carries significant risk for the brand.", true},
		{"major concern", "One major concern is cash flow.", true},
		{"mixed case", "There is a MAJOR CONCERN here.", true},
		{"benign", "Looks reasonable, minor wording tweaks only.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newFakeLLM()
			provider.responses["critique"] = tt.critique
			pipeline := NewPipeline(provider, testLogger())
			st := NewState("t1", nil, "question")
			st.Proposal = "a proposal"

			pipeline.Critique(context.Background(), st)

			assert.Equal(t, tt.want, st.FeedbackLoop)
			assert.Equal(t, tt.critique, st.Critique)
		})
	}
}

func TestCritiqueDoesNotRetriggerAfterLoop(t *testing.T) {
	provider := newFakeLLM()
	provider.responses["critique"] = "Still significant risk after refinement."
	pipeline := NewPipeline(provider, testLogger())
	st := NewState("t1", nil, "question")
	st.Proposal = "refined proposal"
	st.FeedbackLoop = true

	pipeline.Critique(context.Background(), st)

	assert.False(t, st.FeedbackLoop)
}

func TestProposeFallbackOnProviderError(t *testing.T) {
	provider := newFakeLLM()
	provider.errOn["proposal"] = true
	pipeline := NewPipeline(provider, testLogger())
	st := NewState("t1", nil, "question")

	pipeline.Propose(context.Background(), st)

	assert.Equal(t, "Unable to generate proposal due to system error.", st.Proposal)
}
