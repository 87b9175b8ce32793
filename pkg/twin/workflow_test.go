package twin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-boardroom-be/pkg/llm"
	"ai-boardroom-be/pkg/vectorstore"

	"github.com/stretchr/testify/assert"
)

// fakeLLM answers by prompt kind so one fake can serve every pipeline step.
type fakeLLM struct {
	responses  map[string]string
	errOn      map[string]bool
	calls      map[string]int
	lastPrompt map[string]string
}

func newFakeLLM() *fakeLLM {
	return &fakeLLM{
		responses: map[string]string{
			"proposal":  "Bold proposal.",
			"critique":  "Minor gaps only.",
			"synthesis": "Balanced final answer.",
			"escalate":  "Limited data answer.",
		},
		errOn:      map[string]bool{},
		calls:      map[string]int{},
		lastPrompt: map[string]string{},
	}
}

func (f *fakeLLM) kind(prompt string) string {
	switch {
	case strings.Contains(prompt, "LIMITED DATA"):
		return "escalate"
	case strings.Contains(prompt, "critiquing this proposal"):
		return "critique"
	case strings.Contains(prompt, "Synthesize a final response"):
		return "synthesis"
	default:
		return "proposal"
	}
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	k := f.kind(prompt)
	f.calls[k]++
	f.lastPrompt[k] = prompt
	if f.errOn[k] {
		return "", errors.New(k + " backend down")
	}
	return f.responses[k], nil
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", errors.New("empty history")
	}
	return f.Generate(ctx, history[len(history)-1].Content, opts...)
}

func storeWithUniformDistance(twinID string, distance float64) *fakeStore {
	res := resultWithDistances([]string{"doc"}, []float64{distance})
	return &fakeStore{results: map[string]*vectorstore.QueryResult{
		StyleCollection(twinID):    res,
		ContextCollection(twinID):  res,
		DecisionCollection(twinID): res,
	}}
}

func newTestWorkflow(store vectorstore.Store, provider llm.LLMProvider) *Workflow {
	retriever := NewRetriever(store, &fakeEmbedder{vector: []float32{1, 0}}, testLogger())
	pipeline := NewPipeline(provider, testLogger())
	return NewWorkflow(retriever, pipeline, testLogger())
}

func TestRunHappyPath(t *testing.T) {
	provider := newFakeLLM()
	wf := newTestWorkflow(storeWithUniformDistance("t1", 0.05), provider)

	result := wf.Run(context.Background(), "t1", "Should we raise prices?", nil, nil)

	assert.Equal(t, "Balanced final answer.", result.Response)
	assert.Equal(t, 95, result.Confidence.Overall)
	assert.False(t, result.Escalated)
	assert.Equal(t, 1, provider.calls["proposal"])
	assert.Equal(t, 1, provider.calls["critique"])
	assert.Equal(t, 1, provider.calls["synthesis"])
	assert.Zero(t, provider.calls["escalate"])
	assert.NotContains(t, result.Response, "💡")
}

func TestRunAlwaysReturnsAResponse(t *testing.T) {
	// Total LLM outage still yields something coherent.
	provider := newFakeLLM()
	for k := range provider.responses {
		provider.errOn[k] = true
	}
	wf := newTestWorkflow(storeWithUniformDistance("t1", 0.05), provider)

	result := wf.Run(context.Background(), "t1", "question", nil, nil)

	assert.NotEmpty(t, strings.TrimSpace(result.Response))
	assert.Contains(t, result.Response, "Unable to generate final response.")
}

func TestRunEscalatesOnEmptyRetrieval(t *testing.T) {
	provider := newFakeLLM()
	wf := newTestWorkflow(&fakeStore{}, provider)

	result := wf.Run(context.Background(), "t1", "question", nil, nil)

	assert.True(t, result.Escalated)
	assert.Equal(t, 0, result.Confidence.Overall)
	// The decide pass runs before routing, so the reasoning chain is
	// populated even on the escalation path.
	assert.Equal(t, 1, provider.calls["proposal"])
	assert.Equal(t, 1, provider.calls["critique"])
	assert.Equal(t, 1, provider.calls["synthesis"])
	assert.Equal(t, 1, provider.calls["escalate"])
	assert.Equal(t, "Bold proposal.", result.Proposal)
	assert.Equal(t, "Minor gaps only.", result.Critique)
	// The escalation answer replaces the synthesized one.
	assert.Contains(t, result.Response, "Limited data answer.")
	assert.NotContains(t, result.Response, "Balanced final answer.")
}

func TestRunEscalationAlwaysStatesConfidence(t *testing.T) {
	// Whatever the model generates, the caveat is prepended around it.
	provider := newFakeLLM()
	provider.responses["escalate"] = "You should focus on your core market and expand gradually."
	wf := newTestWorkflow(&fakeStore{}, provider)

	result := wf.Run(context.Background(), "t1", "question", nil, nil)

	assert.True(t, result.Escalated)
	assert.Contains(t, result.Response, "⚠️ **Limited Data Available** (Confidence: 0%)")
	assert.Contains(t, result.Response, "consider connecting")
	assert.Contains(t, result.Response, "Email account (for communication style)")
	assert.Contains(t, result.Response, "You should focus on your core market and expand gradually.")
}

func TestRunEscalationFallbackNamesZeroConfidence(t *testing.T) {
	provider := newFakeLLM()
	provider.errOn["escalate"] = true
	wf := newTestWorkflow(&fakeStore{}, provider)

	result := wf.Run(context.Background(), "t1", "question", nil, nil)

	assert.True(t, result.Escalated)
	assert.Contains(t, result.Response, "0%")
	assert.Contains(t, result.Response, "connecting more data sources")
}

func TestRunEscalationUnderTotalOutage(t *testing.T) {
	// Low confidence plus a dead backend: every field still carries its
	// documented fallback and the response still names the confidence.
	provider := newFakeLLM()
	for k := range provider.responses {
		provider.errOn[k] = true
	}
	wf := newTestWorkflow(&fakeStore{}, provider)

	result := wf.Run(context.Background(), "t1", "question", nil, nil)

	assert.True(t, result.Escalated)
	assert.Equal(t, "Unable to generate proposal due to system error.", result.Proposal)
	assert.Equal(t, "Unable to generate critique.", result.Critique)
	assert.Contains(t, result.Response, "Current overall confidence: 0%.")
}

func TestRunFeedbackLoopBounded(t *testing.T) {
	// A critique that always flags significant risk loops exactly once.
	provider := newFakeLLM()
	provider.responses["critique"] = "There is significant risk in this plan."
	wf := newTestWorkflow(storeWithUniformDistance("t1", 0.05), provider)

	result := wf.Run(context.Background(), "t1", "question", nil, nil)

	assert.Equal(t, 2, provider.calls["proposal"])
	assert.Equal(t, 2, provider.calls["critique"])
	assert.Equal(t, 2, provider.calls["synthesis"])
	assert.Equal(t, "Balanced final answer.", result.Response)
}

func TestRunCritiqueFailureContinues(t *testing.T) {
	provider := newFakeLLM()
	provider.errOn["critique"] = true
	wf := newTestWorkflow(storeWithUniformDistance("t1", 0.05), provider)

	result := wf.Run(context.Background(), "t1", "question", nil, nil)

	assert.Equal(t, "Balanced final answer.", result.Response)
	assert.Equal(t, "Unable to generate critique.", result.Critique)
	assert.Equal(t, 1, provider.calls["proposal"])
	assert.Equal(t, 1, provider.calls["synthesis"])
}

func TestRunAppendsDisclaimerBelowThreshold(t *testing.T) {
	// Uniform distance 0.5 gives 50% confidence in every partition.
	provider := newFakeLLM()
	wf := newTestWorkflow(storeWithUniformDistance("t1", 0.5), provider)

	result := wf.Run(context.Background(), "t1", "question", nil, nil)

	assert.False(t, result.Escalated)
	assert.Equal(t, 50, result.Confidence.Overall)
	assert.Contains(t, result.Response, "💡 **Confidence: 50%**")
	assert.Contains(t, result.Response, "Consider connecting more data sources")
}

func TestRunFeedsConversationHistoryIntoReasoning(t *testing.T) {
	provider := newFakeLLM()
	wf := newTestWorkflow(storeWithUniformDistance("t1", 0.05), provider)
	history := []string{"Q: Should we hire in Q3?\nA: Yes, two engineers."}

	wf.Run(context.Background(), "t1", "How would that affect runway?", nil, history)

	assert.Contains(t, provider.lastPrompt["proposal"], "Recent Conversation:")
	assert.Contains(t, provider.lastPrompt["proposal"], "Yes, two engineers.")
	assert.Contains(t, provider.lastPrompt["critique"], "Yes, two engineers.")
}
