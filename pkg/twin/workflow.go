package twin

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	// maxDecidePasses bounds the propose/critique loop. The feedback loop
	// fires at most once, so the loop body runs at most twice.
	maxDecidePasses = 2

	// disclaimerThreshold is the overall confidence below which generated
	// answers carry a data-coverage disclaimer.
	disclaimerThreshold = 70
)

// Workflow is the per-twin reasoning engine: retrieve knowledge, personalize
// the voice, run the bounded decide loop (propose, critique, synthesize),
// then route to escalation when confidence is too low. It never returns an
// empty response and never fails the whole run on a degraded step.
type Workflow struct {
	retriever *Retriever
	pipeline  *Pipeline
	logger    *log.Logger
}

func NewWorkflow(retriever *Retriever, pipeline *Pipeline, logger *log.Logger) *Workflow {
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	return &Workflow{retriever: retriever, pipeline: pipeline, logger: logger}
}

// Run executes the full workflow for one twin and one query. history holds
// recent conversation exchanges, oldest first, and may be empty.
func (w *Workflow) Run(ctx context.Context, twinID, query string, profile map[string]string, history []string) *Result {
	st := NewState(twinID, profile, query)
	st.History = history

	w.logger.Printf("[WORKFLOW] twin=%s starting run", twinID)

	// Stage 1: retrieve style, context and decision history.
	w.retriever.Retrieve(ctx, st)

	// Stage 2: personalize.
	st.StylePrompt = buildStylePrompt(st)

	// Stage 3: the decide loop runs the full reasoning pipeline, then
	// routes. Low confidence escalates; a flagged critique refines once.
	for pass := 1; pass <= maxDecidePasses; pass++ {
		w.logger.Printf("[DECIDE] twin=%s pass=%d", twinID, pass)
		w.pipeline.Propose(ctx, st)
		w.pipeline.Critique(ctx, st)
		w.pipeline.Synthesize(ctx, st)

		if st.LowConfidence {
			// Terminal: the escalation answer replaces the synthesized
			// one and carries its own confidence caveat.
			st.Escalated = true
			w.pipeline.Escalate(ctx, st)
			return w.finish(st)
		}
		if !st.FeedbackLoop {
			break
		}
	}

	// Stage 4: disclaimer below threshold.
	if st.Confidence.Overall < disclaimerThreshold {
		st.FinalResponse = fmt.Sprintf(
			"%s\n\n💡 **Confidence: %d%%** - Consider connecting more data sources for higher accuracy.",
			st.FinalResponse, st.Confidence.Overall,
		)
	}

	return w.finish(st)
}

// finish guarantees a non-empty response and packages the result.
func (w *Workflow) finish(st *State) *Result {
	if strings.TrimSpace(st.FinalResponse) == "" {
		st.FinalResponse = "I wasn't able to produce a full answer this time. Please try rephrasing your question or connect more data sources."
	}
	w.logger.Printf("[WORKFLOW] twin=%s run complete escalated=%t confidence=%d%%",
		st.TwinID, st.Escalated, st.Confidence.Overall)
	return &Result{
		Response:   st.FinalResponse,
		Confidence: st.Confidence,
		Escalated:  st.Escalated,
		Proposal:   st.Proposal,
		Critique:   st.Critique,
	}
}
