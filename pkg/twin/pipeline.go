package twin

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-boardroom-be/pkg/llm"
)

const (
	proposalTemperature  = 0.8
	critiqueTemperature  = 0.3
	synthesisTemperature = 0.5
	escalateTemperature  = 0.4

	proposalFallback  = "Unable to generate proposal due to system error."
	critiqueFallback  = "Unable to generate critique."
	synthesisFallback = "Unable to generate final response."
)

// feedbackTriggers are critique phrases that send the workflow back for one
// refinement pass.
var feedbackTriggers = []string{"significant risk", "major concern"}

// Pipeline runs the three-step reasoning (propose, critique, synthesize)
// over an already-retrieved state. Each step degrades to a fallback string
// on provider failure so the caller always gets a usable state back.
type Pipeline struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewPipeline(provider llm.LLMProvider, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	return &Pipeline{provider: provider, logger: logger}
}

// Propose drafts a bold first-pass answer. On the second visit the previous
// critique is already on the state and gets addressed in the prompt.
func (p *Pipeline) Propose(ctx context.Context, st *State) {
	p.logger.Printf("[PROPOSE] twin=%s generating proposal", st.TwinID)

	out, err := p.provider.Generate(ctx, buildProposalPrompt(st), llm.WithTemperature(proposalTemperature))
	if err != nil || strings.TrimSpace(out) == "" {
		p.logger.Printf("[PROPOSE] twin=%s proposal failed: %v", st.TwinID, err)
		st.Proposal = proposalFallback
		return
	}
	st.Proposal = out
}

// Critique reviews the current proposal and flags whether a refinement pass
// is warranted. The feedback loop fires at most once per run.
func (p *Pipeline) Critique(ctx context.Context, st *State) {
	p.logger.Printf("[CRITIQUE] twin=%s critiquing proposal", st.TwinID)

	out, err := p.provider.Generate(ctx, buildCritiquePrompt(st), llm.WithTemperature(critiqueTemperature))
	if err != nil || strings.TrimSpace(out) == "" {
		p.logger.Printf("[CRITIQUE] twin=%s critique failed: %v", st.TwinID, err)
		st.Critique = critiqueFallback
		st.FeedbackLoop = false
		return
	}
	st.Critique = out

	if st.FeedbackLoop {
		// Already looped once, do not loop again.
		st.FeedbackLoop = false
		return
	}
	lowered := strings.ToLower(out)
	for _, trigger := range feedbackTriggers {
		if strings.Contains(lowered, trigger) {
			st.FeedbackLoop = true
			return
		}
	}
	st.FeedbackLoop = false
}

// Synthesize merges proposal and critique into the final answer.
func (p *Pipeline) Synthesize(ctx context.Context, st *State) {
	p.logger.Printf("[SYNTHESIZE] twin=%s synthesizing final response", st.TwinID)

	out, err := p.provider.Generate(ctx, buildSynthesisPrompt(st), llm.WithTemperature(synthesisTemperature))
	if err != nil || strings.TrimSpace(out) == "" {
		p.logger.Printf("[SYNTHESIZE] twin=%s synthesis failed: %v", st.TwinID, err)
		st.FinalResponse = synthesisFallback
		return
	}
	st.FinalResponse = out
}

// Escalate produces a transparent low-confidence answer instead of the
// synthesized one. The confidence caveat is prepended deterministically;
// it never depends on the model mentioning its own limitations.
func (p *Pipeline) Escalate(ctx context.Context, st *State) {
	p.logger.Printf("[ESCALATE] twin=%s low confidence (%d%%), escalating", st.TwinID, st.Confidence.Overall)

	out, err := p.provider.Generate(ctx, buildEscalationPrompt(st), llm.WithTemperature(escalateTemperature))
	if err != nil || strings.TrimSpace(out) == "" {
		p.logger.Printf("[ESCALATE] twin=%s escalation failed: %v", st.TwinID, err)
		st.FinalResponse = escalationFallback(st)
		return
	}
	st.FinalResponse = escalationNote(st) + "\n" + out
}

func escalationNote(st *State) string {
	return fmt.Sprintf(`---
⚠️ **Limited Data Available** (Confidence: %d%%)

To improve accuracy, consider connecting:
- Email account (for communication style)
- CRM system (for business context)
- Upload past decisions/documents

Meanwhile, here's general guidance:
`, st.Confidence.Overall)
}

func escalationFallback(st *State) string {
	return fmt.Sprintf("I don't have enough data to provide a confident answer to this question. "+
		"Consider connecting more data sources (email history, CRM data, past decisions) "+
		"so I can learn your context and decision patterns. "+
		"Current overall confidence: %d%%.", st.Confidence.Overall)
}
