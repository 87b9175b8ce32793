package twin

import (
	"fmt"
	"strings"
)

// buildStylePrompt turns retrieved style passages (or profile data when the
// style partition was empty) into a personalization instruction.
func buildStylePrompt(st *State) string {
	if st.Retrieved.Style != "" {
		return fmt.Sprintf(`Apply this communication style (learned from actual writing samples):
%s

Tone: %s
Risk Tolerance: %s
`,
			st.Retrieved.Style,
			st.ProfileValue("toneStyle", "Professional"),
			st.ProfileValue("riskTolerance", "Balanced"),
		)
	}

	// FALLBACK: Use profile-based style
	return fmt.Sprintf(`Apply this communication style (from profile):
Tone: %s
Formality: Medium-High
Risk Tolerance: %s
Core Values: %s

Note: Limited style data available - using general professional approach.
`,
		st.ProfileValue("toneStyle", "Professional"),
		st.ProfileValue("riskTolerance", "Balanced"),
		st.ProfileValue("coreValues", "Excellence and Innovation"),
	)
}

// buildDecisionContext assembles the shared context block used by the
// proposal and critique steps.
func buildDecisionContext(st *State) string {
	businessContext := st.Retrieved.Context
	if businessContext == "" {
		businessContext = "Limited data - use general principles"
	}

	decisionHistory := st.Retrieved.Decisions
	if decisionHistory == "" {
		decisionHistory = "No historical decisions available"
	}

	block := fmt.Sprintf(`Business Context:
%s

Decision History:
%s

Profile:
- Role: %s
- Company: %s
- Goals: %s
`,
		businessContext,
		decisionHistory,
		st.ProfileValue("designation", "Executive"),
		st.ProfileValue("company", "Organization"),
		st.ProfileValue("goals", "Growth"),
	)

	if len(st.History) > 0 {
		block += fmt.Sprintf("\nRecent Conversation:\n%s\n", strings.Join(st.History, "\n"))
	}
	return block
}

func buildProposalPrompt(st *State) string {
	var b strings.Builder

	b.WriteString("You are proposing a bold, innovative response to this question.\n\n")
	b.WriteString(fmt.Sprintf("Question: %s\n\n", st.Query))
	b.WriteString(fmt.Sprintf("Context: %s\n\n", buildDecisionContext(st)))
	b.WriteString(fmt.Sprintf("Communication Style: %s\n\n", st.StylePrompt))

	// On the refinement pass the previous critique is fed back in.
	if st.Critique != "" {
		b.WriteString(fmt.Sprintf("Previous critique to address:\n%s\n\n", st.Critique))
	}

	b.WriteString(`Propose a strategic response that is:
1. Bold and forward-thinking
2. Grounded in available data (or acknowledge limitations explicitly)
3. Risk-tolerant but rational
4. Aligned with the person's communication style

Keep it concise (2-3 paragraphs).`)

	return b.String()
}

func buildCritiquePrompt(st *State) string {
	return fmt.Sprintf(`You are critiquing this proposal for risks and gaps.

Proposal: %s

Business Context: %s

Analyze:
1. What risks or challenges does this proposal face?
2. What data or context is missing?
3. What could go wrong?
4. Are there better alternatives?

Be constructive but thorough. 2-3 key points.`,
		st.Proposal,
		buildDecisionContext(st),
	)
}

func buildSynthesisPrompt(st *State) string {
	return fmt.Sprintf(`Synthesize a final response that balances the proposal and critique.

Question: %s

Proposal: %s

Critique: %s

Communication Style: %s

Create a balanced, actionable response that:
1. Incorporates the bold thinking from the proposal
2. Addresses the risks from the critique
3. Matches the communication style
4. Acknowledges data limitations if confidence is low (current: %d%%)

Format: Clear, concise, actionable advice.`,
		st.Query,
		st.Proposal,
		st.Critique,
		st.StylePrompt,
		st.Confidence.Overall,
	)
}

func buildEscalationPrompt(st *State) string {
	return fmt.Sprintf(`You are a digital twin with LIMITED DATA. Provide helpful general guidance while being transparent about limitations.

Question: %s

Available Profile Data:
- Role: %s
- Company: %s
- Goals: %s

Confidence Scores:
- Communication Style: %d%%
- Business Context: %d%%
- Decision History: %d%%
- Overall: %d%%

Provide:
1. General strategic guidance based on best practices
2. Clearly state what data is missing
3. Suggest what data sources would improve accuracy (email history, CRM data, past decisions)

Be helpful but transparent about limitations.`,
		st.Query,
		st.ProfileValue("designation", "Executive"),
		st.ProfileValue("company", "Organization"),
		st.ProfileValue("goals", "Growth"),
		st.Confidence.Style,
		st.Confidence.Context,
		st.Confidence.Decision,
		st.Confidence.Overall,
	)
}
