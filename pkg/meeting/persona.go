package meeting

import (
	"context"
	"fmt"

	"ai-boardroom-be/pkg/llm"
)

// Persona is one fixed panel member (or a digital twin surfaced to the
// panel). The orchestrator only ever addresses personas through this type.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Description string `json:"description"`
}

// Recommender produces one persona's recommendation for one turn. previous
// is that persona's own output from the prior turn, empty on turn 1.
type Recommender interface {
	Recommend(ctx context.Context, p Persona, task, userProfile, previous string, turn int) (string, error)
}

const recommendTemperature = 0.7

// LLMRecommender backs personas with a chat model.
type LLMRecommender struct {
	provider llm.LLMProvider
}

func NewLLMRecommender(provider llm.LLMProvider) *LLMRecommender {
	return &LLMRecommender{provider: provider}
}

func (r *LLMRecommender) Recommend(ctx context.Context, p Persona, task, userProfile, previous string, turn int) (string, error) {
	return r.provider.Generate(ctx, buildRecommendationPrompt(p, task, userProfile, previous, turn),
		llm.WithTemperature(recommendTemperature))
}

func buildRecommendationPrompt(p Persona, task, userProfile, previous string, turn int) string {
	prompt := fmt.Sprintf(`You are %s, %s at %s.
%s

A business leader has asked the panel for advice.

Their profile: %s

Task: %s
`, p.Name, p.Role, p.Company, p.Description, userProfile, task)

	if previous != "" {
		prompt += fmt.Sprintf(`
Your recommendation from the previous round:
%s

Refine and deepen your recommendation for round %d. Do not repeat yourself.
`, previous, turn)
	}

	prompt += "\nGive a concise, actionable recommendation in your own voice (2-3 paragraphs)."
	return prompt
}
