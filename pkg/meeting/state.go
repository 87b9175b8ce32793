package meeting

import "time"

// State is one run of the panel workflow. It is mutated once per turn by
// the fan-out/fan-in and never touched again after being persisted.
type State struct {
	RunID           string            `json:"run_id"`
	Task            string            `json:"task"`
	UserProfile     string            `json:"user_profile"`
	MeetingType     string            `json:"meeting_type"`
	Turns           int               `json:"turns"`
	CurrentTurn     int               `json:"current_turn"`
	Recommendations map[string]string `json:"recommendations"`
	CompletedAt     time.Time         `json:"completed_at"`
}

// MergeRecommendations is a right-biased union: updates win over base, base
// entries with no update survive. It always returns a fresh map, so applying
// the same updates twice yields the same mapping as applying them once.
func MergeRecommendations(base, updates map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(updates))
	for persona, text := range base {
		merged[persona] = text
	}
	for persona, text := range updates {
		merged[persona] = text
	}
	return merged
}
