package twin

// Confidence holds the per-partition retrieval confidence scores.
// Every field is always set; 0 means "retrieval failed or empty".
type Confidence struct {
	Style    int `json:"style"`
	Context  int `json:"context"`
	Decision int `json:"decision"`
	Overall  int `json:"overall"`
}

// Retrieved holds the concatenated top-k passages from the three vector
// partitions. Empty string is a valid "no signal" value, never nil.
type Retrieved struct {
	Style     string
	Context   string
	Decisions string
}

// State is the mutable conversation state for one workflow invocation.
// It is owned exclusively by that invocation; no cross-request sharing.
type State struct {
	TwinID  string
	Query   string
	Profile map[string]string

	// History holds recent conversation exchanges, oldest first. Follow-up
	// questions are answered with this window in the reasoning context.
	History []string

	Retrieved  Retrieved
	Confidence Confidence

	// StylePrompt is the personalization instruction built from retrieved
	// style passages, or from profile data when style retrieval was empty.
	StylePrompt string

	LowConfidence bool
	FeedbackLoop  bool
	Escalated     bool

	Proposal      string
	Critique      string
	FinalResponse string
}

// NewState initializes a complete state. All confidence fields start at 0
// and all text fields at "" so routing never sees an absent value.
func NewState(twinID string, profile map[string]string, query string) *State {
	if profile == nil {
		profile = map[string]string{}
	}
	return &State{
		TwinID:  twinID,
		Query:   query,
		Profile: profile,
	}
}

// ProfileValue returns the profile entry or a fallback when unset.
func (s *State) ProfileValue(key, fallback string) string {
	if v, ok := s.Profile[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Result is the caller-facing outcome of one workflow invocation.
type Result struct {
	Response   string     `json:"response"`
	Confidence Confidence `json:"confidence"`
	Escalated  bool       `json:"escalated"`
	Proposal   string     `json:"proposal"`
	Critique   string     `json:"critique"`
}
