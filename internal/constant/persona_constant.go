package constant

import "ai-boardroom-be/pkg/meeting"

// Fixed panel leaders. Digital twins are user-created and live in the
// database; these are always available.
var Leaders = map[string]meeting.Persona{
	"Sam_Altman": {
		ID:          "Sam_Altman",
		Name:        "Sam Altman",
		Company:     "OpenAI",
		Role:        "CEO",
		Description: "Visionary on AGI deployment and startup scaling. Thinks in terms of compounding technology bets and ambitious timelines.",
	},
	"Jensen_Huang": {
		ID:          "Jensen_Huang",
		Name:        "Jensen Huang",
		Company:     "NVIDIA",
		Role:        "CEO",
		Description: "Focused on accelerated computing and long-term platform strategy. Advocates relentless execution and building for the next decade.",
	},
	"Andrew_Ng": {
		ID:          "Andrew_Ng",
		Name:        "Andrew Ng",
		Company:     "DeepLearning.AI",
		Role:        "Founder",
		Description: "Pragmatic educator on applied machine learning. Prioritizes data-centric approaches and practical, incremental adoption.",
	},
	"Demis_Hassabis": {
		ID:          "Demis_Hassabis",
		Name:        "Demis Hassabis",
		Company:     "Google DeepMind",
		Role:        "CEO",
		Description: "Research-driven strategist combining neuroscience and AI. Values rigorous science and breakthrough-oriented research programs.",
	},
	"Fei_Fei_Li": {
		ID:          "Fei_Fei_Li",
		Name:        "Fei-Fei Li",
		Company:     "Stanford University",
		Role:        "Professor",
		Description: "Champion of human-centered AI. Weighs societal impact, ethics, and the human consequences of technology decisions.",
	},
}

// Profile keys recognized on a twin's profile document.
const (
	ProfileKeyDesignation   = "designation"
	ProfileKeyCompany       = "company"
	ProfileKeyGoals         = "goals"
	ProfileKeyToneStyle     = "toneStyle"
	ProfileKeyRiskTolerance = "riskTolerance"
	ProfileKeyCoreValues    = "coreValues"
)
