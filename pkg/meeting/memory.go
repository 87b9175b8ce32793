package meeting

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// PersonaMemory retains each persona's most recent recommendation across
// runs, so a persona invited back to a later meeting picks up from its last
// position instead of starting cold.
type PersonaMemory struct {
	cache *cache.Cache
}

func NewPersonaMemory(ttl time.Duration) *PersonaMemory {
	return &PersonaMemory{cache: cache.New(ttl, 10*time.Minute)}
}

// Recall returns the persona's last remembered recommendation, or "".
func (m *PersonaMemory) Recall(personaID string) string {
	if x, found := m.cache.Get(personaID); found {
		return x.(string)
	}
	return ""
}

func (m *PersonaMemory) Remember(personaID, text string) {
	if text == "" {
		return
	}
	m.cache.Set(personaID, text, cache.DefaultExpiration)
}
