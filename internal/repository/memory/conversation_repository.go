package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Exchange is one question/answer pair from a twin conversation.
type Exchange struct {
	Query    string
	Response string
	At       time.Time
}

// maxExchanges caps how much recent history is kept per twin.
const maxExchanges = 10

// ConversationRepository keeps the most recent exchanges per twin in memory.
// Long-term memory lives in the decision-history partition; this is only
// the short conversational window.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	// Conversations expire after 1 hour of inactivity, purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Append(twinID string, ex Exchange) {
	history := r.Get(twinID)
	history = append(history, ex)
	if len(history) > maxExchanges {
		history = history[len(history)-maxExchanges:]
	}
	r.cache.Set(twinID, history, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(twinID string) []Exchange {
	if x, found := r.cache.Get(twinID); found {
		return x.([]Exchange)
	}
	return nil
}

func (r *ConversationRepository) Clear(twinID string) {
	r.cache.Delete(twinID)
}
