package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// RunStore persists completed meeting runs keyed by run id.
type RunStore interface {
	Save(ctx context.Context, st *State) error
	Get(ctx context.Context, runID string) (*State, error)
}

const runKeyPrefix = "meeting:run:"

// RedisRunStore keeps runs in Redis as JSON with a retention TTL.
type RedisRunStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRunStore(rdb *redis.Client, ttl time.Duration) *RedisRunStore {
	return &RedisRunStore{rdb: rdb, ttl: ttl}
}

func (s *RedisRunStore) Save(ctx context.Context, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal meeting run: %w", err)
	}
	return s.rdb.Set(ctx, runKeyPrefix+st.RunID, data, s.ttl).Err()
}

func (s *RedisRunStore) Get(ctx context.Context, runID string) (*State, error) {
	data, err := s.rdb.Get(ctx, runKeyPrefix+runID).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("meeting run %s not found", runID)
	}
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshal meeting run: %w", err)
	}
	return &st, nil
}

// MemoryRunStore is the in-process fallback used when Redis is not
// configured, and the store of choice in tests.
type MemoryRunStore struct {
	cache *cache.Cache
}

func NewMemoryRunStore() *MemoryRunStore {
	// Runs expire after a day; expired entries purged every hour.
	return &MemoryRunStore{cache: cache.New(24*time.Hour, 1*time.Hour)}
}

func (s *MemoryRunStore) Save(_ context.Context, st *State) error {
	s.cache.Set(st.RunID, st, cache.DefaultExpiration)
	return nil
}

func (s *MemoryRunStore) Get(_ context.Context, runID string) (*State, error) {
	if x, found := s.cache.Get(runID); found {
		return x.(*State), nil
	}
	return nil, fmt.Errorf("meeting run %s not found", runID)
}
