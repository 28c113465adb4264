package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix is the Redis key prefix for worksheets.
const sessionKeyPrefix = "quiz:session:"

// SessionStore persists worksheets between requests. Get returns nil, nil
// for a worksheet that does not exist or has expired.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Worksheet, error)
	Put(ctx context.Context, ws *Worksheet) error
	Delete(ctx context.Context, id string) error
}

// redisStore keeps worksheets as JSON values with a TTL that is refreshed on
// every write.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a SessionStore backed by Redis.
func NewRedisStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, id string) (*Worksheet, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading worksheet from Redis: %w", err)
	}

	var ws Worksheet
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("unmarshaling worksheet: %w", err)
	}
	return &ws, nil
}

func (s *redisStore) Put(ctx context.Context, ws *Worksheet) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("marshaling worksheet: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+ws.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing worksheet in Redis: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("deleting worksheet from Redis: %w", err)
	}
	return nil
}

// memoryStore is the single-process fallback used when no Redis URL is
// configured. Values are kept encoded so callers never share slices with the
// store.
type memoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry

	// nextSweep is the earliest time Put scans for expired entries again.
	nextSweep time.Time
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// NewMemoryStore creates an in-process SessionStore.
func NewMemoryStore(ttl time.Duration) SessionStore {
	return newMemoryStore(ttl, time.Now)
}

func newMemoryStore(ttl time.Duration, now func() time.Time) *memoryStore {
	return &memoryStore{ttl: ttl, now: now, entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) Get(_ context.Context, id string) (*Worksheet, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && !s.now().Before(e.expires) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	var ws Worksheet
	if err := json.Unmarshal(e.data, &ws); err != nil {
		return nil, fmt.Errorf("unmarshaling worksheet: %w", err)
	}
	return &ws, nil
}

// Put stores ws. At most once per TTL it also drops every expired entry, so
// the map holds no more than the worksheets written within two TTLs while a
// burst of writes costs one scan rather than one scan per write.
func (s *memoryStore) Put(_ context.Context, ws *Worksheet) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("marshaling worksheet: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if !now.Before(s.nextSweep) {
		s.sweep(now)
		s.nextSweep = now.Add(s.ttl)
	}
	s.entries[ws.ID] = memoryEntry{data: data, expires: now.Add(s.ttl)}
	return nil
}

// sweep drops expired entries. The caller holds s.mu.
func (s *memoryStore) sweep(now time.Time) {
	for id, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, id)
		}
	}
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
