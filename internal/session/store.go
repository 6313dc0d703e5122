package session

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Store holds the most recent edited-image payload per node id.
type Store interface {
	// Put stores payload for id, replacing any previous payload.
	Put(ctx context.Context, id, payload string) error

	// Get returns the payload for id. ok is false when nothing was saved.
	Get(ctx context.Context, id string) (payload string, ok bool, err error)
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a Store backend.
type Options struct {
	// Backend is BackendMemory (default) or BackendRedis.
	Backend string

	// RedisURL is a redis:// URL, required for BackendRedis.
	RedisURL string

	// TTL expires Redis entries after the last save. Zero keeps them forever.
	TTL time.Duration
}

// New returns the Store selected by opts. Redis stores are pinged before
// being returned.
func New(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		rs, err := NewRedisStore(ctx, opts.RedisURL, opts.TTL)
		if err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return nil, fmt.Errorf("unknown session backend: %s", opts.Backend)
	}
}

// MemoryStore is a Store backed by a map. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	payloads map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		payloads: make(map[string]string),
	}
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, id, payload string) error {
	s.mu.Lock()
	s.payloads[id] = payload
	s.mu.Unlock()
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (string, bool, error) {
	s.mu.RLock()
	payload, ok := s.payloads[id]
	s.mu.RUnlock()
	return payload, ok, nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payloads)
}

// VersionToken returns a short content hash of payload. Equal payloads give
// equal tokens, so a host cache can skip re-execution while the token is
// unchanged.
func VersionToken(payload string) string {
	return strconv.FormatUint(xxhash.Sum64String(payload), 16)
}
