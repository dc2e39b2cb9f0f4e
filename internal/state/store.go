package state

import (
	"sync"
	"time"

	"gmmarket/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultCapacity bounds how many users can hold an in-progress
	// conversation at once; least recently active are evicted first
	DefaultCapacity = 1000

	// DefaultSweepInterval is how often expired conversations are evicted
	DefaultSweepInterval = 5 * time.Minute
)

// Store keeps per-user conversation state
type Store interface {
	// Get returns the user's state, or an idle state if none is active
	Get(userID int64) *domain.State
	// Set replaces the user's state
	Set(userID int64, s *domain.State)
	// Clear returns the user to idle and discards scratch data
	Clear(userID int64)
}

type entry struct {
	state   *domain.State
	touched time.Time
}

// MemoryStore is an in-memory Store with bounded size and TTL eviction.
// Conversations idle longer than the TTL are swept away: an abandoned
// flow does not occupy memory forever.
type MemoryStore struct {
	mu    sync.RWMutex
	cache *lru.Cache[int64, *entry]
	ttl   time.Duration
}

// NewMemoryStore creates a store evicting conversations idle longer than ttl
func NewMemoryStore(ttl time.Duration) (*MemoryStore, error) {
	cache, err := lru.New[int64, *entry](DefaultCapacity)
	if err != nil {
		return nil, err
	}

	s := &MemoryStore{cache: cache, ttl: ttl}
	go s.sweepLoop()

	return s, nil
}

func (s *MemoryStore) sweepLoop() {
	ticker := time.NewTicker(DefaultSweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.Sweep()
	}
}

// Sweep evicts all conversations idle longer than the TTL
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, userID := range s.cache.Keys() {
		if e, ok := s.cache.Peek(userID); ok && now.Sub(e.touched) > s.ttl {
			s.cache.Remove(userID)
		}
	}
}

// Get returns the user's state, or an idle state if none is active
func (s *MemoryStore) Get(userID int64) *domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.cache.Get(userID); ok {
		return e.state
	}
	return &domain.State{}
}

// Set replaces the user's state
func (s *MemoryStore) Set(userID int64, st *domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Add(userID, &entry{state: st, touched: time.Now()})
}

// Clear returns the user to idle and discards scratch data
func (s *MemoryStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(userID)
}

// Len returns the number of active conversations
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Len()
}
