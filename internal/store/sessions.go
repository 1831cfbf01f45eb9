// internal/store/sessions.go
//
// Session store for live game shells.
// This is an in-memory layer: state is lost when the process restarts.
//
// Characteristics:
//   - Bounded LRU; the least recently used shell is evicted when full.
//   - Sweep drops shells idle for longer than the TTL.
//   - Every shell that leaves the store (eviction, Delete, Sweep) is closed.

package store

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/samber/lo"

	"github.com/robalobadob/wordguess/internal/shell"
)

// Sessions maps session ids to shells. Safe for concurrent use.
type Sessions struct {
	mu    sync.Mutex // serialises GetOrCreate
	cache *lru.Cache
	ttl   time.Duration
}

// NewSessions returns a store holding at most size shells.
func NewSessions(size int, ttl time.Duration) (*Sessions, error) {
	c, err := lru.NewWithEvict(size, func(_ interface{}, v interface{}) {
		if sh, ok := v.(*shell.Shell); ok {
			// Close waits for any in-flight action; keep the cache unblocked.
			go sh.Close()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("store: new lru: %w", err)
	}
	return &Sessions{cache: c, ttl: ttl}, nil
}

// Get looks up a shell by session id.
func (s *Sessions) Get(id string) (*shell.Shell, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*shell.Shell), true
}

// GetOrCreate returns the shell for id, building it with create if missing.
func (s *Sessions) GetOrCreate(id string, create func() *shell.Shell) *shell.Shell {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sh, ok := s.Get(id); ok {
		return sh
	}
	sh := create()
	s.cache.Add(id, sh)
	return sh
}

// Put adds or replaces a shell. A replaced shell is closed.
func (s *Sessions) Put(id string, sh *shell.Shell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// lru.Add swaps values in place without the evict callback.
	if old, ok := s.cache.Peek(id); ok && old != sh {
		s.cache.Remove(id)
	}
	s.cache.Add(id, sh)
}

// Delete removes and closes a shell.
func (s *Sessions) Delete(id string) { s.cache.Remove(id) }

// Len returns the number of live shells.
func (s *Sessions) Len() int { return s.cache.Len() }

// Sweep removes shells idle since before now-TTL and returns how many.
func (s *Sessions) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	idle := lo.Filter(s.cache.Keys(), func(k interface{}, _ int) bool {
		v, ok := s.cache.Peek(k)
		return ok && now.Sub(v.(*shell.Shell).LastActive()) > s.ttl
	})
	for _, k := range idle {
		s.cache.Remove(k)
	}
	return len(idle)
}

// Purge closes and removes every shell.
func (s *Sessions) Purge() { s.cache.Purge() }
