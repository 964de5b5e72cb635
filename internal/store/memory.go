package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"keywordmatrix/internal/models"
)

type memoryEntry struct {
	run     *models.Run
	expires time.Time
}

// MemoryStore keeps runs in process memory until they expire.
type MemoryStore struct {
	mu     sync.RWMutex
	ttl    time.Duration
	runs   map[uuid.UUID]memoryEntry
	latest uuid.UUID
	now    func() time.Time
}

// NewMemoryStore creates an in-process store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:  ttl,
		runs: make(map[uuid.UUID]memoryEntry),
		now:  time.Now,
	}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, run *models.Run) error {
	if run == nil {
		return ErrNilRun
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = memoryEntry{run: run, expires: s.now().Add(s.ttl)}
	s.latest = run.ID
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*models.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.runs[id]
	if !ok || !s.now().Before(e.expires) {
		return nil, ErrRunNotFound
	}
	return e.run, nil
}

// Latest implements Store.
func (s *MemoryStore) Latest(ctx context.Context) (*models.Run, error) {
	s.mu.RLock()
	id := s.latest
	s.mu.RUnlock()

	if id == uuid.Nil {
		return nil, ErrRunNotFound
	}
	return s.Get(ctx, id)
}

// Sweep removes expired runs and returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.runs {
		if !now.Before(e.expires) {
			delete(s.runs, id)
			removed++
		}
	}
	if _, ok := s.runs[s.latest]; !ok {
		s.latest = uuid.Nil
	}
	return removed
}

// Len returns the number of runs held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// Ping implements Store.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
