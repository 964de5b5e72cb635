package jobs

import (
	"context"
	"log"
	"time"
)

// Sweeper removes expired entries as of now and reports how many went.
type Sweeper interface {
	Sweep(now time.Time) int
}

// RunSweeper periodically evicts expired runs from an in-memory store.
type RunSweeper struct {
	store    Sweeper
	interval time.Duration
	now      func() time.Time
}

// NewRunSweeper creates a new sweeper.
func NewRunSweeper(store Sweeper, interval time.Duration) *RunSweeper {
	return &RunSweeper{
		store:    store,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *RunSweeper) Start(ctx context.Context) {
	log.Printf("Run sweeper started (interval: %v)", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Run sweeper stopped")
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *RunSweeper) sweepOnce() int {
	removed := s.store.Sweep(s.now())
	if removed > 0 {
		log.Printf("Run sweeper: evicted %d expired runs", removed)
	}
	return removed
}
