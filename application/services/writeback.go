// Package services implements the optimistic synchronization and history
// engine: the write-back scheduler, pending-entity tracking, bounded
// undo/redo, attachment relocation and the editor gluing them together.
package services

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"osintgraph-client/pkg/observability"
)

// writebackEntry is one outstanding coalesced write: the latest dispatch
// closure for an entity plus its live timer. At most one entry exists per
// entity id; a newer mutation replaces the entry, it never queues behind it.
type writebackEntry struct {
	dispatch func()
	timer    *time.Timer
	gen      uint64
}

// WritebackScheduler coalesces rapid repeated mutations to the same entity
// into a single remote write. For N mutations to one entity within one quiet
// period exactly one write is dispatched, carrying the last mutation's
// payload; intermediate states are never transmitted. Distinct entities are
// independent.
type WritebackScheduler struct {
	mu      sync.Mutex
	quiet   time.Duration
	entries map[string]*writebackEntry
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewWritebackScheduler creates a scheduler with the given quiet period.
func NewWritebackScheduler(quiet time.Duration, logger *zap.Logger, metrics *observability.Collector) *WritebackScheduler {
	return &WritebackScheduler{
		quiet:   quiet,
		entries: make(map[string]*writebackEntry),
		logger:  logger,
		metrics: metrics,
	}
}

// Schedule records dispatch as the latest write for key, cancels any timer
// already pending for key and arms a new one. The dispatch closure must
// carry its own copy of the payload: by the time it runs, live state may
// have moved on.
func (s *WritebackScheduler) Schedule(key string, dispatch func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if ok {
		entry.timer.Stop()
		entry.dispatch = dispatch
		s.metrics.WritesCoalesced.Inc()
	} else {
		entry = &writebackEntry{dispatch: dispatch}
		s.entries[key] = entry
	}
	entry.gen++

	gen := entry.gen
	entry.timer = time.AfterFunc(s.quiet, func() {
		s.fire(key, gen)
	})
}

// fire runs when a quiet period elapses undisturbed. The generation check
// discards a timer that lost the race against a replacing Schedule, Cancel
// or Flush.
func (s *WritebackScheduler) fire(key string, gen uint64) {
	s.mu.Lock()
	entry, ok := s.entries[key]
	if !ok || entry.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.entries, key)
	dispatch := entry.dispatch
	s.mu.Unlock()

	dispatch()
}

// Cancel drops any outstanding write for key without dispatching it. Used
// when a pending node is discarded: its debounced writes must die with it.
func (s *WritebackScheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok {
		entry.timer.Stop()
		entry.gen++ // invalidate a callback that already fired
		delete(s.entries, key)
	}
}

// Flush cancels every pending timer and dispatches every outstanding entry
// immediately, then clears the map. Called before undo, redo and teardown so
// no late-firing timer can clobber a restored state with stale data.
func (s *WritebackScheduler) Flush() {
	s.mu.Lock()
	dispatches := make([]func(), 0, len(s.entries))
	for key, entry := range s.entries {
		entry.timer.Stop()
		entry.gen++
		dispatches = append(dispatches, entry.dispatch)
		delete(s.entries, key)
	}
	s.mu.Unlock()

	if len(dispatches) == 0 {
		return
	}
	s.logger.Debug("flushing write-back scheduler", zap.Int("outstanding", len(dispatches)))
	s.metrics.Flushes.Inc()
	for _, dispatch := range dispatches {
		dispatch()
	}
}

// Outstanding returns the number of entities with a write still scheduled.
func (s *WritebackScheduler) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
