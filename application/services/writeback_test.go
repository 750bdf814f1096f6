package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"osintgraph-client/pkg/observability"
)

const testQuiet = 20 * time.Millisecond

func newTestScheduler() *WritebackScheduler {
	return NewWritebackScheduler(testQuiet, zap.NewNop(), observability.NewCollector("test"))
}

func TestWritebackScheduler_CoalescesRapidWrites(t *testing.T) {
	// Arrange
	s := newTestScheduler()
	var dispatched int32
	var last int32

	// Act: N rapid writes to the same key within one quiet period
	for i := 1; i <= 5; i++ {
		payload := int32(i)
		s.Schedule("node/a", func() {
			atomic.AddInt32(&dispatched, 1)
			atomic.StoreInt32(&last, payload)
		})
	}
	time.Sleep(5 * testQuiet)

	// Assert: exactly one dispatch, carrying the last payload
	assert.Equal(t, int32(1), atomic.LoadInt32(&dispatched))
	assert.Equal(t, int32(5), atomic.LoadInt32(&last))
	assert.Equal(t, 0, s.Outstanding())
}

func TestWritebackScheduler_DistinctKeysAreIndependent(t *testing.T) {
	s := newTestScheduler()
	var mu sync.Mutex
	fired := map[string]int{}

	s.Schedule("node/a", func() { mu.Lock(); fired["a"]++; mu.Unlock() })
	s.Schedule("node/b", func() { mu.Lock(); fired["b"]++; mu.Unlock() })
	time.Sleep(5 * testQuiet)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, fired["a"])
	assert.Equal(t, 1, fired["b"])
}

func TestWritebackScheduler_FlushDispatchesOutstandingImmediately(t *testing.T) {
	s := newTestScheduler()
	var dispatched int32

	s.Schedule("node/a", func() { atomic.AddInt32(&dispatched, 1) })
	s.Schedule("node/b", func() { atomic.AddInt32(&dispatched, 1) })

	// Flush before any quiet period can elapse.
	s.Flush()

	assert.Equal(t, int32(2), atomic.LoadInt32(&dispatched))
	assert.Equal(t, 0, s.Outstanding())

	// The stopped timers must not fire a second time later.
	time.Sleep(5 * testQuiet)
	assert.Equal(t, int32(2), atomic.LoadInt32(&dispatched))
}

func TestWritebackScheduler_CancelDropsWithoutDispatch(t *testing.T) {
	s := newTestScheduler()
	var dispatched int32

	s.Schedule("node/a", func() { atomic.AddInt32(&dispatched, 1) })
	s.Cancel("node/a")
	time.Sleep(5 * testQuiet)

	assert.Equal(t, int32(0), atomic.LoadInt32(&dispatched))
	assert.Equal(t, 0, s.Outstanding())
}

func TestWritebackScheduler_EmptyFlushDoesNotCountAsFlush(t *testing.T) {
	s := newTestScheduler()

	// Undo/redo flush unconditionally; with nothing outstanding the
	// counter must not move.
	s.Flush()
	s.Flush()
	assert.Equal(t, 0.0, testutil.ToFloat64(s.metrics.Flushes))

	s.Schedule("node/a", func() {})
	s.Flush()
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Flushes))
}

func TestWritebackScheduler_RescheduleRestartsQuietPeriod(t *testing.T) {
	s := newTestScheduler()
	var dispatched int32

	s.Schedule("node/a", func() { atomic.AddInt32(&dispatched, 1) })
	time.Sleep(testQuiet / 2)
	// Still within the quiet period: replaces the entry, restarts the timer.
	s.Schedule("node/a", func() { atomic.AddInt32(&dispatched, 1) })
	time.Sleep(testQuiet / 2)
	assert.Equal(t, int32(0), atomic.LoadInt32(&dispatched))

	time.Sleep(5 * testQuiet)
	assert.Equal(t, int32(1), atomic.LoadInt32(&dispatched))
}
