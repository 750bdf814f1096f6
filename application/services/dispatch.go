package services

import (
	"sync"
)

// RemoteDispatcher issues fire-and-forget remote writes, serializing writes
// that target the same entity so they reach the store in the order the user
// caused them (create before update before delete). Writes for distinct
// entities run concurrently and in no particular relative order.
type RemoteDispatcher struct {
	mu   sync.Mutex
	last map[string]chan struct{}
	wg   sync.WaitGroup
}

// NewRemoteDispatcher creates an idle dispatcher.
func NewRemoteDispatcher() *RemoteDispatcher {
	return &RemoteDispatcher{last: make(map[string]chan struct{})}
}

// Enqueue runs fn on its own goroutine once every previously enqueued write
// for the same key has completed. Enqueue itself never blocks.
func (d *RemoteDispatcher) Enqueue(key string, fn func()) {
	d.mu.Lock()
	prev := d.last[key]
	done := make(chan struct{})
	d.last[key] = done
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if prev != nil {
			<-prev
		}
		fn()
		close(done)

		d.mu.Lock()
		if d.last[key] == done {
			delete(d.last, key)
		}
		d.mu.Unlock()
	}()
}

// Wait blocks until every enqueued write has completed. Used in tests and on
// teardown; the engine itself never waits on the remote store.
func (d *RemoteDispatcher) Wait() {
	d.wg.Wait()
}
