package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemoteDispatcher_SameKeyRunsInOrder(t *testing.T) {
	d := NewRemoteDispatcher()
	var mu sync.Mutex
	var order []int

	// The first write is slow; later writes for the same key must still
	// reach the store after it.
	d.Enqueue("node/a", func() {
		time.Sleep(30 * time.Millisecond)
		mu.Lock()
		order = append(order, 1)
		mu.Unlock()
	})
	d.Enqueue("node/a", func() {
		mu.Lock()
		order = append(order, 2)
		mu.Unlock()
	})
	d.Enqueue("node/a", func() {
		mu.Lock()
		order = append(order, 3)
		mu.Unlock()
	})
	d.Wait()

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestRemoteDispatcher_DistinctKeysRunConcurrently(t *testing.T) {
	d := NewRemoteDispatcher()
	release := make(chan struct{})
	bReady := make(chan struct{})

	d.Enqueue("node/a", func() { <-release })
	d.Enqueue("node/b", func() { close(bReady) })

	// b completes while a is still blocked.
	select {
	case <-bReady:
	case <-time.After(time.Second):
		t.Fatal("write for a distinct key was blocked")
	}
	close(release)
	d.Wait()
}
