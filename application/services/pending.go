package services

import (
	"osintgraph-client/domain/core/valueobjects"
	"osintgraph-client/pkg/observability"
)

// PendingTracker holds the ids of nodes that exist in local state but have
// never been accepted by the remote store. An id enters the set at local
// creation and leaves it when the user commits the node (on issuance of the
// remote create, not on its response) or discards it.
//
// The tracker is scoped to the active project and is not safe for concurrent
// use; the editor serializes access.
type PendingTracker struct {
	ids     map[valueobjects.NodeID]struct{}
	metrics *observability.Collector
}

// NewPendingTracker creates an empty tracker.
func NewPendingTracker(metrics *observability.Collector) *PendingTracker {
	return &PendingTracker{
		ids:     make(map[valueobjects.NodeID]struct{}),
		metrics: metrics,
	}
}

// Add marks a node id as pending.
func (t *PendingTracker) Add(id valueobjects.NodeID) {
	t.ids[id] = struct{}{}
	t.metrics.PendingNodes.Set(float64(len(t.ids)))
}

// Remove unmarks a node id, reporting whether it was pending.
func (t *PendingTracker) Remove(id valueobjects.NodeID) bool {
	if _, ok := t.ids[id]; !ok {
		return false
	}
	delete(t.ids, id)
	t.metrics.PendingNodes.Set(float64(len(t.ids)))
	return true
}

// Contains reports whether the node id is pending.
func (t *PendingTracker) Contains(id valueobjects.NodeID) bool {
	_, ok := t.ids[id]
	return ok
}

// Len returns the number of pending nodes.
func (t *PendingTracker) Len() int {
	return len(t.ids)
}

// Reset drops every pending id, used on project switch.
func (t *PendingTracker) Reset() {
	t.ids = make(map[valueobjects.NodeID]struct{})
	t.metrics.PendingNodes.Set(0)
}
