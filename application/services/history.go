package services

import (
	"osintgraph-client/domain/core/aggregates"
	"osintgraph-client/pkg/observability"
)

// HistoryManager keeps bounded deep-copy snapshots of the graph for
// undo/redo. Snapshots trade memory for guaranteed consistency: no mutation
// needs to define an inverse, cross-entity effects included.
//
// Not safe for concurrent use; the editor serializes access.
type HistoryManager struct {
	limit     int
	past      []*aggregates.Snapshot
	future    []*aggregates.Snapshot
	restoring bool
	metrics   *observability.Collector
}

// NewHistoryManager creates a manager retaining at most limit snapshots.
func NewHistoryManager(limit int, metrics *observability.Collector) *HistoryManager {
	return &HistoryManager{limit: limit, metrics: metrics}
}

// Capture pushes a snapshot of the pre-mutation state onto the past list and
// clears the future list: any new history-worthy mutation invalidates redo.
// The oldest snapshot is evicted past the bound. Capture is a no-op while a
// restoration is in progress, so restoring cannot record itself.
func (h *HistoryManager) Capture(graph *aggregates.Graph) {
	if h.restoring {
		return
	}
	h.past = append(h.past, graph.Snapshot())
	if len(h.past) > h.limit {
		h.past = h.past[1:]
	}
	h.future = nil
	h.metrics.HistoryDepth.Set(float64(len(h.past)))
}

// CanUndo reports whether a past snapshot exists.
func (h *HistoryManager) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a future snapshot exists.
func (h *HistoryManager) CanRedo() bool { return len(h.future) > 0 }

// Undo pops the most recent past snapshot and moves current onto the future
// list. Returns nil when there is nothing to undo. The caller must flush the
// write-back scheduler first and restore the returned snapshot under the
// restoration guard.
func (h *HistoryManager) Undo(current *aggregates.Snapshot) *aggregates.Snapshot {
	if len(h.past) == 0 {
		return nil
	}
	snap := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	h.metrics.HistoryDepth.Set(float64(len(h.past)))
	h.metrics.UndoTotal.Inc()
	return snap
}

// Redo pops the most recent future snapshot and moves current onto the past
// list. Returns nil when there is nothing to redo.
func (h *HistoryManager) Redo(current *aggregates.Snapshot) *aggregates.Snapshot {
	if len(h.future) == 0 {
		return nil
	}
	snap := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	h.metrics.HistoryDepth.Set(float64(len(h.past)))
	h.metrics.RedoTotal.Inc()
	return snap
}

// Depth returns the number of retained past snapshots.
func (h *HistoryManager) Depth() int { return len(h.past) }

// Reset drops all history, used on project switch.
func (h *HistoryManager) Reset() {
	h.past = nil
	h.future = nil
	h.restoring = false
	h.metrics.HistoryDepth.Set(0)
}

// beginRestore sets the re-entrancy guard; endRestore clears it. The editor
// brackets every snapshot restoration with these so graph mutations made
// during the swap cannot capture.
func (h *HistoryManager) beginRestore() { h.restoring = true }
func (h *HistoryManager) endRestore()   { h.restoring = false }
