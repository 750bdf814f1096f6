package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"osintgraph-client/domain/core/valueobjects"
	"osintgraph-client/pkg/observability"
)

func TestPendingTracker_Lifecycle(t *testing.T) {
	tracker := NewPendingTracker(observability.NewCollector("test"))
	id := valueobjects.NewNodeID()

	assert.False(t, tracker.Contains(id))

	tracker.Add(id)
	assert.True(t, tracker.Contains(id))
	assert.Equal(t, 1, tracker.Len())

	// First removal succeeds, second reports not-pending.
	assert.True(t, tracker.Remove(id))
	assert.False(t, tracker.Remove(id))
	assert.Equal(t, 0, tracker.Len())
}

func TestPendingTracker_ResetDropsEverything(t *testing.T) {
	tracker := NewPendingTracker(observability.NewCollector("test"))
	a, b := valueobjects.NewNodeID(), valueobjects.NewNodeID()
	tracker.Add(a)
	tracker.Add(b)

	tracker.Reset()

	assert.Equal(t, 0, tracker.Len())
	assert.False(t, tracker.Contains(a))
	assert.False(t, tracker.Contains(b))
}

func TestRelocation_ArmReplacesSilently(t *testing.T) {
	r := NewRelocation()
	first, second := valueobjects.NewAttachmentID(), valueobjects.NewAttachmentID()
	source := valueobjects.NewNodeID()

	r.Arm(first, "a.png", source)
	r.Arm(second, "b.pdf", source)

	assert.True(t, r.Armed())
	assert.True(t, r.Attachment().Equals(second))
	assert.Equal(t, "b.pdf", r.Filename())
}

func TestRelocation_CancelReturnsToIdle(t *testing.T) {
	r := NewRelocation()
	r.Arm(valueobjects.NewAttachmentID(), "a.png", valueobjects.NewNodeID())

	r.Cancel()

	assert.False(t, r.Armed())
	assert.True(t, r.Attachment().IsZero())
}
