package services

import (
	"osintgraph-client/domain/core/valueobjects"
)

// relocationState is the attachment relocation mode: idle, or armed with a
// specific attachment waiting for a target node.
type relocationState int

const (
	relocationIdle relocationState = iota
	relocationArmed
)

// Relocation is the short-lived interaction mode for moving an attachment
// from one node to another. It is global: only one relocation can be in
// flight, and arming while already armed silently replaces the prior target.
//
// Not safe for concurrent use; the editor serializes access.
type Relocation struct {
	state      relocationState
	attachment valueobjects.AttachmentID
	filename   string
	source     valueobjects.NodeID
}

// NewRelocation creates an idle relocation state machine.
func NewRelocation() *Relocation {
	return &Relocation{}
}

// Arm enters the armed state for the given attachment. The next node
// activation gesture completes the move.
func (r *Relocation) Arm(attachment valueobjects.AttachmentID, filename string, source valueobjects.NodeID) {
	r.state = relocationArmed
	r.attachment = attachment
	r.filename = filename
	r.source = source
}

// Armed reports whether a relocation is in flight.
func (r *Relocation) Armed() bool {
	return r.state == relocationArmed
}

// Attachment returns the armed attachment id.
func (r *Relocation) Attachment() valueobjects.AttachmentID { return r.attachment }

// Filename returns the armed attachment's filename, for the user hint.
func (r *Relocation) Filename() string { return r.filename }

// Source returns the node currently owning the armed attachment.
func (r *Relocation) Source() valueobjects.NodeID { return r.source }

// Cancel returns to idle with no remote effect. Safe to call when idle.
func (r *Relocation) Cancel() {
	*r = Relocation{}
}
