// Package entities holds the wire-crossing graph model. These structs are
// serialized as-is against the remote store's REST contract, so fields stay
// exported with JSON tags rather than encapsulated behind accessors.
package entities

import (
	"time"

	"osintgraph-client/domain/core/valueobjects"
)

// Node is a typed entity on the editing canvas. The ID is assigned
// client-side at creation and is immutable; the position is always defined.
type Node struct {
	ID        valueobjects.NodeID    `json:"id"`
	ProjectID valueobjects.ProjectID `json:"project_id"`
	Type      valueobjects.NodeType  `json:"type"`
	Display   string                 `json:"display"`
	Value     string                 `json:"value"`
	Notes     string                 `json:"notes,omitempty"`
	PosX      float64                `json:"pos_x"`
	PosY      float64                `json:"pos_y"`
	Updated   time.Time              `json:"updated"`

	// Attachments is the ordered list of attachment ids owned by this node.
	Attachments []valueobjects.AttachmentID `json:"attachments,omitempty"`
}

// NewNode creates a node of the given type at the given position.
func NewNode(projectID valueobjects.ProjectID, nodeType valueobjects.NodeType, pos valueobjects.Position) *Node {
	return &Node{
		ID:        valueobjects.NewNodeID(),
		ProjectID: projectID,
		Type:      nodeType,
		PosX:      pos.X,
		PosY:      pos.Y,
		Updated:   time.Now().UTC(),
	}
}

// Position returns the node's canvas position.
func (n *Node) Position() valueobjects.Position {
	return valueobjects.Position{X: n.PosX, Y: n.PosY}
}

// MoveTo updates the node's position and refreshes its timestamp.
func (n *Node) MoveTo(pos valueobjects.Position) {
	n.PosX = pos.X
	n.PosY = pos.Y
	n.Touch()
}

// Touch refreshes the last-updated timestamp.
func (n *Node) Touch() {
	n.Updated = time.Now().UTC()
}

// AddAttachment appends an attachment id, keeping the list free of
// duplicates.
func (n *Node) AddAttachment(id valueobjects.AttachmentID) {
	for _, existing := range n.Attachments {
		if existing.Equals(id) {
			return
		}
	}
	n.Attachments = append(n.Attachments, id)
}

// RemoveAttachment drops an attachment id from the node's list.
func (n *Node) RemoveAttachment(id valueobjects.AttachmentID) {
	for i, existing := range n.Attachments {
		if existing.Equals(id) {
			n.Attachments = append(n.Attachments[:i], n.Attachments[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy. History snapshots hold clones, never live
// references, so a snapshot can never alias mutable state.
func (n *Node) Clone() *Node {
	clone := *n
	if n.Attachments != nil {
		clone.Attachments = make([]valueobjects.AttachmentID, len(n.Attachments))
		copy(clone.Attachments, n.Attachments)
	}
	return &clone
}
