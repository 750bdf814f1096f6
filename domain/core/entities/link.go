package entities

import (
	"osintgraph-client/domain/core/valueobjects"
)

// Link is a relation between two nodes. Links are discrete, infrequent
// entities: they are never debounced and never pending.
type Link struct {
	ID        valueobjects.LinkID    `json:"id"`
	ProjectID valueobjects.ProjectID `json:"project_id"`
	Source    valueobjects.NodeID    `json:"source"`
	Target    valueobjects.NodeID    `json:"target"`
	Kind      valueobjects.LinkKind  `json:"kind"`
}

// NewLink creates a link between two nodes. Endpoint existence is checked
// by the graph aggregate, not here: both endpoints must exist in local
// state, but they may still be unconfirmed.
func NewLink(projectID valueobjects.ProjectID, source, target valueobjects.NodeID, kind valueobjects.LinkKind) *Link {
	return &Link{
		ID:        valueobjects.NewLinkID(),
		ProjectID: projectID,
		Source:    source,
		Target:    target,
		Kind:      kind,
	}
}

// Touches reports whether the link has the given node as either endpoint.
func (l *Link) Touches(id valueobjects.NodeID) bool {
	return l.Source.Equals(id) || l.Target.Equals(id)
}

// Clone returns a copy of the link.
func (l *Link) Clone() *Link {
	clone := *l
	return &clone
}
