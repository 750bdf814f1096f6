// Package ports defines the interfaces the engine consumes. Implementations
// live under infrastructure.
package ports

import (
	"context"

	"osintgraph-client/domain/core/entities"
	"osintgraph-client/domain/core/valueobjects"
)

// ProjectGraph is the result of bulk hydration: the entire graph of one
// project in a single read.
type ProjectGraph struct {
	Nodes       []*entities.Node
	Links       []*entities.Link
	Attachments []*entities.Attachment
}

// RemoteStore is the engine's view of the external persistence service.
// Every call may fail; failures are surfaced to the user and dropped. The
// engine never rolls back local state and never retries.
type RemoteStore interface {
	// Node CRUD. Create is issued when a pending node is committed;
	// Update carries debounced field and position edits.
	CreateNode(ctx context.Context, node *entities.Node) (*entities.Node, error)
	UpdateNode(ctx context.Context, node *entities.Node) (*entities.Node, error)
	DeleteNode(ctx context.Context, id valueobjects.NodeID) error

	// Link CRUD. Links are discrete events: created and deleted
	// immediately, never debounced.
	CreateLink(ctx context.Context, link *entities.Link) (*entities.Link, error)
	DeleteLink(ctx context.Context, id valueobjects.LinkID) error

	// UpdateAttachmentOwner moves an attachment to a new owning node.
	UpdateAttachmentOwner(ctx context.Context, id valueobjects.AttachmentID, owner valueobjects.NodeID) (*entities.Attachment, error)

	// FetchProject hydrates the entire graph of one project.
	FetchProject(ctx context.Context, id valueobjects.ProjectID) (*ProjectGraph, error)

	// FetchProjects lists the projects available to the user.
	FetchProjects(ctx context.Context) ([]*entities.Project, error)

	// UpdateProject persists project metadata, used to touch the
	// last-updated stamp after structural writes.
	UpdateProject(ctx context.Context, project *entities.Project) (*entities.Project, error)
}
