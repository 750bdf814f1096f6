package remote

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"osintgraph-client/application/ports"
	"osintgraph-client/domain/core/entities"
	"osintgraph-client/domain/core/valueobjects"
)

// TraceStore wraps a remote store with OpenTelemetry spans. One span per
// store call, carrying the entity id; errors are recorded on the span and
// returned unchanged.
func TraceStore(inner ports.RemoteStore, tracer trace.Tracer) ports.RemoteStore {
	return &tracedStore{
		inner:  inner,
		tracer: tracer,
	}
}

type tracedStore struct {
	inner  ports.RemoteStore
	tracer trace.Tracer
}

var _ ports.RemoteStore = (*tracedStore)(nil)

func (s *tracedStore) CreateNode(ctx context.Context, node *entities.Node) (*entities.Node, error) {
	ctx, span := s.tracer.Start(ctx, "remote.CreateNode",
		trace.WithAttributes(
			attribute.String("node.id", node.ID.String()),
			attribute.String("node.type", string(node.Type)),
		),
	)
	defer span.End()

	created, err := s.inner.CreateNode(ctx, node)
	if err != nil {
		span.RecordError(err)
	}

	return created, err
}

func (s *tracedStore) UpdateNode(ctx context.Context, node *entities.Node) (*entities.Node, error) {
	ctx, span := s.tracer.Start(ctx, "remote.UpdateNode",
		trace.WithAttributes(
			attribute.String("node.id", node.ID.String()),
		),
	)
	defer span.End()

	updated, err := s.inner.UpdateNode(ctx, node)
	if err != nil {
		span.RecordError(err)
	}

	return updated, err
}

func (s *tracedStore) DeleteNode(ctx context.Context, id valueobjects.NodeID) error {
	ctx, span := s.tracer.Start(ctx, "remote.DeleteNode",
		trace.WithAttributes(
			attribute.String("node.id", id.String()),
		),
	)
	defer span.End()

	err := s.inner.DeleteNode(ctx, id)
	if err != nil {
		span.RecordError(err)
	}

	return err
}

func (s *tracedStore) CreateLink(ctx context.Context, link *entities.Link) (*entities.Link, error) {
	ctx, span := s.tracer.Start(ctx, "remote.CreateLink",
		trace.WithAttributes(
			attribute.String("link.id", link.ID.String()),
			attribute.String("link.kind", string(link.Kind)),
		),
	)
	defer span.End()

	created, err := s.inner.CreateLink(ctx, link)
	if err != nil {
		span.RecordError(err)
	}

	return created, err
}

func (s *tracedStore) DeleteLink(ctx context.Context, id valueobjects.LinkID) error {
	ctx, span := s.tracer.Start(ctx, "remote.DeleteLink",
		trace.WithAttributes(
			attribute.String("link.id", id.String()),
		),
	)
	defer span.End()

	err := s.inner.DeleteLink(ctx, id)
	if err != nil {
		span.RecordError(err)
	}

	return err
}

func (s *tracedStore) UpdateAttachmentOwner(ctx context.Context, id valueobjects.AttachmentID, owner valueobjects.NodeID) (*entities.Attachment, error) {
	ctx, span := s.tracer.Start(ctx, "remote.UpdateAttachmentOwner",
		trace.WithAttributes(
			attribute.String("attachment.id", id.String()),
			attribute.String("node.id", owner.String()),
		),
	)
	defer span.End()

	moved, err := s.inner.UpdateAttachmentOwner(ctx, id, owner)
	if err != nil {
		span.RecordError(err)
	}

	return moved, err
}

func (s *tracedStore) FetchProject(ctx context.Context, id valueobjects.ProjectID) (*ports.ProjectGraph, error) {
	ctx, span := s.tracer.Start(ctx, "remote.FetchProject",
		trace.WithAttributes(
			attribute.String("project.id", id.String()),
		),
	)
	defer span.End()

	graph, err := s.inner.FetchProject(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("nodes.count", len(graph.Nodes)),
		attribute.Int("links.count", len(graph.Links)),
	)

	return graph, nil
}

func (s *tracedStore) FetchProjects(ctx context.Context) ([]*entities.Project, error) {
	ctx, span := s.tracer.Start(ctx, "remote.FetchProjects")
	defer span.End()

	projects, err := s.inner.FetchProjects(ctx)
	if err != nil {
		span.RecordError(err)
	}

	return projects, err
}

func (s *tracedStore) UpdateProject(ctx context.Context, project *entities.Project) (*entities.Project, error) {
	ctx, span := s.tracer.Start(ctx, "remote.UpdateProject",
		trace.WithAttributes(
			attribute.String("project.id", project.ID.String()),
		),
	)
	defer span.End()

	updated, err := s.inner.UpdateProject(ctx, project)
	if err != nil {
		span.RecordError(err)
	}

	return updated, err
}
