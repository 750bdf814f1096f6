package remote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"osintgraph-client/application/ports"
	"osintgraph-client/domain/core/entities"
	"osintgraph-client/domain/core/valueobjects"
)

// stubStore returns canned results so span behavior can be asserted in
// isolation from HTTP.
type stubStore struct {
	err error
}

func (s *stubStore) CreateNode(ctx context.Context, node *entities.Node) (*entities.Node, error) {
	return node, s.err
}

func (s *stubStore) UpdateNode(ctx context.Context, node *entities.Node) (*entities.Node, error) {
	return node, s.err
}

func (s *stubStore) DeleteNode(ctx context.Context, id valueobjects.NodeID) error {
	return s.err
}

func (s *stubStore) CreateLink(ctx context.Context, link *entities.Link) (*entities.Link, error) {
	return link, s.err
}

func (s *stubStore) DeleteLink(ctx context.Context, id valueobjects.LinkID) error {
	return s.err
}

func (s *stubStore) UpdateAttachmentOwner(ctx context.Context, id valueobjects.AttachmentID, owner valueobjects.NodeID) (*entities.Attachment, error) {
	return &entities.Attachment{ID: id, NodeID: owner}, s.err
}

func (s *stubStore) FetchProject(ctx context.Context, id valueobjects.ProjectID) (*ports.ProjectGraph, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.ProjectGraph{}, nil
}

func (s *stubStore) FetchProjects(ctx context.Context) ([]*entities.Project, error) {
	return nil, s.err
}

func (s *stubStore) UpdateProject(ctx context.Context, project *entities.Project) (*entities.Project, error) {
	return project, s.err
}

func newSpanRecorder() (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	return exporter, provider
}

func attrValue(attrs []attribute.KeyValue, key attribute.Key) string {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value.AsString()
		}
	}
	return ""
}

func TestTraceStore_SpanPerCallWithEntityID(t *testing.T) {
	exporter, provider := newSpanRecorder()
	store := TraceStore(&stubStore{}, provider.Tracer("test"))

	node := entities.NewNode(valueobjects.NewProjectID(), valueobjects.NodeTypeDomain, valueobjects.Position{})
	_, err := store.CreateNode(context.Background(), node)
	require.NoError(t, err)
	require.NoError(t, store.DeleteNode(context.Background(), node.ID))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "remote.CreateNode", spans[0].Name)
	assert.Equal(t, "remote.DeleteNode", spans[1].Name)
	assert.Equal(t, node.ID.String(), attrValue(spans[0].Attributes, "node.id"))
	assert.Equal(t, node.ID.String(), attrValue(spans[1].Attributes, "node.id"))
}

func TestTraceStore_RecordsErrorOnSpan(t *testing.T) {
	exporter, provider := newSpanRecorder()
	store := TraceStore(&stubStore{err: assert.AnError}, provider.Tracer("test"))

	err := store.DeleteLink(context.Background(), valueobjects.NewLinkID())
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestTraceStore_FetchProjectAnnotatesCounts(t *testing.T) {
	exporter, provider := newSpanRecorder()
	store := TraceStore(&stubStore{}, provider.Tracer("test"))

	_, err := store.FetchProject(context.Background(), valueobjects.NewProjectID())
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	found := false
	for _, kv := range spans[0].Attributes {
		if kv.Key == "nodes.count" {
			found = true
		}
	}
	assert.True(t, found, "node count must be annotated on the span")
}
