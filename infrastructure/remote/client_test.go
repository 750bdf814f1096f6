package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"osintgraph-client/domain/core/entities"
	"osintgraph-client/domain/core/valueobjects"
	pkgerrors "osintgraph-client/pkg/errors"
)

func TestClient_CreateNodeRoundTrip(t *testing.T) {
	node := entities.NewNode(valueobjects.NewProjectID(), valueobjects.NodeTypeDomain, valueobjects.Position{X: 3, Y: 4})
	node.Display = "example.com"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/node", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var received entities.Node
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, "example.com", received.Display)
		assert.Equal(t, 3.0, received.PosX)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(received))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	created, err := client.CreateNode(context.Background(), node)

	require.NoError(t, err)
	assert.True(t, created.ID.Equals(node.ID), "the client-assigned id survives the round trip")
}

func TestClient_DeleteNodeTargetsNodePath(t *testing.T) {
	id := valueobjects.NewNodeID()
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	require.NoError(t, client.DeleteNode(context.Background(), id))
	assert.Equal(t, "DELETE /api/v1/node/"+id.String(), gotPath)
}

func TestClient_FetchProjectComposesThreeReads(t *testing.T) {
	projectID := valueobjects.NewProjectID()
	node := entities.NewNode(projectID, valueobjects.NodeTypePerson, valueobjects.Position{})
	node.Display = "Ada"
	link := entities.NewLink(projectID, node.ID, node.ID, valueobjects.LinkKindOmni)
	att := &entities.Attachment{ID: valueobjects.NewAttachmentID(), NodeID: node.ID, Filename: "a.txt"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		base := "/api/v1/project/" + projectID.String()
		switch r.URL.Path {
		case base + "/nodes":
			json.NewEncoder(w).Encode([]*entities.Node{node})
		case base + "/nodelinks":
			json.NewEncoder(w).Encode([]*entities.Link{link})
		case base + "/attachments":
			json.NewEncoder(w).Encode([]*entities.Attachment{att})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	graph, err := client.FetchProject(context.Background(), projectID)

	require.NoError(t, err)
	require.Len(t, graph.Nodes, 1)
	require.Len(t, graph.Links, 1)
	require.Len(t, graph.Attachments, 1)
	assert.Equal(t, "Ada", graph.Nodes[0].Display)
}

func TestClient_UpdateAttachmentOwnerSendsNewOwner(t *testing.T) {
	attID := valueobjects.NewAttachmentID()
	owner := valueobjects.NewNodeID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/attachment/"+attID.String(), r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, owner.String(), body["node_id"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entities.Attachment{ID: attID, NodeID: owner, Filename: "f.png"})
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	moved, err := client.UpdateAttachmentOwner(context.Background(), attID, owner)

	require.NoError(t, err)
	assert.True(t, moved.NodeID.Equals(owner))
}

func TestClient_MapsStatusCodesToErrorTypes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/nodelink/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	err := client.do(context.Background(), http.MethodDelete, "/api/v1/nodelink/missing", nil, nil)
	assert.True(t, pkgerrors.IsNotFound(err))

	err = client.DeleteNode(context.Background(), valueobjects.NewNodeID())
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeExternal))
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, zap.NewNop())
	err := client.DeleteNode(context.Background(), valueobjects.NewNodeID())

	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNetwork))
}
