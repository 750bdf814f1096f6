// Package remote implements the RemoteStore port against the graph
// backend's REST API under /api/v1.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"osintgraph-client/application/ports"
	"osintgraph-client/domain/core/entities"
	"osintgraph-client/domain/core/valueobjects"
	pkgerrors "osintgraph-client/pkg/errors"
)

// Client talks to the remote store over HTTP. Calls carry the caller's
// context and no client-side timeout: a hung call never resolves, matching
// the engine's fire-and-forget contract.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

var _ ports.RemoteStore = (*Client)(nil)

// CreateNode persists a freshly committed node.
func (c *Client) CreateNode(ctx context.Context, node *entities.Node) (*entities.Node, error) {
	var out entities.Node
	if err := c.do(ctx, http.MethodPost, "/api/v1/node", node, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNode persists field and position edits of a confirmed node.
func (c *Client) UpdateNode(ctx context.Context, node *entities.Node) (*entities.Node, error) {
	var out entities.Node
	if err := c.do(ctx, http.MethodPut, "/api/v1/node/"+node.ID.String(), node, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNode removes a node; the store cascades its links and attachments.
func (c *Client) DeleteNode(ctx context.Context, id valueobjects.NodeID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/node/"+id.String(), nil, nil)
}

// CreateLink persists a new link.
func (c *Client) CreateLink(ctx context.Context, link *entities.Link) (*entities.Link, error) {
	var out entities.Link
	if err := c.do(ctx, http.MethodPost, "/api/v1/nodelink", link, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLink removes a link.
func (c *Client) DeleteLink(ctx context.Context, id valueobjects.LinkID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/nodelink/"+id.String(), nil, nil)
}

// attachmentOwnerUpdate is the body of an ownership move.
type attachmentOwnerUpdate struct {
	NodeID valueobjects.NodeID `json:"node_id"`
}

// UpdateAttachmentOwner moves an attachment to a new owning node.
func (c *Client) UpdateAttachmentOwner(ctx context.Context, id valueobjects.AttachmentID, owner valueobjects.NodeID) (*entities.Attachment, error) {
	var out entities.Attachment
	body := attachmentOwnerUpdate{NodeID: owner}
	if err := c.do(ctx, http.MethodPut, "/api/v1/attachment/"+id.String(), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchProject reads the entire graph of one project: nodes, links and
// attachment metadata.
func (c *Client) FetchProject(ctx context.Context, id valueobjects.ProjectID) (*ports.ProjectGraph, error) {
	graph := &ports.ProjectGraph{}
	base := "/api/v1/project/" + id.String()

	if err := c.do(ctx, http.MethodGet, base+"/nodes", nil, &graph.Nodes); err != nil {
		return nil, err
	}
	if err := c.do(ctx, http.MethodGet, base+"/nodelinks", nil, &graph.Links); err != nil {
		return nil, err
	}
	if err := c.do(ctx, http.MethodGet, base+"/attachments", nil, &graph.Attachments); err != nil {
		return nil, err
	}
	return graph, nil
}

// FetchProjects lists the projects available to the user.
func (c *Client) FetchProjects(ctx context.Context) ([]*entities.Project, error) {
	var out []*entities.Project
	if err := c.do(ctx, http.MethodGet, "/api/v1/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProject persists project metadata.
func (c *Client) UpdateProject(ctx context.Context, project *entities.Project) (*entities.Project, error) {
	var out entities.Project
	if err := c.do(ctx, http.MethodPut, "/api/v1/project/"+project.ID.String(), project, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one JSON round trip. Transport failures map to network
// errors, 404 to not-found and other non-2xx statuses to external errors.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.NewInternalError("encoding request body", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.NewInternalError("building request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.NewNetworkError(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return pkgerrors.NewNotFoundError(path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("remote store rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return pkgerrors.NewExternalError(fmt.Sprintf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.NewExternalError(fmt.Sprintf("%s %s: decoding response: %v", method, path, err))
	}
	return nil
}
