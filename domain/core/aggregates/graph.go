// Package aggregates holds the in-memory graph: the canonical node and link
// collections the editor renders from. Local state is the source of truth;
// the remote store is a write-back target that eventually catches up.
package aggregates

import (
	"sort"

	"osintgraph-client/domain/core/entities"
	"osintgraph-client/domain/core/valueobjects"
	pkgerrors "osintgraph-client/pkg/errors"
)

// Graph owns the live node/link collections for one project.
//
// Graph is not safe for concurrent use; the editor serializes access.
type Graph struct {
	nodes map[valueobjects.NodeID]*entities.Node
	links map[valueobjects.LinkID]*entities.Link
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[valueobjects.NodeID]*entities.Node),
		links: make(map[valueobjects.LinkID]*entities.Link),
	}
}

// AddNode inserts a node. Inserting an id that already exists is an
// invariant violation: ids are immutable and unique.
func (g *Graph) AddNode(node *entities.Node) error {
	if _, exists := g.nodes[node.ID]; exists {
		return pkgerrors.NewInternalError("duplicate node id "+node.ID.String(), nil)
	}
	g.nodes[node.ID] = node
	return nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id valueobjects.NodeID) (*entities.Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// HasNode reports whether a node exists in local state.
func (g *Graph) HasNode(id valueobjects.NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// RemoveNode deletes a node and every link touching it, returning the ids
// of the removed links. The remote store cascades link deletion on node
// deletion, so callers only issue the node delete.
func (g *Graph) RemoveNode(id valueobjects.NodeID) ([]valueobjects.LinkID, bool) {
	if _, ok := g.nodes[id]; !ok {
		return nil, false
	}
	delete(g.nodes, id)

	var removed []valueobjects.LinkID
	for linkID, link := range g.links {
		if link.Touches(id) {
			delete(g.links, linkID)
			removed = append(removed, linkID)
		}
	}
	return removed, true
}

// AddLink inserts a link after checking both endpoints exist locally.
// Endpoints may be pending nodes; a link never waits for confirmation.
func (g *Graph) AddLink(link *entities.Link) error {
	if !g.HasNode(link.Source) {
		return pkgerrors.NewValidationError("link source node %s does not exist", link.Source)
	}
	if !g.HasNode(link.Target) {
		return pkgerrors.NewValidationError("link target node %s does not exist", link.Target)
	}
	if _, exists := g.links[link.ID]; exists {
		return pkgerrors.NewInternalError("duplicate link id "+link.ID.String(), nil)
	}
	g.links[link.ID] = link
	return nil
}

// Link returns the link with the given id.
func (g *Graph) Link(id valueobjects.LinkID) (*entities.Link, bool) {
	link, ok := g.links[id]
	return link, ok
}

// RemoveLink deletes a link.
func (g *Graph) RemoveLink(id valueobjects.LinkID) bool {
	if _, ok := g.links[id]; !ok {
		return false
	}
	delete(g.links, id)
	return true
}

// Nodes returns the live nodes sorted by id for stable iteration.
func (g *Graph) Nodes() []*entities.Node {
	out := make([]*entities.Node, 0, len(g.nodes))
	for _, node := range g.nodes {
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// Links returns the live links sorted by id for stable iteration.
func (g *Graph) Links() []*entities.Link {
	out := make([]*entities.Link, 0, len(g.links))
	for _, link := range g.links {
		out = append(out, link)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int { return len(g.links) }

// Replace swaps in a wholesale new set of nodes and links, as produced by
// bulk hydration. Prior contents are discarded.
func (g *Graph) Replace(nodes []*entities.Node, links []*entities.Link) {
	g.nodes = make(map[valueobjects.NodeID]*entities.Node, len(nodes))
	for _, node := range nodes {
		g.nodes[node.ID] = node
	}
	g.links = make(map[valueobjects.LinkID]*entities.Link, len(links))
	for _, link := range links {
		g.links[link.ID] = link
	}
}

// Snapshot is an immutable deep copy of the whole graph at one instant.
type Snapshot struct {
	nodes map[valueobjects.NodeID]*entities.Node
	links map[valueobjects.LinkID]*entities.Link
}

// Snapshot deep-copies the current graph. The copy shares nothing with live
// state: mutating the graph afterwards cannot alter the snapshot.
func (g *Graph) Snapshot() *Snapshot {
	s := &Snapshot{
		nodes: make(map[valueobjects.NodeID]*entities.Node, len(g.nodes)),
		links: make(map[valueobjects.LinkID]*entities.Link, len(g.links)),
	}
	for id, node := range g.nodes {
		s.nodes[id] = node.Clone()
	}
	for id, link := range g.links {
		s.links[id] = link.Clone()
	}
	return s
}

// Restore replaces the graph's contents with deep copies of the snapshot.
// The snapshot itself stays intact, so it can sit on the redo stack and be
// restored again later.
func (g *Graph) Restore(s *Snapshot) {
	g.nodes = make(map[valueobjects.NodeID]*entities.Node, len(s.nodes))
	for id, node := range s.nodes {
		g.nodes[id] = node.Clone()
	}
	g.links = make(map[valueobjects.LinkID]*entities.Link, len(s.links))
	for id, link := range s.links {
		g.links[id] = link.Clone()
	}
}

// Nodes returns the snapshot's nodes sorted by id.
func (s *Snapshot) Nodes() []*entities.Node {
	out := make([]*entities.Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// Links returns the snapshot's links sorted by id.
func (s *Snapshot) Links() []*entities.Link {
	out := make([]*entities.Link, 0, len(s.links))
	for _, link := range s.links {
		out = append(out, link)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}
