package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osintgraph-client/domain/core/entities"
	"osintgraph-client/domain/core/valueobjects"
)

func testNode(display string) *entities.Node {
	node := entities.NewNode(valueobjects.NewProjectID(), valueobjects.NodeTypeDomain, valueobjects.Position{X: 1, Y: 2})
	node.Display = display
	return node
}

func TestGraph_SnapshotDoesNotAliasLiveState(t *testing.T) {
	g := NewGraph()
	node := testNode("original")
	require.NoError(t, g.AddNode(node))

	snap := g.Snapshot()

	// Mutate live state after the snapshot.
	node.Display = "mutated"
	node.MoveTo(valueobjects.Position{X: 99, Y: 99})
	node.AddAttachment(valueobjects.NewAttachmentID())

	snapped := snap.Nodes()[0]
	assert.Equal(t, "original", snapped.Display)
	assert.Equal(t, 1.0, snapped.PosX)
	assert.Empty(t, snapped.Attachments)
}

func TestGraph_RestoreCopiesSoSnapshotSurvivesReuse(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(testNode("a")))
	snap := g.Snapshot()

	g.Restore(snap)
	restored := g.Nodes()[0]
	restored.Display = "changed"

	// The snapshot can be restored again, unaffected by edits made after
	// the first restoration (it may sit on the redo stack).
	g.Restore(snap)
	assert.Equal(t, "a", g.Nodes()[0].Display)
}

func TestGraph_RemoveNodeCascadesIncidentLinks(t *testing.T) {
	g := NewGraph()
	a, b, c := testNode("a"), testNode("b"), testNode("c")
	for _, n := range []*entities.Node{a, b, c} {
		require.NoError(t, g.AddNode(n))
	}
	ab := entities.NewLink(valueobjects.NewProjectID(), a.ID, b.ID, valueobjects.LinkKindOmni)
	bc := entities.NewLink(valueobjects.NewProjectID(), b.ID, c.ID, valueobjects.LinkKindDirectional)
	require.NoError(t, g.AddLink(ab))
	require.NoError(t, g.AddLink(bc))

	removed, ok := g.RemoveNode(b.ID)

	require.True(t, ok)
	assert.Len(t, removed, 2)
	assert.Equal(t, 0, g.LinkCount())
	assert.Equal(t, 2, g.NodeCount())
}

func TestGraph_AddLinkRequiresBothEndpoints(t *testing.T) {
	g := NewGraph()
	a := testNode("a")
	require.NoError(t, g.AddNode(a))

	link := entities.NewLink(valueobjects.NewProjectID(), a.ID, valueobjects.NewNodeID(), valueobjects.LinkKindOmni)
	err := g.AddLink(link)

	require.Error(t, err)
	assert.Equal(t, 0, g.LinkCount())
}

func TestGraph_ReplaceDiscardsPriorContents(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(testNode("old")))

	fresh := testNode("new")
	g.Replace([]*entities.Node{fresh}, nil)

	assert.Equal(t, 1, g.NodeCount())
	assert.True(t, g.HasNode(fresh.ID))
}
