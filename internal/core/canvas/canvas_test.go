package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agentNode(id string) *Node {
	return &Node{
		ID:   id,
		Kind: NodeKindAgent,
		Data: NodeData{Label: id, Temperature: 0.5},
	}
}

func TestCanvas_AddNode(t *testing.T) {
	c := New()

	t.Run("appends in order", func(t *testing.T) {
		c.AddNode(agentNode("a"))
		c.AddNode(agentNode("b"))
		nodes := c.Nodes()
		require.Len(t, nodes, 2)
		assert.Equal(t, "a", nodes[0].ID)
		assert.Equal(t, "b", nodes[1].ID)
	})

	t.Run("id collision is a silent no-op", func(t *testing.T) {
		dup := agentNode("a")
		dup.Data.Label = "other"
		c.AddNode(dup)
		nodes := c.Nodes()
		require.Len(t, nodes, 2)
		assert.Equal(t, "a", nodes[0].Data.Label)
	})

	t.Run("nil node is ignored", func(t *testing.T) {
		c.AddNode(nil)
		assert.Len(t, c.Nodes(), 2)
	})
}

func TestCanvas_RemoveNode_CascadesEdges(t *testing.T) {
	c := New()
	c.AddNode(agentNode("a"))
	c.AddNode(agentNode("b"))
	c.AddNode(agentNode("c"))
	c.AddEdge(EdgeParams{ID: "e1", Source: "a", Target: "b"})
	c.AddEdge(EdgeParams{ID: "e2", Source: "b", Target: "c"})
	c.AddEdge(EdgeParams{ID: "e3", Source: "c", Target: "a"})

	c.RemoveNode("b")

	nodes := c.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].ID)
	assert.Equal(t, "c", nodes[1].ID)

	edges := c.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, "e3", edges[0].ID)
	for _, e := range edges {
		assert.False(t, e.Touches("b"))
	}

	_, err := c.Node("b")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestCanvas_RemoveNode_UnknownIsNoop(t *testing.T) {
	c := New()
	c.AddNode(agentNode("a"))
	c.RemoveNode("missing")
	assert.Len(t, c.Nodes(), 1)
}

func TestCanvas_UpdateNode(t *testing.T) {
	c := New()
	node := agentNode("a")
	node.Position = Position{X: 10, Y: 20}
	c.AddNode(node)

	label := "Researcher"
	temp := 0.9
	err := c.UpdateNode("a", DataPatch{Label: &label, Temperature: &temp})
	require.NoError(t, err)

	got, err := c.Node("a")
	require.NoError(t, err)
	assert.Equal(t, "Researcher", got.Data.Label)
	assert.Equal(t, 0.9, got.Data.Temperature)
	// Only the data field is touched by a patch
	assert.Equal(t, Position{X: 10, Y: 20}, got.Position)
	assert.Equal(t, NodeKindAgent, got.Kind)

	t.Run("unknown id", func(t *testing.T) {
		err := c.UpdateNode("missing", DataPatch{Label: &label})
		assert.ErrorIs(t, err, ErrNodeNotFound)
	})

	t.Run("nil fields leave values untouched", func(t *testing.T) {
		err := c.UpdateNode("a", DataPatch{})
		require.NoError(t, err)
		got, _ := c.Node("a")
		assert.Equal(t, "Researcher", got.Data.Label)
		assert.Equal(t, 0.9, got.Data.Temperature)
	})
}

func TestCanvas_AddEdge(t *testing.T) {
	c := New()
	c.AddNode(agentNode("a"))
	c.AddNode(agentNode("b"))

	e := c.AddEdge(EdgeParams{ID: "e1", Source: "a", Target: "b"})
	assert.True(t, e.Animated, "animated defaults to true")

	// Parallel edges between the same pair are not de-duplicated
	c.AddEdge(EdgeParams{ID: "e2", Source: "a", Target: "b"})
	assert.Len(t, c.Edges(), 2)

	// Cyclic delegation is legal
	c.AddEdge(EdgeParams{ID: "e3", Source: "b", Target: "a"})
	assert.Len(t, c.Edges(), 3)
}

func TestCanvas_RemoveEdgesTouching(t *testing.T) {
	c := New()
	c.AddNode(agentNode("a"))
	c.AddNode(agentNode("b"))
	c.AddNode(agentNode("c"))
	c.AddEdge(EdgeParams{ID: "e1", Source: "a", Target: "b"})
	c.AddEdge(EdgeParams{ID: "e2", Source: "b", Target: "a"})
	c.AddEdge(EdgeParams{ID: "e3", Source: "b", Target: "c"})

	c.RemoveEdgesTouching("a")

	edges := c.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, "e3", edges[0].ID)
}

func TestCanvas_Restore(t *testing.T) {
	c := New()
	c.AddNode(agentNode("old"))

	nodes := []*Node{agentNode("a"), agentNode("b")}
	edges := []*Edge{{ID: "e1", Source: "a", Target: "b", Animated: false}}
	c.Restore(nodes, edges)

	require.Len(t, c.Nodes(), 2)
	require.Len(t, c.Edges(), 1)
	// Restore keeps the layout verbatim, including the animated flag
	assert.False(t, c.Edges()[0].Animated)

	_, err := c.Node("old")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestCanvas_Reset(t *testing.T) {
	c := New()
	c.AddNode(agentNode("a"))
	c.AddEdge(EdgeParams{ID: "e1", Source: "a", Target: "a"})

	c.Reset()

	assert.Empty(t, c.Nodes())
	assert.Empty(t, c.Edges())
}

func TestCanvas_AgentNodes(t *testing.T) {
	c := New()
	c.AddNode(agentNode("a"))
	c.AddNode(&Node{ID: "note-1", Kind: NodeKind("note")})
	c.AddNode(agentNode("b"))

	agents := c.AgentNodes()
	require.Len(t, agents, 2)
	assert.Equal(t, "a", agents[0].ID)
	assert.Equal(t, "b", agents[1].ID)
}
