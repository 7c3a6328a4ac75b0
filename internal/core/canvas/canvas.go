// Package canvas provides the in-memory graph state store for the editor.
package canvas

import (
	"sync"

	"github.com/nexusflow/floweditor/internal/infrastructure/metrics"
)

// Canvas is the canonical in-memory representation of the editor graph.
// Nodes and edges keep insertion order so that derived flow configurations
// are stable across repeated reads.
// PRINCIPLES:
// - KISS: Two ordered slices plus an id index
// - SRP: Only responsible for graph structure, not translation or persistence
// - Thread-safe
type Canvas struct {
	mu    sync.RWMutex
	nodes []*Node
	edges []*Edge
	index map[string]*Node // node id -> node
}

// New creates an empty canvas.
func New() *Canvas {
	return &Canvas{index: make(map[string]*Node)}
}

// AddNode appends a node to the canvas. An id collision is a silent no-op:
// id generation guarantees uniqueness, not the store.
func (c *Canvas) AddNode(node *Node) {
	if node == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.index[node.ID]; exists {
		return
	}
	c.nodes = append(c.nodes, node)
	c.index[node.ID] = node
	metrics.IncNodesCreated()
}

// RemoveNode removes the node and every edge incident on it, as source or
// as target. Removing an unknown id is a no-op.
func (c *Canvas) RemoveNode(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.index[id]; !exists {
		return
	}
	delete(c.index, id)
	kept := c.nodes[:0]
	for _, n := range c.nodes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	c.nodes = kept
	c.removeEdgesTouchingLocked(id)
	metrics.IncNodesRemoved()
}

// UpdateNode shallow-merges the patch into the node's data field only.
// ID, kind and position are immutable after creation except by explicit
// replacement. Returns ErrNodeNotFound for unknown ids.
func (c *Canvas) UpdateNode(id string, patch DataPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	node, exists := c.index[id]
	if !exists {
		return ErrNodeNotFound
	}
	patch.apply(&node.Data)
	return nil
}

// MoveNode replaces the node position. Position changes come from canvas
// drags, not the property panel, so they bypass the data merge path.
func (c *Canvas) MoveNode(id string, pos Position) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	node, exists := c.index[id]
	if !exists {
		return ErrNodeNotFound
	}
	node.Position = pos
	return nil
}

// EdgeParams carries the caller-supplied fields for a new edge.
type EdgeParams struct {
	ID     string
	Source string
	Target string
	Label  string
}

// AddEdge appends an edge with Animated defaulting to true. Parallel edges
// between the same pair are not de-duplicated and cycles are not rejected.
func (c *Canvas) AddEdge(params EdgeParams) *Edge {
	edge := &Edge{
		ID:       params.ID,
		Source:   params.Source,
		Target:   params.Target,
		Animated: true,
		Label:    params.Label,
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edges = append(c.edges, edge)
	metrics.IncEdgesCreated()
	return edge
}

// RemoveEdgesTouching removes every edge where source or target equals id.
func (c *Canvas) RemoveEdgesTouching(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeEdgesTouchingLocked(id)
}

func (c *Canvas) removeEdgesTouchingLocked(id string) {
	kept := c.edges[:0]
	for _, e := range c.edges {
		if e.Touches(id) {
			metrics.IncEdgesRemoved()
			continue
		}
		kept = append(kept, e)
	}
	c.edges = kept
}

// Node returns the node with the given id, or ErrNodeNotFound.
func (c *Canvas) Node(id string) (*Node, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	node, exists := c.index[id]
	if !exists {
		return nil, ErrNodeNotFound
	}
	return node, nil
}

// Nodes returns a snapshot of the nodes in insertion order.
func (c *Canvas) Nodes() []*Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Edges returns a snapshot of the edges in insertion order.
func (c *Canvas) Edges() []*Edge {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Edge, len(c.edges))
	copy(out, c.edges)
	return out
}

// AgentNodes returns the agent-kind nodes in insertion order.
func (c *Canvas) AgentNodes() []*Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*Node
	for _, n := range c.nodes {
		if n.IsAgent() {
			out = append(out, n)
		}
	}
	return out
}

// Restore replaces the canvas contents with an externally supplied layout,
// verbatim. Nodes with duplicate ids keep first-wins semantics; edges are
// kept exactly as given, including their Animated flag.
func (c *Canvas) Restore(nodes []*Node, edges []*Edge) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = nil
	c.edges = nil
	c.index = make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if _, exists := c.index[n.ID]; exists {
			continue
		}
		c.nodes = append(c.nodes, n)
		c.index[n.ID] = n
	}
	for _, e := range edges {
		if e == nil {
			continue
		}
		c.edges = append(c.edges, e)
	}
}

// Reset discards all nodes and edges, e.g. before loading a persisted flow.
func (c *Canvas) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = nil
	c.edges = nil
	c.index = make(map[string]*Node)
}
