// Package canvas provides the node factory for drop interactions.
package canvas

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Default field values for freshly dropped agent nodes. Validation happens
// only at save/test time, never at creation time.
const (
	DefaultModel       = "openai/gpt-4"
	DefaultTemperature = 0.7
)

// idSeq disambiguates nodes created within the same millisecond.
var idSeq atomic.Int64

// NewNodeID synthesizes a unique node id from the creation timestamp.
// Ids carrying this shape are never persisted back as agent identifiers.
func NewNodeID() string {
	seq := idSeq.Add(1)
	return fmt.Sprintf("%s%d-%d", SynthesizedIDPrefix, time.Now().UnixMilli(), seq)
}

// NewEdgeID synthesizes an edge id for an interactively drawn connection.
// A random suffix keeps parallel edges between the same pair distinct,
// since the store does not de-duplicate them.
func NewEdgeID(source, target string) string {
	return fmt.Sprintf("edge-%s-%s-%s", source, target, uuid.NewString()[:8])
}

// NewAgentNode creates a node for the given agent-type token at the target
// position, with defaulted data, and appends it to the canvas.
// PRINCIPLES:
// - KISS: Defaults only, no validation
// - SRP: Creation, not mutation
func NewAgentNode(c *Canvas, agentType string, pos Position) *Node {
	node := &Node{
		ID:       NewNodeID(),
		Kind:     NodeKindAgent,
		Position: pos,
		Data: NodeData{
			Label:         "New " + agentType,
			Capabilities:  []string{},
			Model:         DefaultModel,
			SystemMessage: "",
			Temperature:   DefaultTemperature,
			ToolNames:     []string{},
		},
	}
	c.AddNode(node)
	return node
}
