// Package canvas provides the core editor canvas entities
// following Clean Architecture principles with zero external dependencies.
package canvas

import "strings"

// NodeKind represents the kind of canvas node
type NodeKind string

const (
	// NodeKindAgent represents an agent node
	NodeKindAgent NodeKind = "agent"
)

// SynthesizedIDPrefix marks node ids generated by the editor rather than
// carried over from a persisted agent identifier.
const SynthesizedIDPrefix = "agent-"

// Position is a 2D canvas coordinate. Presentation-only; it carries no
// meaning for the execution backend.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData holds the editable configuration of an agent node.
// Model is the combined "provider/name" string shown in the property panel.
type NodeData struct {
	Label         string   `json:"label"`
	Capabilities  []string `json:"capabilities"`
	Model         string   `json:"model"`
	SystemMessage string   `json:"system_message"`
	Temperature   float64  `json:"temperature"`
	ToolNames     []string `json:"tool_names"`
}

// Node represents one agent placeholder on the canvas
// PRINCIPLES:
// - KISS: Simple node representation
// - SRP: Only responsible for node data
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// IsAgent checks if the node carries agent configuration.
func (n *Node) IsAgent() bool {
	return n.Kind == NodeKindAgent
}

// HasSynthesizedID reports whether the node id was generated by the editor.
// Synthesized ids must not be persisted back as agent identifiers.
func (n *Node) HasSynthesizedID() bool {
	return strings.HasPrefix(n.ID, SynthesizedIDPrefix)
}

// DataPatch is a merge patch for NodeData. Nil fields are left untouched;
// the property panel always sends full patches carrying current values.
type DataPatch struct {
	Label         *string   `json:"label,omitempty"`
	Capabilities  *[]string `json:"capabilities,omitempty"`
	Model         *string   `json:"model,omitempty"`
	SystemMessage *string   `json:"system_message,omitempty"`
	Temperature   *float64  `json:"temperature,omitempty"`
	ToolNames     *[]string `json:"tool_names,omitempty"`
}

// apply shallow-merges the patch into the data value.
func (p *DataPatch) apply(d *NodeData) {
	if p.Label != nil {
		d.Label = *p.Label
	}
	if p.Capabilities != nil {
		d.Capabilities = *p.Capabilities
	}
	if p.Model != nil {
		d.Model = *p.Model
	}
	if p.SystemMessage != nil {
		d.SystemMessage = *p.SystemMessage
	}
	if p.Temperature != nil {
		d.Temperature = *p.Temperature
	}
	if p.ToolNames != nil {
		d.ToolNames = *p.ToolNames
	}
}

// Validate ensures node integrity
// PRINCIPLES:
// - SRP: Single responsibility - validation only
// - KISS: Simple validation, <10 lines
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if n.Kind == "" {
		return ErrInvalidNodeKind
	}
	return nil
}
