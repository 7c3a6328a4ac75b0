package usecases

import "github.com/nexusflow/floweditor/internal/core/canvas"

// Command is the typed message contract between UI surfaces and the editor
// session. Each surface emits commands instead of threading callbacks
// through the component tree
// PRINCIPLES:
// - OCP: New commands extend the set without touching existing handlers
// - KISS: Plain data, no behavior
type Command interface {
	isCommand()
}

// DropNode creates a new agent node from a drop interaction.
type DropNode struct {
	AgentType string
	Position  canvas.Position
}

// SelectNode makes the node the exclusive selection.
type SelectNode struct {
	ID string
}

// ClearSelection drops the current selection.
type ClearSelection struct{}

// PatchNode merges a property-panel edit into the node's data.
type PatchNode struct {
	ID    string
	Patch canvas.DataPatch
}

// DeleteNode removes a node and cascades to its incident edges.
type DeleteNode struct {
	ID string
}

// ConnectNodes wires a delegation edge between two nodes.
type ConnectNodes struct {
	Source string
	Target string
}

// MoveNode updates a node's canvas position after a drag.
type MoveNode struct {
	ID       string
	Position canvas.Position
}

func (DropNode) isCommand()       {}
func (SelectNode) isCommand()     {}
func (ClearSelection) isCommand() {}
func (PatchNode) isCommand()      {}
func (DeleteNode) isCommand()     {}
func (ConnectNodes) isCommand()   {}
func (MoveNode) isCommand()       {}
