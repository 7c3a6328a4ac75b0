// Package canvas provides edge definitions
package canvas

// Edge represents a directed delegation link between two nodes
// PRINCIPLES:
// - KISS: Simple edge representation
// - SRP: Only responsible for edge data
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"` // Source node ID
	Target   string `json:"target"` // Target node ID
	Animated bool   `json:"animated"` // Presentation flag, no semantic weight
	Label    string `json:"label,omitempty"`
}

// Touches reports whether the edge is incident on the given node id,
// either as source or as target.
func (e *Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Validate ensures edge integrity. Self-loops and cycles are legal here;
// delegation cycle semantics belong to the execution engine, not the editor.
func (e *Edge) Validate() error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if e.Source == "" {
		return ErrInvalidSource
	}
	if e.Target == "" {
		return ErrInvalidTarget
	}
	return nil
}
