package validation

import (
	"fmt"

	"github.com/nexusflow/floweditor/internal/core/canvas"
)

// CanvasValidationOptions controls optional validation checks.
type CanvasValidationOptions struct {
	// ReportCycles includes a cycle report in the result. Cycles are legal
	// delegation topology; the editor never rejects them.
	ReportCycles bool
}

// CanvasReport is the outcome of validating an externally supplied layout.
type CanvasReport struct {
	HasCycle bool
}

// ValidateCanvas performs structural validation on canvas state. It is
// intended for layouts loaded from external payloads where the store's
// in-method guards may have been bypassed.
func ValidateCanvas(c *canvas.Canvas, opts ...CanvasValidationOptions) (*CanvasReport, error) {
	if c == nil {
		return nil, fmt.Errorf("canvas is nil")
	}

	// Restore filters nil entries, so snapshots never contain them.
	nodes := c.Nodes()
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	edges := c.Edges()
	for _, e := range edges {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[e.Source]; !ok {
			return nil, fmt.Errorf("%w: source %q", canvas.ErrDanglingEdge, e.Source)
		}
		if _, ok := seen[e.Target]; !ok {
			return nil, fmt.Errorf("%w: target %q", canvas.ErrDanglingEdge, e.Target)
		}
	}

	report := &CanvasReport{}
	var cfg CanvasValidationOptions
	if len(opts) > 0 {
		cfg = opts[0]
	}
	if cfg.ReportCycles {
		report.HasCycle = hasCycle(nodes, edges)
	}
	return report, nil
}

// hasCycle detects any cycle in the delegation graph using DFS with coloring.
func hasCycle(nodes []*canvas.Node, edges []*canvas.Edge) bool {
	const (
		white = 0 // unvisited
		gray  = 1 // visiting
		black = 2 // visited
	)
	color := make(map[string]int, len(nodes))
	adj := make(map[string][]string, len(nodes))
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	var dfs func(string) bool
	dfs = func(u string) bool {
		color[u] = gray
		for _, v := range adj[u] {
			if color[v] == gray {
				return true // back-edge
			}
			if color[v] == white {
				if dfs(v) {
					return true
				}
			}
		}
		color[u] = black
		return false
	}
	for _, n := range nodes {
		if color[n.ID] == white {
			if dfs(n.ID) {
				return true
			}
		}
	}
	return false
}
