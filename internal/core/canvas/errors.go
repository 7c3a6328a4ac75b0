// Package canvas defines domain-specific errors
package canvas

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Node errors
	ErrInvalidNodeID   = errors.New("invalid node ID")
	ErrInvalidNodeKind = errors.New("invalid node kind")
	ErrNodeNotFound    = errors.New("node not found")

	// Edge errors
	ErrInvalidEdgeID = errors.New("invalid edge ID")
	ErrInvalidSource = errors.New("invalid source node")
	ErrInvalidTarget = errors.New("invalid target node")
	ErrDanglingEdge  = errors.New("edge references a missing node")
)
