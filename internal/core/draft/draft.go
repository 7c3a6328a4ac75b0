// Package draft provides the core draft domain entities and interfaces
// following Clean Architecture principles with zero external dependencies.
package draft

import (
	"time"

	"github.com/nexusflow/floweditor/internal/core/canvas"
)

// Draft snapshots unsaved editor work for one flow so it survives a
// restart. The key is the persisted flow id, or a session-local key for
// flows that were never saved
// PRINCIPLES:
// - KISS: Simple struct with clear fields
// - SRP: Only responsible for draft data structure
type Draft struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	MaxSteps    int            `json:"max_steps"`
	Nodes       []*canvas.Node `json:"nodes"`
	Edges       []*canvas.Edge `json:"edges"`
	SavedAt     time.Time      `json:"saved_at"`
	Version     string         `json:"version"`
}

// Validate ensures draft integrity
// PRINCIPLES:
// - SRP: Single responsibility - validation only
// - KISS: Simple validation rules, easy to understand
func (d *Draft) Validate() error {
	if d.Key == "" {
		return ErrInvalidDraftKey
	}
	if d.Nodes == nil {
		return ErrNilNodes
	}
	return nil
}
