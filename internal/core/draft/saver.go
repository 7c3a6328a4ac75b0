// Package draft provides draft persistence interfaces
package draft

import (
	"context"
	"time"
)

// Saver interface for draft persistence (DIP - Dependency Inversion)
// PRINCIPLES:
// - ISP: Interface segregation with ≤5 methods
// - DIP: Core domain depends on interface, not implementations
// - SRP: Single responsibility - draft persistence
type Saver interface {
	// Save persists a draft, replacing any prior draft with the same key
	Save(ctx context.Context, d *Draft) error

	// Load retrieves a draft by key
	Load(ctx context.Context, key string) (*Draft, error)

	// List returns drafts matching the filter
	List(ctx context.Context, filter Filter) ([]*Draft, error)

	// Delete removes a draft by key
	Delete(ctx context.Context, key string) error
}

// Filter for draft queries (ISP - segregated interface)
type Filter struct {
	Limit  int        `json:"limit,omitempty"`
	Offset int        `json:"offset,omitempty"`
	Since  *time.Time `json:"since,omitempty"`
}

// Validate ensures filter parameters are valid
func (f *Filter) Validate() error {
	if f.Limit < 0 {
		return ErrInvalidLimit
	}
	if f.Offset < 0 {
		return ErrInvalidOffset
	}
	return nil
}
