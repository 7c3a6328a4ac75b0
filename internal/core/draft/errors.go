// Package draft defines domain-specific errors
package draft

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Draft validation errors
	ErrInvalidDraftKey = errors.New("invalid draft key")
	ErrNilDraft        = errors.New("draft cannot be nil")
	ErrNilNodes        = errors.New("draft nodes cannot be nil")
	ErrDraftNotFound   = errors.New("draft not found")

	// Filter validation errors
	ErrInvalidLimit  = errors.New("limit cannot be negative")
	ErrInvalidOffset = errors.New("offset cannot be negative")
)
