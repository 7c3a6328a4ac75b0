// Package flow defines domain-specific errors
package flow

import "errors"

// Validation errors - detected locally before any network call.
var (
	ErrEmptyName             = errors.New("flow name is required")
	ErrNoAgents              = errors.New("flow must contain at least one agent")
	ErrMaxStepsOutOfRange    = errors.New("max_steps must be between 1 and 50")
	ErrTemperatureOutOfRange = errors.New("temperature must be between 0 and 1")
)
