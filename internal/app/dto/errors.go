package dto

import "errors"

// Bridge errors
var (
	ErrMissingFlowID    = errors.New("flow ID is required")
	ErrMissingInput     = errors.New("input is required")
	ErrNilFlowConfig    = errors.New("flow config is required")
	ErrEmptyResponse    = errors.New("empty response from flow service")
	ErrMalformedPayload = errors.New("malformed flow payload")
)
