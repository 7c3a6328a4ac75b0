package services

import "errors"

// Session errors. All of them are locally recoverable: nothing in this
// package is fatal to the process.
var (
	ErrValidation     = errors.New("flow validation failed")
	ErrSaveInFlight   = errors.New("a save is already in flight")
	ErrTestInFlight   = errors.New("a test is already in flight")
	ErrLoadInFlight   = errors.New("a load is already in flight")
	ErrStaleResponse  = errors.New("response discarded: session state changed")
	ErrUnknownCommand = errors.New("unknown editor command")
)
