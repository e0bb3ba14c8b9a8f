package domain

import "errors"

// Failure taxonomy shared by services and the HTTP error handler.
var (
	ErrValidation       = errors.New("invalid input")
	ErrAuthRequired     = errors.New("authentication required")
	ErrNotFound         = errors.New("manifestation not found")
	ErrInvalidState     = errors.New("operation not allowed in current status")
	ErrAlreadyFinalized = errors.New("manifestation is already finalized")
	ErrLocked           = errors.New("cannot send a message to a closed case")
	ErrProtocolTaken    = errors.New("protocol already exists")
	ErrUnavailable      = errors.New("backing store unavailable")
)
