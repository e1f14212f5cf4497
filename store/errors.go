package store

import "errors"

// Failure taxonomy surfaced by the stores. Handlers map these onto HTTP
// status codes; everything else is treated as a transport failure.
var (
	ErrNotAuthenticated = errors.New("no authenticated user")
	ErrNotFound         = errors.New("document not found")
	ErrConflict         = errors.New("transaction conflict")
	ErrTransport        = errors.New("store unavailable")
)
