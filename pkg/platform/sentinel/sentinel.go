package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and the settlement layer
// return these (optionally wrapped) so services can translate them into
// domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in store
// - ErrConflict: write-once or unique constraint hit
// - ErrInvalidState: record in wrong state for the requested transition
// - ErrUnavailable: store or settlement layer temporarily unavailable
//
// For validation errors (bad input, zero amounts), use pkg/domain-errors
// directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
