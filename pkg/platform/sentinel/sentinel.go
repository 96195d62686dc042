package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and oracle clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrConflict: an active record already occupies the unique slot
// - ErrExpired: cached credential has passed its expiry
// - ErrUnavailable: upstream service or resource temporarily unavailable
//
// For validation errors (bad input, malformed addresses), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
