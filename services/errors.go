package services

import "errors"

// ErrInvalidInput represents malformed input (negative revenue, empty seller
// id). Rejected before any mutation.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidTransition represents a verification state machine rule
// violation. Rejected with no mutation and no side effects.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrConcurrentModification represents an optimistic-concurrency conflict on
// write. The service retries once before surfacing it; callers seeing it
// should re-fetch and retry.
var ErrConcurrentModification = errors.New("concurrent modification")

// ErrDependencyUnavailable represents an unreachable collaborator. On the
// audit sink this is fatal to the transition; on the notification dispatcher
// it is logged and delivery retried asynchronously.
var ErrDependencyUnavailable = errors.New("dependency unavailable")

// ErrNotFound represents a missing compliance record
var ErrNotFound = errors.New("record not found")
