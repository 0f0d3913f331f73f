package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and the workflow reducer
// return these (optionally wrapped) so services can translate them into
// domain errors:
//   - ErrNotFound: the session does not exist (or was swept)
//   - ErrInvalidState: the event is not allowed in the current phase
//   - ErrPending: a dependent asynchronous read has not finished
//   - ErrCanceled: a read was superseded before it finished
//
// For validation failures, use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrPending      = errors.New("pending")
	ErrCanceled     = errors.New("canceled")
	ErrUnavailable  = errors.New("unavailable")
)
