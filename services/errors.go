package services

import "errors"

var (
	// ErrNotFound covers unknown order ids, cart indexes out of range, and
	// absent payment records.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument covers non-positive quantities, unknown statuses,
	// and malformed address fields.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalTransition is returned when a status update is not
	// reachable from the order's current status.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrStorageUnavailable wraps persistence write failures. The mutation
	// stays applied in memory; the next successful write persists it.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
