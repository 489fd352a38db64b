package errs

import "errors"

// Sentinel errors shared by the usecase layers and the boundary
// classifier. Admission outcomes fall into three families: caller
// errors (never retried), contention (surfaced, never auto-retried,
// expected under load), and transient infrastructure faults (retried
// internally with bounded backoff).
var (
	// Caller errors
	ErrInvalidRange      = errors.New("invalid stay range")
	ErrRoomNotFound      = errors.New("room not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// Contention
	ErrOverlapConflict = errors.New("stay overlaps an existing booking")

	// Transient infrastructure faults
	ErrTransientStoreFailure = errors.New("transient store failure")
	ErrLockTimeout           = errors.New("timed out acquiring room lock")
)
