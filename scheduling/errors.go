package scheduling

import "errors"

var (
	// ErrSchedulingConflict means the requested interval overlaps an existing
	// occupying appointment for the stylist. Controllers map it to 409.
	ErrSchedulingConflict = errors.New("time slot is already booked")

	// ErrNotFound means the referenced appointment or stylist does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInterval means start >= end or a non-positive duration.
	ErrInvalidInterval = errors.New("invalid time interval")

	// ErrInvalidTransition means the appointment's current status does not
	// allow the requested state change.
	ErrInvalidTransition = errors.New("invalid status transition")
)
