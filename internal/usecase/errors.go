package usecase

import "errors"

var (
	// ErrValidation covers malformed dates, slots and ids.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers unknown users, courts, rates and reservations.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers a duplicate pending reservation for a user and
	// an already-booked slot. Never retried server-side: the caller
	// picks another slot.
	ErrConflict = errors.New("conflict")

	// ErrStaleCallback marks a payment confirmation for a reservation
	// that is already resolved. The callback mutates nothing.
	ErrStaleCallback = errors.New("reservation already resolved")
)
