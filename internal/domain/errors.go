package domain

import "errors"

var (
	// ErrInvalidDate is returned when a calendar date does not parse to a real day
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrInvalidDuration is returned when a service duration is below the minimum
	ErrInvalidDuration = errors.New("invalid service duration")

	// ErrSlotTaken is returned when a proposed interval overlaps an active order
	ErrSlotTaken = errors.New("time slot is already taken")

	// ErrStorageFailure wraps any failure of the order ledger or catalog storage
	ErrStorageFailure = errors.New("storage failure")
)
