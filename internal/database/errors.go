package database

import "errors"

// Failure classes the entity managers translate into user-facing messages.
// Referential guards get their own sentinel so the reason can be reported
// precisely instead of as a generic constraint violation.
var (
	ErrNotFound = errors.New("record not found")

	ErrGuestHasBookings = errors.New("guest is referenced by bookings")
	ErrRoomHasBookings  = errors.New("room is referenced by bookings")
	ErrServiceInUse     = errors.New("service is linked to bookings")
	ErrBookingHasBills  = errors.New("booking is referenced by bills")

	ErrRoomExists = errors.New("room number already exists")

	// ErrNotConfirmed is returned by deletes until the caller repeats the
	// call with an explicit confirmation.
	ErrNotConfirmed = errors.New("deletion requires confirmation")
)
