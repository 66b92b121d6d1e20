// Package repository implements raw-SQL persistence for users,
// events, bookings and wishlist entries. This file defines sentinel
// error values reused across repositories so higher layers can map
// failure scenarios to HTTP statuses without string matching.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email that is
// already taken. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEventNotFound is returned when an event lookup matches no row,
// or when the event exists but is not visible to the caller under the
// moderation-status policy. Handlers translate this into HTTP 404.
var ErrEventNotFound = errors.New("event not found")

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrWishlistNotFound is returned when a wishlist entry cannot be
// resolved by entry id or event id.
var ErrWishlistNotFound = errors.New("wishlist entry not found")

// ErrInsufficientSeats is returned when a reservation asks for more
// seats than the event has available. Handlers translate this into
// HTTP 409.
var ErrInsufficientSeats = errors.New("insufficient seats")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrHasBookings is returned when deleting an event that still has
// non-cancelled bookings, or when changing total seats after bookings
// exist. Handlers translate this into HTTP 409.
var ErrHasBookings = errors.New("event has active bookings")

// ErrDuplicateReference is returned when a booking insert collides on
// the unique reference index after exhausting regeneration attempts.
var ErrDuplicateReference = errors.New("booking reference collision")

// ErrBadTransition is returned when a moderation action targets an
// event whose current status does not permit it (e.g. approving an
// already-approved event). Handlers translate this into HTTP 409.
var ErrBadTransition = errors.New("invalid status transition")
