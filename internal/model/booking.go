package model

import "time"

// Booking states. Bookings are created CONFIRMED because no payment
// gate runs in this service; PENDING exists for payment-flow
// compatibility but nothing here creates it. CANCELLED is terminal:
// a cancelled booking is never re-activated and its seats are
// credited back to the event exactly once.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking records a seat reservation against one event by one user,
// stored in the `bookings` table. TotalPriceCents is a snapshot of
// event price × seats taken at creation time and is never recomputed
// when the event price changes later. Reference is a human-readable
// identifier with a storage-enforced unique index; generation retries
// on collision rather than overwriting.
//
// Fields:
//  ID              – primary key identifier.
//  Reference       – unique human-readable booking reference.
//  UserID          – user who made the booking.
//  EventID         – event being booked.
//  Seats           – number of seats reserved (>= 1).
//  TotalPriceCents – price snapshot in cents at creation time.
//  Status          – PENDING, CONFIRMED or CANCELLED.
//  PaymentID       – opaque external payment reference, if any.
//  Notes           – optional free-text notes from the booker.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64    // bookings.id
	Reference       string    // bookings.reference
	UserID          uint64    // bookings.user_id
	EventID         uint64    // bookings.event_id
	Seats           int       // bookings.seats
	TotalPriceCents int64     // bookings.total_price_cents
	Status          string    // bookings.status
	PaymentID       *string   // bookings.payment_id (nullable)
	Notes           *string   // bookings.notes (nullable)
	CreatedAt       time.Time // bookings.created_at
	UpdatedAt       time.Time // bookings.updated_at
}

// TotalPrice returns the snapshot total in currency units for display.
func (b *Booking) TotalPrice() float64 {
	return float64(b.TotalPriceCents) / 100.0
}
