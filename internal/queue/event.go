// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names for booking lifecycle events.
const (
	BookingConfirmedQueue = "booking.confirmed"
	BookingCancelledQueue = "booking.cancelled"
)

// BookingConfirmedEvent is published when a booking is successfully
// created. It carries enough information for downstream consumers
// (notifications, analytics) to act without querying the primary
// database.
type BookingConfirmedEvent struct {
	BookingID       uint64 `json:"booking_id"`
	Reference       string `json:"reference"`
	UserID          uint64 `json:"user_id"`
	EventID         uint64 `json:"event_id"`
	EventTitle      string `json:"event_title"`
	OrganizerID     uint64 `json:"organizer_id"`
	Seats           int    `json:"seats"`
	TotalPriceCents int64  `json:"total_price_cents"`
	ConfirmedAt     string `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a booking is cancelled and
// its seats are credited back to the event.
type BookingCancelledEvent struct {
	BookingID     uint64 `json:"booking_id"`
	Reference     string `json:"reference"`
	UserID        uint64 `json:"user_id"`
	EventID       uint64 `json:"event_id"`
	SeatsReleased int    `json:"seats_released"`
	CancelledAt   string `json:"cancelled_at"`
}
