// Package service holds the booking orchestration logic: the one
// place in the system where the seat ledger and the booking store
// must move together.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/eventhive/event-booking-api/internal/model"
	"github.com/eventhive/event-booking-api/internal/queue"
	"github.com/eventhive/event-booking-api/internal/repository"
)

// ErrInvalidSeatCount rejects bookings asking for fewer than one seat.
var ErrInvalidSeatCount = errors.New("seats must be at least 1")

// SeatLedger is the event-side seat accounting. Reserve must be
// atomic in the storage layer: it either takes all requested seats or
// nothing, and concurrent reservations against the same event
// serialize so the sum of successful reservations never exceeds
// capacity. Release credits seats back, clamped at capacity.
type SeatLedger interface {
	ReserveSeats(ctx context.Context, eventID uint64, seats int) (model.Event, error)
	ReleaseSeats(ctx context.Context, eventID uint64, seats int) error
}

// BookingStore persists bookings. Insert generates the unique
// reference; MarkCancelled is compare-and-set returning false when
// the booking was already cancelled; Reinstate undoes a MarkCancelled
// whose paired seat release failed.
type BookingStore interface {
	Insert(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	MarkCancelled(ctx context.Context, id uint64) (bool, error)
	Reinstate(ctx context.Context, id uint64, status string) error
}

// EventPublisher emits booking lifecycle events. Failures are
// tolerated: the broker is an observer of bookings, never a gate.
type EventPublisher interface {
	BookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
	BookingCancelled(ctx context.Context, ev queue.BookingCancelledEvent) error
}

// BookingService pairs seat reservation with booking persistence.
// The pairing is emulated transactionality via compensation: the
// reservation is an atomic conditional update, and if persisting the
// booking afterwards fails, the seats are released again. Likewise a
// cancellation whose seat release fails is reinstated. Everything
// else in the system is a single-entity write and needs no such care.
type BookingService struct {
	Ledger    SeatLedger
	Store     BookingStore
	Publisher EventPublisher
}

func NewBookingService(ledger SeatLedger, store BookingStore, pub EventPublisher) *BookingService {
	return &BookingService{Ledger: ledger, Store: store, Publisher: pub}
}

// Create reserves seats on the event and persists a CONFIRMED booking
// carrying the price snapshot (event price × seats at this instant;
// never recomputed later). On persistence failure the reservation is
// rolled back with a compensating release before the error is
// returned.
func (s *BookingService) Create(ctx context.Context, userID, eventID uint64, seats int, notes *string) (model.Booking, error) {
	if seats < 1 {
		return model.Booking{}, ErrInvalidSeatCount
	}

	ev, err := s.Ledger.ReserveSeats(ctx, eventID, seats)
	if err != nil {
		return model.Booking{}, err
	}

	b := model.Booking{
		UserID:          userID,
		EventID:         eventID,
		Seats:           seats,
		TotalPriceCents: ev.PriceCents * int64(seats),
		Status:          model.BookingConfirmed,
		Notes:           notes,
	}
	if err := s.Store.Insert(ctx, &b); err != nil {
		// Seats were taken but no booking exists: compensate.
		if relErr := s.Ledger.ReleaseSeats(ctx, eventID, seats); relErr != nil {
			log.Printf("booking: compensating release failed for event %d: %v", eventID, relErr)
		}
		return model.Booking{}, fmt.Errorf("persist booking: %w", err)
	}

	if s.Publisher == nil {
		return b, nil
	}
	if err := s.Publisher.BookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:       b.ID,
		Reference:       b.Reference,
		UserID:          userID,
		EventID:         eventID,
		EventTitle:      ev.Title,
		OrganizerID:     ev.OrganizerID,
		Seats:           seats,
		TotalPriceCents: b.TotalPriceCents,
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("booking: publish confirmed event failed: %v", err)
	}
	return b, nil
}

// Cancel flips a booking to CANCELLED and credits its seats back to
// the event. Only the booking's owner may cancel. Cancelling an
// already-cancelled booking is a successful no-op and never releases
// seats a second time; the compare-and-set in MarkCancelled also
// closes the race between two concurrent cancel calls.
func (s *BookingService) Cancel(ctx context.Context, bookingID, callerID uint64) (model.Booking, error) {
	b, err := s.Store.GetByID(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if b.UserID != callerID {
		return model.Booking{}, repository.ErrForbidden
	}
	if b.Status == model.BookingCancelled {
		return b, nil
	}

	flipped, err := s.Store.MarkCancelled(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if !flipped {
		// Lost a cancellation race; the winner released the seats.
		b.Status = model.BookingCancelled
		return b, nil
	}

	if err := s.Ledger.ReleaseSeats(ctx, b.EventID, b.Seats); err != nil {
		// The flip landed but the credit did not: undo the flip so the
		// ledger invariant holds and surface the failure.
		if reErr := s.Store.Reinstate(ctx, bookingID, b.Status); reErr != nil {
			log.Printf("booking: reinstate after failed release failed for booking %d: %v", bookingID, reErr)
		}
		return model.Booking{}, fmt.Errorf("release seats: %w", err)
	}

	b.Status = model.BookingCancelled

	if s.Publisher == nil {
		return b, nil
	}
	if err := s.Publisher.BookingCancelled(ctx, queue.BookingCancelledEvent{
		BookingID:     b.ID,
		Reference:     b.Reference,
		UserID:        b.UserID,
		EventID:       b.EventID,
		SeatsReleased: b.Seats,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("booking: publish cancelled event failed: %v", err)
	}
	return b, nil
}
