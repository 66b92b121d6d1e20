package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/event-booking-api/internal/model"
	"github.com/eventhive/event-booking-api/internal/repository"
	"github.com/eventhive/event-booking-api/internal/service"
)

// fakeLedger mirrors the conditional-update semantics of the SQL seat
// ledger: reserve all-or-nothing, release clamped at capacity.
type fakeLedger struct {
	mu     sync.Mutex
	events map[uint64]*model.Event
}

func newFakeLedger(events ...*model.Event) *fakeLedger {
	m := make(map[uint64]*model.Event, len(events))
	for _, e := range events {
		m[e.ID] = e
	}
	return &fakeLedger{events: m}
}

func (f *fakeLedger) ReserveSeats(ctx context.Context, eventID uint64, seats int) (model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok || e.Status != model.EventApproved || !e.IsActive {
		return model.Event{}, repository.ErrEventNotFound
	}
	if e.AvailableSeats < seats {
		return model.Event{}, repository.ErrInsufficientSeats
	}
	e.AvailableSeats -= seats
	return *e, nil
}

func (f *fakeLedger) ReleaseSeats(ctx context.Context, eventID uint64, seats int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return nil
	}
	e.AvailableSeats += seats
	if e.AvailableSeats > e.TotalSeats {
		e.AvailableSeats = e.TotalSeats
	}
	return nil
}

type fakeStore struct {
	mu       sync.Mutex
	nextID   uint64
	bookings map[uint64]*model.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, bookings: map[uint64]*model.Booking{}}
}

func (f *fakeStore) Insert(ctx context.Context, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = f.nextID
	b.Reference = fmt.Sprintf("EVT-FAKE-%04d", f.nextID)
	f.nextID++
	cp := *b
	f.bookings[cp.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	return *b, nil
}

func (f *fakeStore) MarkCancelled(ctx context.Context, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status == model.BookingCancelled {
		return false, nil
	}
	b.Status = model.BookingCancelled
	return true, nil
}

func (f *fakeStore) Reinstate(ctx context.Context, id uint64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

// activeSeats sums seats over non-cancelled bookings, the other side of
// the seat invariant.
func (f *fakeStore) activeSeats() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, b := range f.bookings {
		if b.Status != model.BookingCancelled {
			total += b.Seats
		}
	}
	return total
}

// TestBookingLifecycleScenario walks an event from booking through
// double cancellation, checking the seat invariant
// available + Σ(active booking seats) = total after every step.
func TestBookingLifecycleScenario(t *testing.T) {
	ev := &model.Event{
		ID:             1,
		OrganizerID:    2,
		Title:          "Street Food Fair",
		PriceCents:     1500,
		TotalSeats:     10,
		AvailableSeats: 10,
		Status:         model.EventApproved,
		IsActive:       true,
	}
	ledger := newFakeLedger(ev)
	store := newFakeStore()
	svc := service.NewBookingService(ledger, store, nil)
	ctx := context.Background()

	invariant := func() {
		t.Helper()
		assert.Equal(t, ev.TotalSeats, ev.AvailableSeats+store.activeSeats())
	}

	b, err := svc.Create(ctx, 11, 1, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, b.Status)
	assert.Equal(t, int64(4500), b.TotalPriceCents)
	assert.Equal(t, 7, ev.AvailableSeats)
	invariant()

	// Nine more seats do not fit into the seven remaining.
	_, err = svc.Create(ctx, 12, 1, 9, nil)
	assert.ErrorIs(t, err, repository.ErrInsufficientSeats)
	invariant()

	cancelled, err := svc.Cancel(ctx, b.ID, 11)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, cancelled.Status)
	assert.Equal(t, 10, ev.AvailableSeats)
	invariant()

	// Second cancel: same terminal state, no double credit.
	again, err := svc.Cancel(ctx, b.ID, 11)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, again.Status)
	assert.Equal(t, 10, ev.AvailableSeats)
	invariant()
}

// TestConcurrentBookingsNeverOverbook fires more reservations than
// seats exist and checks that at most the capacity is handed out.
func TestConcurrentBookingsNeverOverbook(t *testing.T) {
	ev := &model.Event{
		ID:             1,
		PriceCents:     1000,
		TotalSeats:     5,
		AvailableSeats: 5,
		Status:         model.EventApproved,
		IsActive:       true,
	}
	ledger := newFakeLedger(ev)
	store := newFakeStore()
	svc := service.NewBookingService(ledger, store, nil)

	var wg sync.WaitGroup
	successes := make(chan int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(user uint64) {
			defer wg.Done()
			if _, err := svc.Create(context.Background(), user, 1, 2, nil); err == nil {
				successes <- 2
			}
		}(uint64(100 + i))
	}
	wg.Wait()
	close(successes)

	granted := 0
	for n := range successes {
		granted += n
	}
	assert.LessOrEqual(t, granted, 5)
	assert.Equal(t, ev.TotalSeats, ev.AvailableSeats+store.activeSeats())
}
