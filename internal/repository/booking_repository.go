package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventhive/event-booking-api/internal/model"
	"github.com/eventhive/event-booking-api/internal/utils"
)

// BookingRepo provides persistence for bookings. Reference uniqueness
// is enforced by the database; the insert path regenerates on
// collision instead of overwriting.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, reference, user_id, event_id, seats, total_price_cents,
	status, payment_id, notes, created_at, updated_at`

// referenceAttempts bounds reference regeneration on duplicate-key
// collisions before the insert fails closed.
const referenceAttempts = 5

func scanBooking(row rowScanner) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.EventID, &b.Seats,
		&b.TotalPriceCents, &b.Status, &b.PaymentID, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// Insert persists a new booking, generating its unique reference.
// On a duplicate-reference collision the reference is regenerated and
// the insert retried; after referenceAttempts collisions the insert
// fails closed with ErrDuplicateReference.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) error {
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		b.Reference = utils.NewBookingReference()
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO bookings (reference, user_id, event_id, seats, total_price_cents, status, payment_id, notes)
			 VALUES (?,?,?,?,?,?,?,?)`,
			b.Reference, b.UserID, b.EventID, b.Seats, b.TotalPriceCents, b.Status, b.PaymentID, b.Notes)
		if err != nil {
			if isDuplicateKey(err) {
				continue
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		b.ID = uint64(id)
		return nil
	}
	return ErrDuplicateReference
}

// GetByID fetches a booking by id.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id))
}

// MarkCancelled flips a booking to CANCELLED. The conditional WHERE
// makes cancellation a compare-and-set: the first caller wins, any
// racing or repeated cancellation sees zero rows affected and reports
// false, so seats are only released once. The booking must exist;
// callers check that first via GetByID.
func (r *BookingRepo) MarkCancelled(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND status<>?",
		model.BookingCancelled, id, model.BookingCancelled)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Reinstate restores a booking's pre-cancellation status. Used only
// as the compensating write when the paired seat release fails after
// MarkCancelled succeeded; it is not reachable from any endpoint.
func (r *BookingRepo) Reinstate(ctx context.Context, id uint64, status string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND status=?",
		status, id, model.BookingCancelled)
	return err
}

// ListForUser returns a user's own bookings, newest first.
func (r *BookingRepo) ListForUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id=? ORDER BY created_at DESC, id DESC",
		userID)
}

// ListForEvent returns all bookings against one event, oldest first,
// which doubles as the event's ordered list of booking references.
func (r *BookingRepo) ListForEvent(ctx context.Context, eventID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE event_id=? ORDER BY created_at ASC, id ASC",
		eventID)
}

// ListForOrganizer returns bookings across every event owned by the
// given organizer, newest first.
func (r *BookingRepo) ListForOrganizer(ctx context.Context, organizerID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT b.id, b.reference, b.user_id, b.event_id, b.seats, b.total_price_cents,
			b.status, b.payment_id, b.notes, b.created_at, b.updated_at
		 FROM bookings b
		 JOIN events e ON e.id = b.event_id
		 WHERE e.organizer_id = ?
		 ORDER BY b.created_at DESC, b.id DESC`,
		organizerID)
}

// OrganizerOwns reports whether the given organizer owns the event a
// booking points at. Used for the get-by-id visibility check.
func (r *BookingRepo) OrganizerOwns(ctx context.Context, bookingID, organizerID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM bookings b JOIN events e ON e.id = b.event_id
		 WHERE b.id=? AND e.organizer_id=?`, bookingID, organizerID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Stats aggregates booking counts and confirmed revenue for the
// admin dashboard. Revenue sums the stored price snapshots, so later
// event price changes never move historical revenue.
func (r *BookingRepo) Stats(ctx context.Context) (count int64, revenueCents int64, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN status=? THEN total_price_cents ELSE 0 END), 0)
		 FROM bookings`, model.BookingConfirmed).Scan(&count, &revenueCents)
	return count, revenueCents, err
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0, 16)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
