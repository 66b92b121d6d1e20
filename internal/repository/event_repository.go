package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eventhive/event-booking-api/internal/model"
)

// EventRepo provides CRUD, moderation and seat-ledger operations for
// events. All seat-counter mutations are single conditional UPDATE
// statements so that concurrent bookings serialize inside MySQL; the
// repository never performs a read-then-write split on the counters.
type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle for callers that need to compose
// transactions across repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, organizer_id, organizer_name, title, description, category,
	starts_at, location, latitude, longitude, price_cents, total_seats, available_seats,
	status, admin_note, reviewed_by, reviewed_at, is_featured, is_active,
	rating, review_count, created_at, updated_at`

// prefixedEventColumns qualifies the event column list with a table
// alias for queries that join events against another table.
func prefixedEventColumns(alias string) string {
	cols := strings.Split(eventColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

// rowScanner lets scanEvent work for both *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func scanEvent(row rowScanner) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.OrganizerID, &e.OrganizerName, &e.Title, &e.Description,
		&e.Category, &e.StartsAt, &e.Location, &e.Latitude, &e.Longitude,
		&e.PriceCents, &e.TotalSeats, &e.AvailableSeats, &e.Status, &e.AdminNote,
		&e.ReviewedBy, &e.ReviewedAt, &e.IsFeatured, &e.IsActive,
		&e.Rating, &e.ReviewCount, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// Create inserts a new event in PENDING state with a full seat
// balance. The organizer display name is cached on the row so
// listings do not join users.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	e.Status = model.EventPending
	e.AvailableSeats = e.TotalSeats
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events (organizer_id, organizer_name, title, description, category,
			starts_at, location, latitude, longitude, price_cents, total_seats, available_seats, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.OrganizerID, e.OrganizerName, e.Title, e.Description, e.Category,
		e.StartsAt, e.Location, e.Latitude, e.Longitude, e.PriceCents,
		e.TotalSeats, e.AvailableSeats, e.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID fetches an event regardless of moderation status. Intended
// for internal use; public reads go through GetVisible.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	return scanEvent(r.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=? LIMIT 1", id))
}

// GetVisible fetches an event applying the direct-fetch visibility
// policy: anonymous and plain-user callers only see approved, active
// events; the owning organizer and admins see any status. Invisible
// events report ErrEventNotFound rather than ErrForbidden so their
// existence is not leaked.
func (r *EventRepo) GetVisible(ctx context.Context, id, callerID uint64, callerRole string) (model.Event, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Event{}, err
	}
	if e.Status == model.EventApproved && e.IsActive {
		return e, nil
	}
	if callerRole == model.RoleAdmin || (callerID != 0 && callerID == e.OrganizerID) {
		return e, nil
	}
	return model.Event{}, ErrEventNotFound
}

// EventUpdate carries the organizer-editable fields of an event.
type EventUpdate struct {
	Title       string
	Description string
	Category    string
	StartsAt    time.Time
	Location    string
	Latitude    *float64
	Longitude   *float64
	PriceCents  int64
	TotalSeats  int
}

// UpdateByOwner applies an organizer edit to their own event. Any
// edit resets the moderation status to PENDING and clears the admin
// note and reviewer stamps (re-submission semantics). Total seats are
// immutable once any booking exists or any seats are reserved; while
// the ledger is untouched, a seat change resets the available balance
// too. The check-and-write runs in one transaction so a concurrent
// first booking cannot slip between the checks and the capacity
// change.
func (r *EventRepo) UpdateByOwner(ctx context.Context, id, ownerID uint64, upd EventUpdate) (model.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Event{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var curOwner uint64
	var curTotal, curAvail int
	err = tx.QueryRowContext(ctx,
		"SELECT organizer_id, total_seats, available_seats FROM events WHERE id=? FOR UPDATE", id).
		Scan(&curOwner, &curTotal, &curAvail)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, err
	}
	if curOwner != ownerID {
		return model.Event{}, ErrForbidden
	}

	var bookings int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE event_id=?", id).Scan(&bookings); err != nil {
		return model.Event{}, err
	}

	if upd.TotalSeats != curTotal {
		// Capacity may only change while the seat ledger is untouched.
		// The booking count alone cannot see a reservation whose seat
		// decrement committed before its booking row landed, so a
		// drained balance blocks the change too.
		if bookings > 0 || curAvail != curTotal {
			return model.Event{}, ErrHasBookings
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE events SET total_seats=?, available_seats=? WHERE id=?`,
			upd.TotalSeats, upd.TotalSeats, id)
		if err != nil {
			return model.Event{}, err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE events SET title=?, description=?, category=?, starts_at=?, location=?,
			latitude=?, longitude=?, price_cents=?,
			status=?, admin_note='', reviewed_by=NULL, reviewed_at=NULL
		 WHERE id=?`,
		upd.Title, upd.Description, upd.Category, upd.StartsAt, upd.Location,
		upd.Latitude, upd.Longitude, upd.PriceCents,
		model.EventPending, id)
	if err != nil {
		return model.Event{}, err
	}

	e, err := scanEvent(tx.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=?", id))
	if err != nil {
		return model.Event{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Event{}, err
	}
	committed = true
	return e, nil
}

// Delete removes an event. Only the owning organizer or an admin may
// delete, and deletion is blocked while the event still has
// non-cancelled bookings. Wishlist entries pointing at the deleted
// event are left in place and filtered out at read time.
func (r *EventRepo) Delete(ctx context.Context, id, callerID uint64, isAdmin bool) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT organizer_id FROM events WHERE id=?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}
	if !isAdmin && owner != callerID {
		return ErrForbidden
	}

	var active int64
	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE event_id=? AND status<>?",
		id, model.BookingCancelled).Scan(&active)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrHasBookings
	}

	_, err = r.db.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	return err
}

// Approve transitions a PENDING or REJECTED event to APPROVED,
// clearing the admin note and stamping the reviewer. Approving from
// any other state is ErrBadTransition.
func (r *EventRepo) Approve(ctx context.Context, id, adminID uint64) (model.Event, error) {
	return r.moderate(ctx, id, adminID, model.EventApproved, "",
		[]string{model.EventPending, model.EventRejected})
}

// Reject transitions a PENDING or APPROVED event to REJECTED storing
// the reason as the admin note and stamping the reviewer. Reason
// validation (non-empty, minimum length) happens at the handler.
func (r *EventRepo) Reject(ctx context.Context, id, adminID uint64, reason string) (model.Event, error) {
	return r.moderate(ctx, id, adminID, model.EventRejected, reason,
		[]string{model.EventPending, model.EventApproved})
}

func (r *EventRepo) moderate(ctx context.Context, id, adminID uint64, to, note string, from []string) (model.Event, error) {
	placeholders := strings.TrimRight(strings.Repeat("?,", len(from)), ",")
	args := []any{to, note, adminID, id}
	for _, s := range from {
		args = append(args, s)
	}
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE events SET status=?, admin_note=?, reviewed_by=?, reviewed_at=NOW()
			WHERE id=? AND status IN (%s)`, placeholders), args...)
	if err != nil {
		return model.Event{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Event{}, err
	}
	if n == 0 {
		// Either the event is missing or its current status does not
		// permit this transition.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Event{}, err
		}
		return model.Event{}, ErrBadTransition
	}
	return r.GetByID(ctx, id)
}

// ReserveSeats atomically takes seats from an event's available
// balance and returns the post-reservation event row, whose price is
// the snapshot for the booking being created. The decrement only
// succeeds when the event is approved, active and has enough seats;
// with zero rows affected the failure is diagnosed afterwards.
// Events invisible to the public (pending, rejected, inactive,
// missing) all report ErrEventNotFound.
func (r *EventRepo) ReserveSeats(ctx context.Context, eventID uint64, seats int) (model.Event, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET available_seats = available_seats - ?
		 WHERE id=? AND status=? AND is_active=1 AND available_seats >= ?`,
		seats, eventID, model.EventApproved, seats)
	if err != nil {
		return model.Event{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Event{}, err
	}
	if n == 0 {
		e, err := r.GetByID(ctx, eventID)
		if err != nil {
			return model.Event{}, err
		}
		if e.Status != model.EventApproved || !e.IsActive {
			return model.Event{}, ErrEventNotFound
		}
		return model.Event{}, ErrInsufficientSeats
	}
	return r.GetByID(ctx, eventID)
}

// ReleaseSeats atomically credits seats back to an event, clamped so
// the balance never exceeds total capacity.
func (r *EventRepo) ReleaseSeats(ctx context.Context, eventID uint64, seats int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET available_seats = LEAST(total_seats, available_seats + ?) WHERE id=?`,
		seats, eventID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Event deleted meanwhile; nothing to credit. Not an error for
		// the cancellation path.
		return nil
	}
	return nil
}

// ListByOrganizer returns all events owned by an organizer, any
// status, newest first.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]model.Event, error) {
	return r.list(ctx,
		"SELECT "+eventColumns+" FROM events WHERE organizer_id=? ORDER BY created_at DESC, id DESC",
		organizerID)
}

// ListAll returns every event for the admin moderation view, with an
// optional status filter.
func (r *EventRepo) ListAll(ctx context.Context, status string) ([]model.Event, error) {
	if status != "" {
		return r.list(ctx,
			"SELECT "+eventColumns+" FROM events WHERE status=? ORDER BY created_at DESC, id DESC",
			status)
	}
	return r.list(ctx,
		"SELECT "+eventColumns+" FROM events ORDER BY created_at DESC, id DESC")
}

// ListFeatured returns up to limit approved, active, featured events.
func (r *EventRepo) ListFeatured(ctx context.Context, limit int) ([]model.Event, error) {
	return r.list(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE status=? AND is_active=1 AND is_featured=1
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		model.EventApproved, limit)
}

// Count returns the total number of events, for the admin dashboard.
func (r *EventRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
	return n, err
}

func (r *EventRepo) list(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Event, 0, 16)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
