package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/event-booking-api/internal/model"
)

func newMockRepo(t *testing.T) (*EventRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEventRepo(db), mock
}

// eventRows builds a single-row result set in the column order the
// repository scans.
func eventRows(e model.Event) *sqlmock.Rows {
	var lat, lng, reviewedBy, reviewedAt any
	if e.Latitude != nil {
		lat = *e.Latitude
	}
	if e.Longitude != nil {
		lng = *e.Longitude
	}
	if e.ReviewedBy != nil {
		reviewedBy = int64(*e.ReviewedBy)
	}
	if e.ReviewedAt != nil {
		reviewedAt = *e.ReviewedAt
	}
	return sqlmock.NewRows([]string{
		"id", "organizer_id", "organizer_name", "title", "description", "category",
		"starts_at", "location", "latitude", "longitude", "price_cents",
		"total_seats", "available_seats", "status", "admin_note",
		"reviewed_by", "reviewed_at", "is_featured", "is_active",
		"rating", "review_count", "created_at", "updated_at",
	}).AddRow(e.ID, e.OrganizerID, e.OrganizerName, e.Title, e.Description, e.Category,
		e.StartsAt, e.Location, lat, lng, e.PriceCents,
		e.TotalSeats, e.AvailableSeats, e.Status, e.AdminNote,
		reviewedBy, reviewedAt, e.IsFeatured, e.IsActive,
		e.Rating, e.ReviewCount, e.CreatedAt, e.UpdatedAt)
}

var (
	moderateSQL = regexp.QuoteMeta(
		`UPDATE events SET status=?, admin_note=?, reviewed_by=?, reviewed_at=NOW() WHERE id=? AND status IN (?,?)`)
	getByIDSQL = regexp.QuoteMeta(`FROM events WHERE id=? LIMIT 1`)
	lockRowSQL = regexp.QuoteMeta(
		`SELECT organizer_id, total_seats, available_seats FROM events WHERE id=? FOR UPDATE`)
	countBookingsSQL = regexp.QuoteMeta(`SELECT COUNT(*) FROM bookings WHERE event_id=?`)
)

func TestApproveFromRejectedClearsAdminNote(t *testing.T) {
	repo, mock := newMockRepo(t)
	adminID := uint64(3)
	now := time.Now()

	mock.ExpectExec(moderateSQL).
		WithArgs(model.EventApproved, "", adminID, uint64(10),
			model.EventPending, model.EventRejected).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(getByIDSQL).WithArgs(uint64(10)).
		WillReturnRows(eventRows(model.Event{
			ID: 10, OrganizerID: 2, Status: model.EventApproved,
			AdminNote: "", ReviewedBy: &adminID, ReviewedAt: &now,
			TotalSeats: 50, AvailableSeats: 50, IsActive: true,
		}))

	e, err := repo.Approve(context.Background(), 10, adminID)
	require.NoError(t, err)
	assert.Equal(t, model.EventApproved, e.Status)
	assert.Empty(t, e.AdminNote)
	require.NotNil(t, e.ReviewedBy)
	assert.Equal(t, adminID, *e.ReviewedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAlreadyApprovedIsBadTransition(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(moderateSQL).
		WithArgs(model.EventApproved, "", uint64(3), uint64(10),
			model.EventPending, model.EventRejected).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(getByIDSQL).WithArgs(uint64(10)).
		WillReturnRows(eventRows(model.Event{
			ID: 10, Status: model.EventApproved, IsActive: true,
		}))

	_, err := repo.Approve(context.Background(), 10, 3)
	assert.ErrorIs(t, err, ErrBadTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveMissingEvent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(moderateSQL).
		WithArgs(model.EventApproved, "", uint64(3), uint64(999),
			model.EventPending, model.EventRejected).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(getByIDSQL).WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Approve(context.Background(), 999, 3)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectStoresReason(t *testing.T) {
	repo, mock := newMockRepo(t)
	adminID := uint64(3)

	mock.ExpectExec(moderateSQL).
		WithArgs(model.EventRejected, "duplicate listing", adminID, uint64(10),
			model.EventPending, model.EventApproved).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(getByIDSQL).WithArgs(uint64(10)).
		WillReturnRows(eventRows(model.Event{
			ID: 10, Status: model.EventRejected,
			AdminNote: "duplicate listing", ReviewedBy: &adminID,
		}))

	e, err := repo.Reject(context.Background(), 10, adminID, "duplicate listing")
	require.NoError(t, err)
	assert.Equal(t, model.EventRejected, e.Status)
	assert.Equal(t, "duplicate listing", e.AdminNote)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A capacity edit must not commit while seats are checked out of the
// ledger, even before the corresponding booking row lands: available
// below total with zero bookings means a reservation is in flight.
func TestCapacityEditBlockedWhileSeatsReserved(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockRowSQL).WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"organizer_id", "total_seats", "available_seats"}).
			AddRow(7, 10, 7))
	mock.ExpectQuery(countBookingsSQL).WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := repo.UpdateByOwner(context.Background(), 10, 7, EventUpdate{TotalSeats: 20})
	assert.ErrorIs(t, err, ErrHasBookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCapacityEditBlockedByExistingBookings(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockRowSQL).WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"organizer_id", "total_seats", "available_seats"}).
			AddRow(7, 10, 10))
	mock.ExpectQuery(countBookingsSQL).WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	_, err := repo.UpdateByOwner(context.Background(), 10, 7, EventUpdate{TotalSeats: 20})
	assert.ErrorIs(t, err, ErrHasBookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByOwnerForbiddenForNonOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockRowSQL).WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"organizer_id", "total_seats", "available_seats"}).
			AddRow(7, 10, 10))
	mock.ExpectRollback()

	_, err := repo.UpdateByOwner(context.Background(), 10, 8, EventUpdate{TotalSeats: 10})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSeatsInsufficient(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE events SET available_seats = available_seats - ?`)).
		WithArgs(5, uint64(10), model.EventApproved, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(getByIDSQL).WithArgs(uint64(10)).
		WillReturnRows(eventRows(model.Event{
			ID: 10, Status: model.EventApproved, IsActive: true,
			TotalSeats: 10, AvailableSeats: 2,
		}))

	_, err := repo.ReserveSeats(context.Background(), 10, 5)
	assert.ErrorIs(t, err, ErrInsufficientSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	cases := []struct {
		term string
		want string
	}{
		{"jazz", "%jazz%"},
		{"  Jazz Night ", "%jazz night%"},
		{"%", `%\%%`},
		{"_", `%\_%`},
		{`50% off`, `%50\% off%`},
		{`a\b`, `%a\\b%`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, likePattern(tc.term), "term %q", tc.term)
	}
}
