package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventhive/event-booking-api/internal/model"
)

// WishlistRepo provides persistence for per-user wishlist entries.
// The (user_id, event_id) unique index makes add idempotent: a
// duplicate insert resolves to the existing row instead of erroring.
type WishlistRepo struct{ db *sql.DB }

func NewWishlistRepo(db *sql.DB) *WishlistRepo { return &WishlistRepo{db: db} }

// WishlistItem is a wishlist entry joined with its event for the
// listing endpoint. Entries whose event was deleted since are simply
// absent (inner join), never surfaced as errors.
type WishlistItem struct {
	Entry model.WishlistEntry
	Event model.Event
}

// Add creates a wishlist entry for the pair, or returns the existing
// one unchanged when the pair is already saved.
func (r *WishlistRepo) Add(ctx context.Context, userID, eventID uint64) (model.WishlistEntry, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO wishlist_entries (user_id, event_id) VALUES (?,?)",
		userID, eventID)
	if err != nil {
		if isDuplicateKey(err) {
			return r.getByPair(ctx, userID, eventID)
		}
		return model.WishlistEntry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.WishlistEntry{}, err
	}
	return r.getByID(ctx, uint64(id))
}

// Remove deletes an entry. The id parameter may be either the entry's
// own id or the event's id — callers of the mobile API often only
// know one of the two. Resolution tries the entry id first, then the
// event id scoped to the caller. Ownership is enforced on the entry-id
// path; the event-id path is inherently scoped to the caller.
func (r *WishlistRepo) Remove(ctx context.Context, id, userID uint64) error {
	entry, err := r.getByID(ctx, id)
	if err == nil {
		if entry.UserID != userID {
			// Entry id belongs to someone else; fall back to treating the
			// id as an event id for this caller before rejecting.
			if byEvent, evErr := r.getByPair(ctx, userID, id); evErr == nil {
				entry = byEvent
			} else {
				return ErrForbidden
			}
		}
	} else if errors.Is(err, ErrWishlistNotFound) {
		entry, err = r.getByPair(ctx, userID, id)
		if err != nil {
			return err
		}
	} else {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		"DELETE FROM wishlist_entries WHERE id=? AND user_id=?", entry.ID, userID)
	return err
}

// ListForUser returns the caller's wishlist, newest first, with each
// entry's event attached. The inner join silently drops entries whose
// event no longer exists.
func (r *WishlistRepo) ListForUser(ctx context.Context, userID uint64) ([]WishlistItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT w.id, w.user_id, w.event_id, w.created_at, `+prefixedEventColumns("e")+`
		 FROM wishlist_entries w
		 JOIN events e ON e.id = w.event_id
		 WHERE w.user_id = ?
		 ORDER BY w.created_at DESC, w.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]WishlistItem, 0, 16)
	for rows.Next() {
		var it WishlistItem
		e := &it.Event
		if err := rows.Scan(&it.Entry.ID, &it.Entry.UserID, &it.Entry.EventID, &it.Entry.CreatedAt,
			&e.ID, &e.OrganizerID, &e.OrganizerName, &e.Title, &e.Description,
			&e.Category, &e.StartsAt, &e.Location, &e.Latitude, &e.Longitude,
			&e.PriceCents, &e.TotalSeats, &e.AvailableSeats, &e.Status, &e.AdminNote,
			&e.ReviewedBy, &e.ReviewedAt, &e.IsFeatured, &e.IsActive,
			&e.Rating, &e.ReviewCount, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *WishlistRepo) getByID(ctx context.Context, id uint64) (model.WishlistEntry, error) {
	var w model.WishlistEntry
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, event_id, created_at FROM wishlist_entries WHERE id=? LIMIT 1",
		id).Scan(&w.ID, &w.UserID, &w.EventID, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WishlistEntry{}, ErrWishlistNotFound
	}
	return w, err
}

func (r *WishlistRepo) getByPair(ctx context.Context, userID, eventID uint64) (model.WishlistEntry, error) {
	var w model.WishlistEntry
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, event_id, created_at FROM wishlist_entries WHERE user_id=? AND event_id=? LIMIT 1",
		userID, eventID).Scan(&w.ID, &w.UserID, &w.EventID, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WishlistEntry{}, ErrWishlistNotFound
	}
	return w, err
}
