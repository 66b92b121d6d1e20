package repository

import (
	"context"
	"strings"

	"github.com/eventhive/event-booking-api/internal/model"
)

// PublicEventQuery defines filters and pagination for the public
// event listing. Only approved, active events are ever returned.
type PublicEventQuery struct {
	Category string // optional closed-enum filter
	Sort     string // "price" | "rating" | "recency" (default)
	Page     int
	PageSize int
}

// ListPublic returns one page of approved, active events plus the
// total match count for pagination headers.
func (r *EventRepo) ListPublic(ctx context.Context, q PublicEventQuery) ([]model.Event, int64, error) {
	where := []string{"status = ?", "is_active = 1"}
	args := []any{model.EventApproved}

	if q.Category != "" {
		where = append(where, "category = ?")
		args = append(args, strings.ToLower(q.Category))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "created_at DESC, id DESC" // recency
	switch strings.ToLower(q.Sort) {
	case "price":
		order = "price_cents ASC, id DESC"
	case "rating":
		order = "rating DESC, review_count DESC, id DESC"
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	argsData := append(append([]any{}, args...), limit, offset)
	events, err := r.list(ctx,
		"SELECT "+eventColumns+" FROM events WHERE "+cond+" ORDER BY "+order+" LIMIT ? OFFSET ?",
		argsData...)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// likeEscaper neutralises MySQL LIKE wildcards so a search term is
// matched literally. MySQL's default escape character is backslash.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps a search term in a contains-style LIKE pattern
// with wildcards inside the term escaped.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// Search matches approved, active events by case-insensitive
// substring over title, description, location and category.
func (r *EventRepo) Search(ctx context.Context, term string, limit int) ([]model.Event, error) {
	pattern := likePattern(term)
	return r.list(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE status = ? AND is_active = 1
		   AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?
		     OR LOWER(location) LIKE ? OR LOWER(category) LIKE ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		model.EventApproved, pattern, pattern, pattern, pattern, limit)
}
