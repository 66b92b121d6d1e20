package model

import "time"

// Moderation states of an event. Every event starts PENDING and can
// only be moved to APPROVED or REJECTED by an admin. Any organizer
// edit puts the event back to PENDING (re-submission semantics) and
// clears the admin note and reviewer stamps.
const (
	EventPending  = "PENDING"
	EventApproved = "APPROVED"
	EventRejected = "REJECTED"
)

// Categories form a closed enumeration; events outside this set are
// rejected at validation time.
var EventCategories = map[string]bool{
	"music":    true,
	"sports":   true,
	"arts":     true,
	"food":     true,
	"business": true,
	"tech":     true,
	"other":    true,
}

// Event represents a bookable happening as stored in the `events`
// table. Seat inventory lives in two counters on the row itself:
// TotalSeats is fixed once bookings exist, AvailableSeats is the
// mutable balance. The invariant maintained by the seat ledger is
//
//	available_seats + SUM(seats over non-cancelled bookings) = total_seats
//
// and all mutations of AvailableSeats go through conditional UPDATE
// statements so concurrent bookings serialize in the database.
//
// Rating and ReviewCount are display-only aggregates maintained by a
// review collaborator outside this service; they are never computed
// here.
//
// Fields:
//  ID             – primary key identifier.
//  OrganizerID    – user who created and owns the event.
//  OrganizerName  – cached display name of the organizer.
//  Title          – event title.
//  Description    – long-form description.
//  Category       – one of EventCategories.
//  StartsAt       – when the event takes place.
//  Location       – free-text venue/location.
//  Latitude       – optional coordinate.
//  Longitude      – optional coordinate.
//  PriceCents     – price per seat in cents (>= 0).
//  TotalSeats     – seat capacity (>= 1, immutable once bookings exist).
//  AvailableSeats – seats still bookable (0 <= n <= TotalSeats).
//  Status         – moderation state (PENDING, APPROVED, REJECTED).
//  AdminNote      – rejection reason, cleared on approval or resubmission.
//  ReviewedBy     – admin who last moderated the event (nullable).
//  ReviewedAt     – when the event was last moderated (nullable).
//  IsFeatured     – whether the event appears in the featured strip.
//  IsActive       – soft visibility flag.
//  Rating         – display-only average rating.
//  ReviewCount    – display-only review count.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type Event struct {
	ID             uint64     // events.id
	OrganizerID    uint64     // events.organizer_id
	OrganizerName  string     // events.organizer_name
	Title          string     // events.title
	Description    string     // events.description
	Category       string     // events.category
	StartsAt       time.Time  // events.starts_at
	Location       string     // events.location
	Latitude       *float64   // events.latitude (nullable)
	Longitude      *float64   // events.longitude (nullable)
	PriceCents     int64      // events.price_cents
	TotalSeats     int        // events.total_seats
	AvailableSeats int        // events.available_seats
	Status         string     // events.status
	AdminNote      string     // events.admin_note
	ReviewedBy     *uint64    // events.reviewed_by (nullable)
	ReviewedAt     *time.Time // events.reviewed_at (nullable)
	IsFeatured     bool       // events.is_featured
	IsActive       bool       // events.is_active
	Rating         float64    // events.rating
	ReviewCount    int        // events.review_count
	CreatedAt      time.Time  // events.created_at
	UpdatedAt      time.Time  // events.updated_at
}

// Price returns the per-seat price in currency units for display.
func (e *Event) Price() float64 {
	return float64(e.PriceCents) / 100.0
}
