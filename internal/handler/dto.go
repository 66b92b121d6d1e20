package handler

import (
	"strings"
	"time"

	"github.com/eventhive/event-booking-api/internal/model"
	"github.com/eventhive/event-booking-api/internal/repository"
)

// Responses expose enum values lower-cased; the database stores them
// upper-cased in the usual SQL convention.

type eventResponse struct {
	ID             uint64     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Date           time.Time  `json:"date"`
	Location       string     `json:"location"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	Price          float64    `json:"price"`
	TotalSeats     int        `json:"total_seats"`
	AvailableSeats int        `json:"available_seats"`
	Status         string     `json:"status"`
	AdminNote      string     `json:"admin_note,omitempty"`
	ReviewedBy     *uint64    `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	OrganizerID    uint64     `json:"organizer_id"`
	OrganizerName  string     `json:"organizer_name"`
	IsFeatured     bool       `json:"is_featured"`
	IsActive       bool       `json:"is_active"`
	Rating         float64    `json:"rating"`
	ReviewCount    int        `json:"review_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

func newEventResponse(e model.Event) eventResponse {
	return eventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		Category:       e.Category,
		Date:           e.StartsAt,
		Location:       e.Location,
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		Price:          e.Price(),
		TotalSeats:     e.TotalSeats,
		AvailableSeats: e.AvailableSeats,
		Status:         strings.ToLower(e.Status),
		AdminNote:      e.AdminNote,
		ReviewedBy:     e.ReviewedBy,
		ReviewedAt:     e.ReviewedAt,
		OrganizerID:    e.OrganizerID,
		OrganizerName:  e.OrganizerName,
		IsFeatured:     e.IsFeatured,
		IsActive:       e.IsActive,
		Rating:         e.Rating,
		ReviewCount:    e.ReviewCount,
		CreatedAt:      e.CreatedAt,
	}
}

func newEventResponses(events []model.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, newEventResponse(e))
	}
	return out
}

type bookingResponse struct {
	ID         uint64    `json:"id"`
	Reference  string    `json:"reference"`
	UserID     uint64    `json:"user_id"`
	EventID    uint64    `json:"event_id"`
	Seats      int       `json:"seats"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	PaymentID  *string   `json:"payment_id,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func newBookingResponse(b model.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		Reference:  b.Reference,
		UserID:     b.UserID,
		EventID:    b.EventID,
		Seats:      b.Seats,
		TotalPrice: b.TotalPrice(),
		Status:     strings.ToLower(b.Status),
		PaymentID:  b.PaymentID,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
	}
}

func newBookingResponses(bookings []model.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, newBookingResponse(b))
	}
	return out
}

type userResponse struct {
	ID         uint64    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	Phone      *string   `json:"phone,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func newUserResponse(u model.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       strings.ToLower(u.Role),
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		Phone:      u.Phone,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
	}
}

func newUserResponses(users []model.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}

type wishlistResponse struct {
	ID      uint64        `json:"id"`
	EventID uint64        `json:"event_id"`
	AddedAt time.Time     `json:"added_at"`
	Event   eventResponse `json:"event"`
}

func newWishlistResponses(items []repository.WishlistItem) []wishlistResponse {
	out := make([]wishlistResponse, 0, len(items))
	for _, it := range items {
		out = append(out, wishlistResponse{
			ID:      it.Entry.ID,
			EventID: it.Entry.EventID,
			AddedAt: it.Entry.CreatedAt,
			Event:   newEventResponse(it.Event),
		})
	}
	return out
}

// pagedResponse wraps a listing with its pagination metadata.
type pagedResponse struct {
	Items    any   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
