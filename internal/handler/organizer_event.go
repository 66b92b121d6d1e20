package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventhive/event-booking-api/internal/middleware"
	"github.com/eventhive/event-booking-api/internal/model"
	"github.com/eventhive/event-booking-api/internal/repository"
)

// OrganizerEventHandler covers the organizer-facing event CRUD. Every
// route behind it is guarded by RequireTier(RoleOrganizer), so the
// caller is at least an organizer; ownership is still checked per
// event in the repository.
type OrganizerEventHandler struct {
	Events *repository.EventRepo
	Users  *repository.UserRepo
}

func NewOrganizerEventHandler(events *repository.EventRepo, users *repository.UserRepo) *OrganizerEventHandler {
	return &OrganizerEventHandler{Events: events, Users: users}
}

type eventInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Price       float64  `json:"price"`
	TotalSeats  int      `json:"total_seats"`
}

// validate normalizes the input and returns a user-facing message when
// a field is unacceptable. The parsed start time is returned so both
// Create and Update share one pass.
func (in *eventInput) validate() (time.Time, string) {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))

	if in.Title == "" {
		return time.Time{}, "title is required"
	}
	if in.Location == "" {
		return time.Time{}, "location is required"
	}
	if !model.EventCategories[in.Category] {
		return time.Time{}, "unknown category"
	}
	if in.Price < 0 {
		return time.Time{}, "price must not be negative"
	}
	if in.TotalSeats < 1 {
		return time.Time{}, "total_seats must be at least 1"
	}
	startsAt, err := time.Parse(time.RFC3339, in.Date)
	if err != nil {
		return time.Time{}, "date must be RFC3339"
	}
	return startsAt, ""
}

// Create handles POST /v1/events. New events always start
// out pending review, regardless of who submits them.
func (h *OrganizerEventHandler) Create(c echo.Context) error {
	var in eventInput
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	startsAt, msg := in.validate()
	if msg != "" {
		return respondErr(c, http.StatusBadRequest, msg)
	}

	callerID, _ := middleware.CallerID(c)
	ctx := c.Request().Context()

	organizer, err := h.Users.GetByID(ctx, callerID)
	if err != nil {
		return respondDomainErr(c, err)
	}

	e := model.Event{
		OrganizerID:   callerID,
		OrganizerName: organizer.Name,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		StartsAt:      startsAt.UTC(),
		Location:      in.Location,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		PriceCents:    toCents(in.Price),
		TotalSeats:    in.TotalSeats,
	}
	if err := h.Events.Create(ctx, &e); err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusCreated, "event submitted for review", newEventResponse(e))
}

// Update handles PUT /v1/events/:id. Editing an event sends
// it back through moderation; capacity cannot change once bookings
// exist.
func (h *OrganizerEventHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid event id")
	}
	var in eventInput
	if err := c.Bind(&in); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	startsAt, msg := in.validate()
	if msg != "" {
		return respondErr(c, http.StatusBadRequest, msg)
	}

	callerID, _ := middleware.CallerID(c)
	upd := repository.EventUpdate{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		StartsAt:    startsAt.UTC(),
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		PriceCents:  toCents(in.Price),
		TotalSeats:  in.TotalSeats,
	}
	updated, err := h.Events.UpdateByOwner(c.Request().Context(), id, callerID, upd)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "event updated, pending review", newEventResponse(updated))
}

// Delete handles DELETE /v1/events/:id. Deletion is refused
// while the event still has live bookings.
func (h *OrganizerEventHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid event id")
	}
	callerID, _ := middleware.CallerID(c)
	isAdmin := middleware.CallerRole(c) == model.RoleAdmin
	if err := h.Events.Delete(c.Request().Context(), id, callerID, isAdmin); err != nil {
		return respondDomainErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MyEvents handles GET /v1/events/organizer/my-events, listing the caller's own
// events in every status.
func (h *OrganizerEventHandler) MyEvents(c echo.Context) error {
	callerID, _ := middleware.CallerID(c)
	events, err := h.Events.ListByOrganizer(c.Request().Context(), callerID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "my events", newEventResponses(events))
}

// toCents converts a decimal price to cents, rounding half up.
func toCents(price float64) int64 {
	return int64(price*100 + 0.5)
}
