package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventhive/event-booking-api/internal/middleware"
	"github.com/eventhive/event-booking-api/internal/model"
	"github.com/eventhive/event-booking-api/internal/repository"
	"github.com/eventhive/event-booking-api/internal/service"
)

// BookingHandler fronts the booking lifecycle. Writes go through
// BookingService so seat accounting and compensation live in one
// place; reads hit the repository directly.
type BookingHandler struct {
	Svc      *service.BookingService
	Bookings *repository.BookingRepo
	Events   *repository.EventRepo
}

func NewBookingHandler(svc *service.BookingService, bookings *repository.BookingRepo, events *repository.EventRepo) *BookingHandler {
	return &BookingHandler{Svc: svc, Bookings: bookings, Events: events}
}

type createBookingReq struct {
	EventID uint64  `json:"event_id"`
	Seats   int     `json:"seats"`
	Notes   *string `json:"notes"`
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	if req.EventID == 0 {
		return respondErr(c, http.StatusBadRequest, "event_id is required")
	}
	if req.Notes != nil {
		trimmed := strings.TrimSpace(*req.Notes)
		if trimmed == "" {
			req.Notes = nil
		} else {
			req.Notes = &trimmed
		}
	}

	callerID, _ := middleware.CallerID(c)
	b, err := h.Svc.Create(c.Request().Context(), callerID, req.EventID, req.Seats, req.Notes)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusCreated, "booking confirmed", newBookingResponse(b))
}

// Cancel handles PUT /v1/bookings/:id/cancel. Cancelling an already
// cancelled booking is a no-op.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid booking id")
	}
	callerID, _ := middleware.CallerID(c)
	b, err := h.Svc.Cancel(c.Request().Context(), id, callerID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "booking cancelled", newBookingResponse(b))
}

// ListMine handles GET /v1/bookings, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	callerID, _ := middleware.CallerID(c)
	bookings, err := h.Bookings.ListForUser(c.Request().Context(), callerID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "my bookings", newBookingResponses(bookings))
}

// GetByID handles GET /v1/bookings/:id. Visible to the booking's
// owner, the organizer of the booked event, and admins.
func (h *BookingHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid booking id")
	}
	ctx := c.Request().Context()
	callerID, _ := middleware.CallerID(c)
	role := middleware.CallerRole(c)

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return respondDomainErr(c, err)
	}
	if b.UserID != callerID && role != model.RoleAdmin {
		owns, err := h.Bookings.OrganizerOwns(ctx, id, callerID)
		if err != nil {
			return respondDomainErr(c, err)
		}
		if !owns {
			return respondDomainErr(c, repository.ErrForbidden)
		}
	}
	return respond(c, http.StatusOK, "booking", newBookingResponse(b))
}

// EventBookings handles GET /v1/bookings/organizer/event-bookings:
// bookings across every event the caller organizes, newest first. An
// optional ?event_id= narrows the list to one event, ordered oldest
// first so references read in issue order.
func (h *BookingHandler) EventBookings(c echo.Context) error {
	ctx := c.Request().Context()
	callerID, _ := middleware.CallerID(c)

	if raw := c.QueryParam("event_id"); raw != "" {
		eventID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || eventID == 0 {
			return respondErr(c, http.StatusBadRequest, "invalid event_id")
		}
		if middleware.CallerRole(c) != model.RoleAdmin {
			e, err := h.Events.GetByID(ctx, eventID)
			if err != nil {
				return respondDomainErr(c, err)
			}
			if e.OrganizerID != callerID {
				return respondDomainErr(c, repository.ErrForbidden)
			}
		}
		bookings, err := h.Bookings.ListForEvent(ctx, eventID)
		if err != nil {
			return respondDomainErr(c, err)
		}
		return respond(c, http.StatusOK, "event bookings", newBookingResponses(bookings))
	}

	bookings, err := h.Bookings.ListForOrganizer(ctx, callerID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "event bookings", newBookingResponses(bookings))
}
