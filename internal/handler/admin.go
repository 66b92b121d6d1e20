package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventhive/event-booking-api/internal/middleware"
	"github.com/eventhive/event-booking-api/internal/model"
	"github.com/eventhive/event-booking-api/internal/repository"
)

// AdminHandler groups the moderation and platform-management routes.
// All of them sit behind RequireTier(RoleAdmin).
type AdminHandler struct {
	Events   *repository.EventRepo
	Users    *repository.UserRepo
	Bookings *repository.BookingRepo
	Tokens   *repository.TokenRepo
}

func NewAdminHandler(events *repository.EventRepo, users *repository.UserRepo, bookings *repository.BookingRepo, tokens *repository.TokenRepo) *AdminHandler {
	return &AdminHandler{Events: events, Users: users, Bookings: bookings, Tokens: tokens}
}

// ApproveEvent handles PATCH /v1/events/:id/approve.
func (h *AdminHandler) ApproveEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid event id")
	}
	adminID, _ := middleware.CallerID(c)
	e, err := h.Events.Approve(c.Request().Context(), id, adminID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "event approved", newEventResponse(e))
}

type rejectReq struct {
	Reason string `json:"reason"`
}

// RejectEvent handles PATCH /v1/events/:id/reject. A reason is
// mandatory so the organizer gets actionable feedback.
func (h *AdminHandler) RejectEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid event id")
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if len(req.Reason) < 5 {
		return respondErr(c, http.StatusBadRequest, "rejection reason must be at least 5 characters")
	}
	adminID, _ := middleware.CallerID(c)
	e, err := h.Events.Reject(c.Request().Context(), id, adminID, req.Reason)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "event rejected", newEventResponse(e))
}

// ListEvents handles GET /v1/events/admin/all. An optional ?status=
// filter narrows the list to pending, approved or rejected.
func (h *AdminHandler) ListEvents(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	switch status {
	case "", model.EventPending, model.EventApproved, model.EventRejected:
	default:
		return respondErr(c, http.StatusBadRequest, "unknown status filter")
	}
	events, err := h.Events.ListAll(c.Request().Context(), status)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "events", newEventResponses(events))
}

type dashboardStats struct {
	TotalUsers    int64   `json:"total_users"`
	TotalEvents   int64   `json:"total_events"`
	TotalBookings int64   `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// Dashboard handles GET /v1/admin/dashboard/stats. Revenue counts confirmed
// bookings only.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Users.Count(ctx)
	if err != nil {
		return respondDomainErr(c, err)
	}
	events, err := h.Events.Count(ctx)
	if err != nil {
		return respondDomainErr(c, err)
	}
	bookings, revenueCents, err := h.Bookings.Stats(ctx)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "platform stats", dashboardStats{
		TotalUsers:    users,
		TotalEvents:   events,
		TotalBookings: bookings,
		TotalRevenue:  float64(revenueCents) / 100,
	})
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "users", newUserResponses(users))
}

// DeactivateUser handles PATCH /v1/admin/users/:id/deactivate. Accounts are
// soft-disabled, never removed, so booking history stays intact. An
// admin cannot deactivate themselves.
func (h *AdminHandler) DeactivateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid user id")
	}
	adminID, _ := middleware.CallerID(c)
	if id == adminID {
		return respondErr(c, http.StatusBadRequest, "cannot deactivate your own account")
	}
	ctx := c.Request().Context()
	if err := h.Users.Deactivate(ctx, id); err != nil {
		return respondDomainErr(c, err)
	}
	// End the user's sessions: refresh tokens die now, access tokens
	// age out within their TTL.
	if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
		return respondDomainErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
