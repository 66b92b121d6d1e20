package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventhive/event-booking-api/internal/middleware"
	"github.com/eventhive/event-booking-api/internal/repository"
)

// featuredLimit caps the featured strip on the app's home screen.
const featuredLimit = 6

// searchLimit bounds unpaginated search responses.
const searchLimit = 50

// PublicEventHandler serves the unauthenticated discovery endpoints.
// Everything here is restricted to approved, active events; an
// organizer previewing their own pending event goes through the
// direct-fetch endpoint with a bearer token.
type PublicEventHandler struct {
	Events *repository.EventRepo
}

func NewPublicEventHandler(events *repository.EventRepo) *PublicEventHandler {
	return &PublicEventHandler{Events: events}
}

// List handles GET /v1/events. Supports page/limit pagination, an
// optional category filter and sorting by price, rating or recency.
func (h *PublicEventHandler) List(c echo.Context) error {
	q := repository.PublicEventQuery{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Sort:     c.QueryParam("sort"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "limit", 20),
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	events, total, err := h.Events.ListPublic(c.Request().Context(), q)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "events", pagedResponse{
		Items:    newEventResponses(events),
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
}

// Featured handles GET /v1/events/featured.
func (h *PublicEventHandler) Featured(c echo.Context) error {
	events, err := h.Events.ListFeatured(c.Request().Context(), featuredLimit)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "featured events", newEventResponses(events))
}

// Search handles GET /v1/events/search/query?q=. Empty queries return an
// empty list rather than the whole catalog.
func (h *PublicEventHandler) Search(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("q"))
	if term == "" {
		return respond(c, http.StatusOK, "search results", []eventResponse{})
	}
	events, err := h.Events.Search(c.Request().Context(), term, searchLimit)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "search results", newEventResponses(events))
}

// GetByID handles GET /v1/events/:id. Anonymous callers only see
// approved, active events; the owning organizer and admins see any
// status. Identity, when present, comes from the OptionalAuth
// middleware.
func (h *PublicEventHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid event id")
	}
	callerID, _ := middleware.CallerID(c)
	e, err := h.Events.GetVisible(c.Request().Context(), id, callerID, middleware.CallerRole(c))
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "event", newEventResponse(e))
}

// queryInt parses an integer query parameter with a default.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
