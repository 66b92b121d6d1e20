package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventhive/event-booking-api/internal/middleware"
	"github.com/eventhive/event-booking-api/internal/repository"
)

// WishlistHandler covers the saved-events endpoints. Adding is
// idempotent: saving the same event twice returns the existing entry.
type WishlistHandler struct {
	Wishlist *repository.WishlistRepo
	Events   *repository.EventRepo
}

func NewWishlistHandler(wishlist *repository.WishlistRepo, events *repository.EventRepo) *WishlistHandler {
	return &WishlistHandler{Wishlist: wishlist, Events: events}
}

type addWishlistReq struct {
	EventID uint64 `json:"event_id"`
}

// Add handles POST /v1/wishlist. Only approved, active events can be
// saved.
func (h *WishlistHandler) Add(c echo.Context) error {
	var req addWishlistReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	if req.EventID == 0 {
		return respondErr(c, http.StatusBadRequest, "event_id is required")
	}
	ctx := c.Request().Context()
	callerID, _ := middleware.CallerID(c)

	// Visibility check doubles as an existence check: anonymous rules
	// apply, a pending event cannot be wishlisted even by its owner.
	if _, err := h.Events.GetVisible(ctx, req.EventID, 0, ""); err != nil {
		return respondDomainErr(c, err)
	}
	entry, err := h.Wishlist.Add(ctx, callerID, req.EventID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusCreated, "added to wishlist", map[string]any{
		"id":       entry.ID,
		"event_id": entry.EventID,
		"added_at": entry.CreatedAt,
	})
}

// Remove handles DELETE /v1/wishlist/:id. The id may be either the
// wishlist entry id or the event id; clients tend to hold the latter.
func (h *WishlistHandler) Remove(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	callerID, _ := middleware.CallerID(c)
	if err := h.Wishlist.Remove(c.Request().Context(), id, callerID); err != nil {
		return respondDomainErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/wishlist. Entries whose event has since been
// deleted are dropped from the listing.
func (h *WishlistHandler) List(c echo.Context) error {
	callerID, _ := middleware.CallerID(c)
	items, err := h.Wishlist.ListForUser(c.Request().Context(), callerID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respond(c, http.StatusOK, "wishlist", newWishlistResponses(items))
}
