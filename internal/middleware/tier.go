package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventhive/event-booking-api/internal/model"
)

// RequireTier returns a middleware that enforces a minimum capability
// tier on the authenticated caller. Tiers are ordered
// USER < ORGANIZER < ADMIN and the check is a single meets-or-exceeds
// comparison, so an admin passes every gate and an organizer passes
// user-level gates. It assumes Auth has already stored the role in
// the context; a missing or unknown role is rejected.
func RequireTier(min string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !model.TierAtLeast(CallerRole(c), min) {
				return reject(c, http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
