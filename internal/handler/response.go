// Package handler implements the HTTP endpoints. Handlers bind and
// validate input, call repositories or services, and translate domain
// errors into the response envelope; no business rule lives here.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventhive/event-booking-api/internal/repository"
	"github.com/eventhive/event-booking-api/internal/service"
)

// Response is the envelope every endpoint returns. Status mirrors the
// HTTP status code so mobile clients can branch without inspecting
// transport details.
type Response struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// respond writes a success envelope.
func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Response{Message: message, Status: status, Data: data})
}

// respondErr writes a failure envelope.
func respondErr(c echo.Context, status int, msg string) error {
	return c.JSON(status, Response{Message: msg, Status: status, Error: msg})
}

// respondDomainErr maps domain sentinel errors onto HTTP statuses.
// Anything unrecognized is an internal error: the detail goes to the
// log, the client gets a generic message.
func respondDomainErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrWishlistNotFound):
		return respondErr(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrForbidden):
		return respondErr(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, repository.ErrInsufficientSeats),
		errors.Is(err, repository.ErrHasBookings),
		errors.Is(err, repository.ErrBadTransition),
		errors.Is(err, repository.ErrEmailExists):
		return respondErr(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidSeatCount):
		return respondErr(c, http.StatusBadRequest, err.Error())
	default:
		c.Logger().Errorf("internal error: %v", err)
		return respondErr(c, http.StatusInternalServerError, "internal error")
	}
}
