package middleware

import "github.com/labstack/echo/v4"

// errorBody matches the response envelope the handler package writes,
// so a request rejected at the gate looks the same on the wire as one
// rejected inside a handler. The shape is restated here because
// handler already imports this package for caller identity.
type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Error   string `json:"error"`
}

// reject writes a failure envelope from middleware.
func reject(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorBody{Message: msg, Status: status, Error: msg})
}
