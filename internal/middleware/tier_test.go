package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/event-booking-api/internal/middleware"
	"github.com/eventhive/event-booking-api/internal/model"
)

func runTierGate(t *testing.T, role, min string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	handler := middleware.RequireTier(min)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec.Code
}

func TestRequireTierOrdering(t *testing.T) {
	cases := []struct {
		name string
		role string
		min  string
		want int
	}{
		{"user blocked from organizer gate", model.RoleUser, model.RoleOrganizer, http.StatusForbidden},
		{"user blocked from admin gate", model.RoleUser, model.RoleAdmin, http.StatusForbidden},
		{"organizer passes organizer gate", model.RoleOrganizer, model.RoleOrganizer, http.StatusOK},
		{"organizer blocked from admin gate", model.RoleOrganizer, model.RoleAdmin, http.StatusForbidden},
		{"admin passes every gate", model.RoleAdmin, model.RoleUser, http.StatusOK},
		{"admin passes organizer gate", model.RoleAdmin, model.RoleOrganizer, http.StatusOK},
		{"admin passes admin gate", model.RoleAdmin, model.RoleAdmin, http.StatusOK},
		{"missing role rejected", "", model.RoleUser, http.StatusForbidden},
		{"unknown role rejected", "SUPERUSER", model.RoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, runTierGate(t, tc.role, tc.min))
		})
	}
}

// Rejections written by the gates carry the same envelope as handler
// responses, so clients parse one shape everywhere.
func TestGateRejectionsUseResponseEnvelope(t *testing.T) {
	e := echo.New()

	decode := func(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
		t.Helper()
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	t.Run("forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("role", model.RoleUser)

		h := middleware.RequireTier(model.RoleAdmin)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		require.Equal(t, http.StatusForbidden, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "forbidden", body["message"])
		assert.Equal(t, float64(http.StatusForbidden), body["status"])
		assert.Equal(t, "forbidden", body["error"])
	})

	t.Run("unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := middleware.Auth("secret")(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "missing bearer token", body["message"])
		assert.Equal(t, float64(http.StatusUnauthorized), body["status"])
		assert.Equal(t, "missing bearer token", body["error"])
	})
}
