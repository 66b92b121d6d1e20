package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/event-booking-api/internal/middleware"
	"github.com/eventhive/event-booking-api/internal/model"
	"github.com/eventhive/event-booking-api/internal/utils"
)

const testSecret = "test-secret"

func authedRequest(t *testing.T, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, model.RoleOrganizer, 15)
	require.NoError(t, err)

	c, rec := authedRequest(t, tok.Token)
	var gotID uint64
	var gotRole string
	h := middleware.Auth(testSecret)(func(c echo.Context) error {
		gotID, _ = middleware.CallerID(c)
		gotRole = middleware.CallerRole(c)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), gotID)
	assert.Equal(t, model.RoleOrganizer, gotRole)
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	for name, token := range map[string]string{
		"missing": "",
		"garbage": "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := authedRequest(t, token)
			h := middleware.Auth(testSecret)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			require.NoError(t, h(c))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, model.RoleUser, 15)
	require.NoError(t, err)

	c, rec := authedRequest(t, tok.Token)
	h := middleware.Auth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	c, rec := authedRequest(t, "")
	h := middleware.OptionalAuth(testSecret)(func(c echo.Context) error {
		_, ok := middleware.CallerID(c)
		assert.False(t, ok)
		assert.Empty(t, middleware.CallerRole(c))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthAttachesIdentity(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 9, model.RoleUser, 15)
	require.NoError(t, err)

	c, rec := authedRequest(t, tok.Token)
	h := middleware.OptionalAuth(testSecret)(func(c echo.Context) error {
		id, ok := middleware.CallerID(c)
		assert.True(t, ok)
		assert.Equal(t, uint64(9), id)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
