package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/event-booking-api/internal/model"
	"github.com/eventhive/event-booking-api/internal/repository"
	"github.com/eventhive/event-booking-api/internal/service"
)

func jsonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestDomainErrStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{repository.ErrEventNotFound, http.StatusNotFound},
		{repository.ErrBookingNotFound, http.StatusNotFound},
		{repository.ErrUserNotFound, http.StatusNotFound},
		{repository.ErrWishlistNotFound, http.StatusNotFound},
		{repository.ErrForbidden, http.StatusForbidden},
		{repository.ErrInsufficientSeats, http.StatusConflict},
		{repository.ErrHasBookings, http.StatusConflict},
		{repository.ErrBadTransition, http.StatusConflict},
		{repository.ErrEmailExists, http.StatusConflict},
		{service.ErrInvalidSeatCount, http.StatusBadRequest},
		{errors.New("mystery failure"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, rec := jsonContext(t, http.MethodGet, "/", "")
		require.NoError(t, respondDomainErr(c, tc.err))
		assert.Equal(t, tc.want, rec.Code, "error %v", tc.err)
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	c, rec := jsonContext(t, http.MethodGet, "/", "")
	require.NoError(t, respondDomainErr(c, errors.New("dial tcp 10.0.0.5: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestEventInputValidation(t *testing.T) {
	valid := func() eventInput {
		return eventInput{
			Title:      "Jazz Night",
			Category:   "music",
			Date:       time.Now().Add(48 * time.Hour).Format(time.RFC3339),
			Location:   "Blue Note",
			Price:      25.50,
			TotalSeats: 80,
		}
	}

	in := valid()
	_, msg := in.validate()
	assert.Empty(t, msg)

	cases := []struct {
		name   string
		mutate func(*eventInput)
	}{
		{"blank title", func(in *eventInput) { in.Title = "   " }},
		{"blank location", func(in *eventInput) { in.Location = "" }},
		{"unknown category", func(in *eventInput) { in.Category = "rodeo" }},
		{"negative price", func(in *eventInput) { in.Price = -1 }},
		{"zero seats", func(in *eventInput) { in.TotalSeats = 0 }},
		{"bad date", func(in *eventInput) { in.Date = "tomorrow" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid()
			tc.mutate(&in)
			_, msg := in.validate()
			assert.NotEmpty(t, msg)
		})
	}
}

func TestEventInputNormalizesCategory(t *testing.T) {
	in := eventInput{
		Title:      "Expo",
		Category:   "  TECH ",
		Date:       time.Now().Format(time.RFC3339),
		Location:   "Hall 4",
		TotalSeats: 10,
	}
	_, msg := in.validate()
	assert.Empty(t, msg)
	assert.Equal(t, "tech", in.Category)
}

func TestRejectEventRequiresReason(t *testing.T) {
	h := &AdminHandler{}
	for name, body := range map[string]string{
		"missing reason": `{}`,
		"short reason":   `{"reason":"bad"}`,
		"blank reason":   `{"reason":"        "}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := jsonContext(t, http.MethodPatch, "/v1/events/5/reject", body)
			c.SetParamNames("id")
			c.SetParamValues("5")
			require.NoError(t, h.RejectEvent(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateBookingRequiresEventID(t *testing.T) {
	h := &BookingHandler{}
	c, rec := jsonContext(t, http.MethodPost, "/v1/bookings", `{"seats":2}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPathIDRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"abc", "-1", "0", ""} {
		c, _ := jsonContext(t, http.MethodGet, "/v1/events/"+raw, "")
		c.SetParamNames("id")
		c.SetParamValues(raw)
		_, err := pathID(c, "id")
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(0), toCents(0))
	assert.Equal(t, int64(2550), toCents(25.50))
	assert.Equal(t, int64(1999), toCents(19.99))
	assert.Equal(t, int64(100), toCents(0.999))
}

func TestEventResponseLowercasesStatus(t *testing.T) {
	e := model.Event{Status: model.EventPending, PriceCents: 1234}
	resp := newEventResponse(e)
	assert.Equal(t, "pending", resp.Status)
	assert.InDelta(t, 12.34, resp.Price, 0.0001)
}
