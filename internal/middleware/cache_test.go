package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureWriterWithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 16}

	_, _ = cw.Write([]byte("hello "))
	_, _ = cw.Write([]byte("world"))

	assert.Equal(t, "hello world", cw.buf.String())
	assert.Equal(t, "hello world", rec.Body.String())
}

func TestCaptureWriterAbandonsOversizedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 8}

	_, _ = cw.Write([]byte("12345678"))
	_, _ = cw.Write([]byte("9"))
	_, _ = cw.Write([]byte("more"))

	// Client still gets everything; the capture is dropped whole.
	assert.Equal(t, "123456789more", rec.Body.String())
	assert.Zero(t, cw.buf.Len())
	assert.Negative(t, cw.limit)
}
