package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsIncompleteBody(t *testing.T) {
	h := &AuthHandler{}
	for name, body := range map[string]string{
		"empty":            `{}`,
		"missing password": `{"email":"a@b.c","name":"Ada"}`,
		"missing name":     `{"email":"a@b.c","password":"pw"}`,
		"blank email":      `{"email":"   ","password":"pw","name":"Ada"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := jsonContext(t, http.MethodPost, "/v1/auth/register", body)
			require.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginRejectsIncompleteBody(t *testing.T) {
	h := &AuthHandler{}
	c, rec := jsonContext(t, http.MethodPost, "/v1/auth/login", `{"email":"a@b.c"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
