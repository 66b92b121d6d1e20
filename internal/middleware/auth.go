package middleware // middleware contains reusable HTTP middleware for the API

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys under which the authenticated caller's identity is
// stored. Handlers read these via the CallerID and CallerRole helpers
// instead of touching the context keys directly.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// Auth returns an Echo middleware that validates a Bearer access
// token and injects the token's subject and role claims into the
// request context. The provided secret must match the one used when
// issuing tokens. Missing, malformed or expired tokens all yield 401;
// the gate never distinguishes why a token failed.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return reject(c, http.StatusUnauthorized, "missing bearer token")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// HS256 only; reject any other signing method.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return reject(c, http.StatusUnauthorized, "invalid token")
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return reject(c, http.StatusUnauthorized, "invalid claims")
			}

			uid, ok := subjectID(claims)
			if !ok || uid == 0 {
				return reject(c, http.StatusUnauthorized, "invalid claims")
			}
			role, _ := claims["role"].(string)

			c.Set(ctxUserID, uid)
			c.Set(ctxRole, role)
			return next(c)
		}
	}
}

// OptionalAuth is like Auth but lets anonymous requests through. A
// valid bearer token enriches the context with the caller's identity;
// an absent or invalid one leaves the request anonymous instead of
// rejecting it. Public endpoints whose response depends on who is
// asking (direct event fetch) use this.
func OptionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return next(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return next(c)
			}
			if claims, ok := tok.Claims.(jwt.MapClaims); ok {
				if uid, ok := subjectID(claims); ok && uid != 0 {
					role, _ := claims["role"].(string)
					c.Set(ctxUserID, uid)
					c.Set(ctxRole, role)
				}
			}
			return next(c)
		}
	}
}

// subjectID extracts the numeric user id from the sub claim. JWT
// numbers decode as float64; string subjects are parsed for
// compatibility with tokens minted by other issuers.
func subjectID(claims jwt.MapClaims) (uint64, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		return uint64(v), true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// CallerID returns the authenticated user's id from the context. The
// boolean is false when the Auth middleware did not run.
func CallerID(c echo.Context) (uint64, bool) {
	uid, ok := c.Get(ctxUserID).(uint64)
	return uid, ok
}

// CallerRole returns the authenticated user's role, or "" when the
// request is anonymous.
func CallerRole(c echo.Context) string {
	role, _ := c.Get(ctxRole).(string)
	return role
}
