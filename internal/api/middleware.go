// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/authtoken"
	"github.com/crossfi-tickets/ticketgate/internal/telemetry"
)

// Context key constants for injecting token identity into handlers.
const (
	ContextKeySubject = "auth.subject"
	ContextKeyRoles   = "auth.roles"
)

// TokenValidator parses and validates JWT tokens.
type TokenValidator interface {
	Validate(
		tokenString string,
		signingKey string,
	) (*authtoken.CustomClaims, error)
}

// requirePermission validates the bearer token and checks it resolves to
// permission.
func requirePermission(
	tokenManager TokenValidator,
	signingKey string,
	customRoles map[string][]string,
	permission string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return common.JSONError(c, http.StatusUnauthorized, "Bearer token required", "")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := tokenManager.Validate(tokenString, signingKey)
			if err != nil {
				return common.JSONError(c, http.StatusUnauthorized, "Invalid token: "+err.Error(), "")
			}

			c.Set(ContextKeySubject, claims.Subject)
			c.Set(ContextKeyRoles, claims.Roles)

			resolved := authtoken.ResolvePermissions(
				claims.Roles,
				claims.Permissions,
				customRoles,
			)
			if !authtoken.HasPermission(resolved, permission) {
				return common.JSONError(
					c,
					http.StatusForbidden,
					fmt.Sprintf("Insufficient permissions. Required: %s", permission),
					"",
				)
			}

			return next(c)
		}
	}
}

// onlyPrefix applies mw to requests whose path starts with prefix.
func onlyPrefix(
	prefix string,
	mw echo.MiddlewareFunc,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := mw(next)

		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, prefix) {
				return wrapped(c)
			}

			return next(c)
		}
	}
}

// noCache marks responses as uncacheable.
func noCache() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderCacheControl, "no-store, max-age=0")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")

			return next(c)
		}
	}
}

// requestIDContext copies the X-Request-ID into the request context so
// handler logs carry it.
func requestIDContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(telemetry.WithRequestID(req.Context(), id)))
			}

			return next(c)
		}
	}
}
