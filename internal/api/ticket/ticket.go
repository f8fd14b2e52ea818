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

// Package ticket provides the ticket access and verification handlers.
package ticket

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/access"
	"github.com/crossfi-tickets/ticketgate/internal/authtoken"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
)

// Authorizer decides signed ticket access requests.
type Authorizer interface {
	Decide(ctx context.Context, req access.Request) access.Decision
}

// TokenAuthorizer validates staff tokens for an event.
type TokenAuthorizer interface {
	Authorize(
		tokenString string,
		signingKey string,
		eventID uint64,
		permission authtoken.Permission,
		customRoles map[string][]string,
	) (*authtoken.CustomClaims, error)
}

// Ticket implementation of the ticket endpoints.
type Ticket struct {
	// Authorizer gates GET /api/tickets/:id.
	Authorizer Authorizer
	// Reader reads tickets, events and tiers.
	Reader ledger.Reader
	// Tokens validates staff codes.
	Tokens TokenAuthorizer
	// SigningKey verifies staff codes.
	SigningKey string
	// CustomRoles extends the built-in token roles.
	CustomRoles map[string][]string
	logger      *slog.Logger
	now         func() time.Time
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	authorizer Authorizer,
	reader ledger.Reader,
	tokens TokenAuthorizer,
	signingKey string,
	customRoles map[string][]string,
) *Ticket {
	return &Ticket{
		Authorizer:  authorizer,
		Reader:      reader,
		Tokens:      tokens,
		SigningKey:  signingKey,
		CustomRoles: customRoles,
		logger:      logger.With(slog.String("component", "api.ticket")),
		now:         time.Now,
	}
}

// RegisterHandlers mounts the ticket routes.
func RegisterHandlers(
	e *echo.Echo,
	t *Ticket,
) {
	e.GET("/api/tickets/user/:address", t.GetUserTickets)
	e.POST("/api/tickets/verify", t.PostVerify)
	e.POST("/api/tickets/staff-verify", t.PostStaffVerify)
	e.GET("/api/tickets/:id", t.GetTicket)
}
