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

// Package authtoken issues and validates the HS256 tokens carried by door
// staff and organizers when verifying tickets.
package authtoken

import (
	"errors"
	"log/slog"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer is the iss claim of every token.
const Issuer = "ticketgate"

// Roles.
const (
	RoleOrganizer = "organizer"
	RoleStaff     = "staff"
)

var (
	// ErrEventMismatch is returned when a token is scoped to another event.
	ErrEventMismatch = errors.New("token is not valid for this event")
	// ErrPermissionDenied is returned when a token lacks a required permission.
	ErrPermissionDenied = errors.New("token lacks required permission")
)

// RoleHierarchy lists the roles a token may carry, most privileged first.
var RoleHierarchy = []string{
	RoleOrganizer,
	RoleStaff,
}

// Token issues and validates tokens.
type Token struct {
	logger *slog.Logger
}

// CustomClaims are the claims carried by a ticketgate token.
type CustomClaims struct {
	// Roles granted to the bearer.
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=organizer staff"`
	// EventID scopes the token to a single event.
	EventID uint64 `json:"event_id" validate:"required"`
	// Permissions, when set, replace the permissions derived from Roles.
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// New creates a Token.
func New(
	logger *slog.Logger,
) *Token {
	return &Token{
		logger: logger,
	}
}

// GenerateAllowedRoles returns the role names accepted by Generate.
func GenerateAllowedRoles(
	hierarchy []string,
) []string {
	roles := make([]string, len(hierarchy))
	copy(roles, hierarchy)

	return roles
}
