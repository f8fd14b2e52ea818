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

package authtoken_test

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/suite"

	"github.com/crossfi-tickets/ticketgate/internal/authtoken"
)

type AuthTokenPublicTestSuite struct {
	suite.Suite

	token      *authtoken.Token
	signingKey string
}

func (s *AuthTokenPublicTestSuite) SetupTest() {
	s.token = authtoken.New(slog.Default())
	s.signingKey = "test-signing-key-for-jwt-operations"
}

func (s *AuthTokenPublicTestSuite) TestGenerateAllowedRoles() {
	roles := authtoken.GenerateAllowedRoles(authtoken.RoleHierarchy)

	s.ElementsMatch([]string{"organizer", "staff"}, roles)
}

func (s *AuthTokenPublicTestSuite) signClaims(
	claims authtoken.CustomClaims,
) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(s.signingKey))
	s.Require().NoError(err)

	return t
}

func (s *AuthTokenPublicTestSuite) TestValidate() {
	tests := []struct {
		name        string
		tokenFunc   func() string
		signingKey  string
		errContains string
		validate    func(*authtoken.CustomClaims)
	}{
		{
			name: "valid token",
			tokenFunc: func() string {
				t, _ := s.token.Generate(s.signingKey, []string{"staff"}, "door-1", 7, time.Hour)
				return t
			},
			signingKey: s.signingKey,
			validate: func(claims *authtoken.CustomClaims) {
				s.Equal([]string{"staff"}, claims.Roles)
				s.Equal("door-1", claims.Subject)
				s.Equal("ticketgate", claims.Issuer)
				s.Equal(uint64(7), claims.EventID)
			},
		},
		{
			name: "wrong signing key",
			tokenFunc: func() string {
				t, _ := s.token.Generate(s.signingKey, []string{"staff"}, "door-1", 7, time.Hour)
				return t
			},
			signingKey:  "wrong-key",
			errContains: "signature is invalid",
		},
		{
			name: "malformed token",
			tokenFunc: func() string {
				return "STAFF-7"
			},
			signingKey:  s.signingKey,
			errContains: "invalid number of segments",
		},
		{
			name: "unexpected signing method",
			tokenFunc: func() string {
				header := base64.RawURLEncoding.EncodeToString(
					[]byte(`{"alg":"none","typ":"JWT"}`),
				)
				payload := base64.RawURLEncoding.EncodeToString(
					[]byte(`{"roles":["staff"],"event_id":7}`),
				)
				return header + "." + payload + "."
			},
			signingKey:  s.signingKey,
			errContains: "unexpected signing method",
		},
		{
			name: "expired token",
			tokenFunc: func() string {
				return s.signClaims(authtoken.CustomClaims{
					Roles:   []string{"staff"},
					EventID: 7,
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    authtoken.Issuer,
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
					},
				})
			},
			signingKey:  s.signingKey,
			errContains: "expired",
		},
		{
			name: "foreign issuer",
			tokenFunc: func() string {
				return s.signClaims(authtoken.CustomClaims{
					Roles:   []string{"staff"},
					EventID: 7,
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    "someone-else",
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				})
			},
			signingKey:  s.signingKey,
			errContains: "unexpected issuer",
		},
		{
			name: "claims fail struct validation",
			tokenFunc: func() string {
				return s.signClaims(authtoken.CustomClaims{
					Roles:   []string{"admin"},
					EventID: 7,
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    authtoken.Issuer,
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				})
			},
			signingKey:  s.signingKey,
			errContains: "Roles",
		},
		{
			name: "missing event scope",
			tokenFunc: func() string {
				t, _ := s.token.Generate(s.signingKey, []string{"staff"}, "door-1", 0, time.Hour)
				return t
			},
			signingKey:  s.signingKey,
			errContains: "EventID",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			claims, err := s.token.Validate(tt.tokenFunc(), tt.signingKey)

			if tt.errContains != "" {
				s.Error(err)
				s.Nil(claims)
				s.Contains(err.Error(), tt.errContains)
				return
			}

			s.NoError(err)
			s.Require().NotNil(claims)
			tt.validate(claims)
		})
	}
}

func (s *AuthTokenPublicTestSuite) TestAuthorize() {
	staff, err := s.token.Generate(s.signingKey, []string{"staff"}, "door-1", 7, 0)
	s.Require().NoError(err)

	tests := []struct {
		name        string
		eventID     uint64
		permission  string
		customRoles map[string][]string
		expectErr   error
	}{
		{
			name:       "staff may verify tickets for their event",
			eventID:    7,
			permission: authtoken.PermTicketVerify,
		},
		{
			name:       "staff token for another event",
			eventID:    8,
			permission: authtoken.PermTicketVerify,
			expectErr:  authtoken.ErrEventMismatch,
		},
		{
			name:       "staff may not read audit",
			eventID:    7,
			permission: authtoken.PermAuditRead,
			expectErr:  authtoken.ErrPermissionDenied,
		},
		{
			name:        "custom role shadows staff",
			eventID:     7,
			permission:  authtoken.PermTicketVerify,
			customRoles: map[string][]string{"staff": {authtoken.PermEventRead}},
			expectErr:   authtoken.ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			claims, err := s.token.Authorize(staff, s.signingKey, tt.eventID, tt.permission, tt.customRoles)

			if tt.expectErr != nil {
				s.True(errors.Is(err, tt.expectErr))
				s.Nil(claims)
				return
			}

			s.NoError(err)
			s.Equal("door-1", claims.Subject)
		})
	}
}

func (s *AuthTokenPublicTestSuite) TestGenerateDefaultsTTL() {
	t, err := s.token.Generate(s.signingKey, []string{"organizer"}, "org", 1, 0)
	s.Require().NoError(err)

	claims, err := s.token.Validate(t, s.signingKey)
	s.Require().NoError(err)
	s.WithinDuration(
		claims.IssuedAt.Add(authtoken.DefaultTTL),
		claims.ExpiresAt.Time,
		time.Second,
	)
}

func TestAuthTokenPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTokenPublicTestSuite))
}
