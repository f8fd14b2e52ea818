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

package authtoken

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/crossfi-tickets/ticketgate/internal/validation"
)

// Validate parses tokenString, verifies its HS256 signature and checks the
// claims.
func (t *Token) Validate(
	tokenString string,
	signingKey string,
) (*CustomClaims, error) {
	claims := &CustomClaims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(signingKey), nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims.Issuer != Issuer {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}

	if errMsg, ok := validation.Struct(claims); !ok {
		return nil, fmt.Errorf("invalid claims: %s", errMsg)
	}

	return claims, nil
}

// Authorize validates tokenString and checks it grants permission for
// eventID.
func (t *Token) Authorize(
	tokenString string,
	signingKey string,
	eventID uint64,
	permission Permission,
	customRoles map[string][]string,
) (*CustomClaims, error) {
	claims, err := t.Validate(tokenString, signingKey)
	if err != nil {
		return nil, err
	}

	if claims.EventID != eventID {
		return nil, fmt.Errorf("%w: token event %d, requested %d", ErrEventMismatch, claims.EventID, eventID)
	}

	resolved := ResolvePermissions(claims.Roles, claims.Permissions, customRoles)
	if !HasPermission(resolved, permission) {
		return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, permission)
	}

	return claims, nil
}
