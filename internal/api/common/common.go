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

// Package common holds the response and context helpers shared by the API
// handler packages.
package common

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/audit"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
)

// ContextKeyDecision holds the *audit.Entry a handler wants recorded.
const ContextKeyDecision = "audit.decision"

// Client-facing messages for ledger failures.
const (
	MsgLedgerUnavailable = "Ticket ledger is temporarily unavailable"
	MsgInvalidBody       = "Invalid request body"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// JSONError writes an ErrorResponse.
func JSONError(
	c echo.Context,
	status int,
	msg string,
	detail string,
) error {
	return c.JSON(status, ErrorResponse{
		Error:  msg,
		Detail: detail,
	})
}

// LedgerError maps a ledger read failure to a reply. notFound is the
// message used when the record does not exist.
func LedgerError(
	c echo.Context,
	err error,
	notFound string,
) error {
	if errors.Is(err, ledger.ErrNotFound) {
		return JSONError(c, http.StatusNotFound, notFound, "")
	}

	return JSONError(c, http.StatusServiceUnavailable, MsgLedgerUnavailable, "")
}

// ParseID parses a positive decimal id path or query value.
func ParseID(
	s string,
) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}

// RecordDecision asks the audit middleware to record entry once the
// handler returns.
func RecordDecision(
	c echo.Context,
	entry audit.Entry,
) {
	c.Set(ContextKeyDecision, &entry)
}

// Decision returns the entry set by RecordDecision, if any.
func Decision(
	c echo.Context,
) (*audit.Entry, bool) {
	entry, ok := c.Get(ContextKeyDecision).(*audit.Entry)
	return entry, ok && entry != nil
}
