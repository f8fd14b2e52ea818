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
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/audit"
)

type captureRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *captureRecorder) Record(
	entry audit.Entry,
) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
}

type AuditMiddlewareTestSuite struct {
	suite.Suite
}

func (s *AuditMiddlewareTestSuite) TestAuditMiddleware() {
	handlerErr := errors.New("handler failed")

	tests := []struct {
		name         string
		handler      echo.HandlerFunc
		wantErr      error
		validateFunc func(entries []audit.Entry)
	}{
		{
			name: "decision is recorded with request details",
			handler: func(c echo.Context) error {
				common.RecordDecision(c, audit.Entry{
					Kind:     audit.KindStaffVerify,
					TicketID: 4,
					EventID:  2,
					Allowed:  true,
					Reason:   "allowed",
				})
				return c.NoContent(http.StatusOK)
			},
			validateFunc: func(entries []audit.Entry) {
				s.Require().Len(entries, 1)
				s.Equal(audit.KindStaffVerify, entries[0].Kind)
				s.Equal(uint64(4), entries[0].TicketID)
				s.Equal("203.0.113.9", entries[0].SourceIP)
				s.Equal("req-1", entries[0].RequestID)
				s.False(entries[0].Timestamp.IsZero())
				s.GreaterOrEqual(entries[0].DurationMs, int64(0))
			},
		},
		{
			name: "request without decision is skipped",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			validateFunc: func(entries []audit.Entry) {
				s.Empty(entries)
			},
		},
		{
			name: "decision is recorded when handler errors",
			handler: func(c echo.Context) error {
				common.RecordDecision(c, audit.Entry{Kind: audit.KindAccess, Reason: "service_unavailable"})
				return handlerErr
			},
			wantErr: handlerErr,
			validateFunc: func(entries []audit.Entry) {
				s.Require().Len(entries, 1)
				s.Equal("service_unavailable", entries[0].Reason)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			recorder := &captureRecorder{}

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/tickets/4", nil)
			req.RemoteAddr = "203.0.113.9:4000"
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Response().Header().Set(echo.HeaderXRequestID, "req-1")

			err := auditMiddleware(recorder)(tt.handler)(c)

			s.Equal(tt.wantErr, err)
			tt.validateFunc(recorder.entries)
		})
	}
}

func TestAuditMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuditMiddlewareTestSuite))
}
