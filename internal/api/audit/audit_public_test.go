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

package audit_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	auditapi "github.com/crossfi-tickets/ticketgate/internal/api/audit"
	auditstore "github.com/crossfi-tickets/ticketgate/internal/audit"
)

type AuditPublicTestSuite struct {
	suite.Suite

	store *fakeStore
	e     *echo.Echo
}

func (s *AuditPublicTestSuite) SetupTest() {
	s.store = &fakeStore{}
	s.e = echo.New()
	auditapi.RegisterHandlers(s.e, auditapi.New(slog.New(slog.DiscardHandler), s.store))
}

func (s *AuditPublicTestSuite) get(
	target string,
) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec
}

func (s *AuditPublicTestSuite) TestGetAuditLogs() {
	entry := auditstore.Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Kind:      auditstore.KindAccess,
		TicketID:  7,
		Allowed:   true,
		Reason:    "allowed",
	}

	tests := []struct {
		name       string
		query      string
		setup      func()
		wantCode   int
		wantLimit  int
		wantOffset int
		wantItems  int
	}{
		{
			name:      "when no params uses defaults",
			setup:     func() { s.store.listEntries, s.store.listTotal = []auditstore.Entry{entry}, 1 },
			wantCode:  http.StatusOK,
			wantLimit: 20,
			wantItems: 1,
		},
		{
			name:       "when params given passes them through",
			query:      "?limit=5&offset=10",
			setup:      func() { s.store.listTotal = 12 },
			wantCode:   http.StatusOK,
			wantLimit:  5,
			wantOffset: 10,
		},
		{
			name:     "when limit too large",
			query:    "?limit=500",
			setup:    func() {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "when limit not a number",
			query:    "?limit=many",
			setup:    func() {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "when store fails",
			setup:     func() { s.store.listErr = errors.New("disk") },
			wantCode:  http.StatusInternalServerError,
			wantLimit: 20,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setup()

			rec := s.get("/api/audit" + tt.query)

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusBadRequest {
				return
			}
			s.Equal(tt.wantLimit, s.store.listLimit)
			s.Equal(tt.wantOffset, s.store.listOffset)
			if tt.wantCode != http.StatusOK {
				return
			}

			var got auditapi.ListResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
			s.Equal(s.store.listTotal, got.TotalItems)
			s.Len(got.Items, tt.wantItems)
		})
	}
}

func (s *AuditPublicTestSuite) TestGetAuditLogByID() {
	id := uuid.NewString()

	tests := []struct {
		name     string
		id       string
		setup    func()
		wantCode int
	}{
		{
			name: "when entry exists",
			id:   id,
			setup: func() {
				s.store.getEntry = &auditstore.Entry{ID: id, Kind: auditstore.KindStaffVerify, Reason: "allowed"}
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "when entry missing",
			id:       id,
			setup:    func() { s.store.getErr = auditstore.ErrNotFound },
			wantCode: http.StatusNotFound,
		},
		{
			name:     "when store fails",
			id:       id,
			setup:    func() { s.store.getErr = errors.New("disk") },
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "when id malformed",
			id:       "not-a-uuid",
			setup:    func() {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setup()

			rec := s.get("/api/audit/" + tt.id)

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				var got auditapi.EntryResponse
				s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
				s.Equal(id, got.Entry.ID)
				s.Equal(auditstore.KindStaffVerify, got.Entry.Kind)
			}
		})
	}
}

func TestAuditPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuditPublicTestSuite))
}
