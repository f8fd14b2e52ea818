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

package organizer_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/crossfi-tickets/ticketgate/internal/api/organizer"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
)

const txHash = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"

type OrganizerPublicTestSuite struct {
	suite.Suite

	e *echo.Echo
}

func (s *OrganizerPublicTestSuite) SetupTest() {
	s.e = echo.New()
	organizer.RegisterHandlers(s.e, organizer.New(
		slog.New(slog.DiscardHandler),
		ledger.DemoFixtures(time.Now()),
		organizer.Options{
			MaxEventID:      100,
			ContractAddress: "0x00000000000000000000000000000000000000aa",
			ListingFee:      "1.0",
			GasLimit:        "2000000",
			ExplorerURL:     "https://scan.testnet.ms",
		},
	))
}

func (s *OrganizerPublicTestSuite) do(
	method string,
	target string,
	body string,
) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec
}

func (s *OrganizerPublicTestSuite) TestPostPrepare() {
	start := time.Now().Add(24 * time.Hour).Unix()
	draft := func(organizerAddress string, startDate int64) string {
		return fmt.Sprintf(`{
			"title": "Node Operators Night",
			"description": "Operators meet",
			"location": "Lisbon",
			"startDate": %d,
			"endDate": %d,
			"organizerAddress": %q,
			"tiers": [{"name": "Standard", "price": 2, "maxSupply": "50", "tokenType": "XUSD"}]
		}`, startDate, startDate+7200, organizerAddress)
	}

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "when draft valid prepares event",
			body:     draft(ledger.DemoOrganizer.Hex(), start),
			wantCode: http.StatusOK,
		},
		{
			name:     "when organizer invalid",
			body:     draft("nobody", start),
			wantCode: http.StatusBadRequest,
			wantErr:  "Valid organizer address is required",
		},
		{
			name:     "when start in the past",
			body:     draft(ledger.DemoOrganizer.Hex(), time.Now().Add(-time.Hour).Unix()),
			wantCode: http.StatusBadRequest,
			wantErr:  "Start date must be in the future",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, "/api/organizer/events/prepare", tt.body)

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantErr != "" {
				s.JSONEq(fmt.Sprintf(`{"error":%q}`, tt.wantErr), rec.Body.String())
				return
			}

			var got organizer.PrepareResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
			s.True(got.Success)
			s.Equal("2000000", got.ContractInfo.GasLimit)
			s.Require().Len(got.EventData.Tiers, 1)
			s.Equal("2000000000000000000", got.EventData.Tiers[0].Price)
			s.Equal("XUSD", got.EventData.Tiers[0].TokenType)
			s.Equal(uint64(50), got.EventData.Tiers[0].MaxSupply)
		})
	}
}

func (s *OrganizerPublicTestSuite) TestPostCreated() {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "when report complete returns explorer url",
			body:     fmt.Sprintf(`{"eventId":5,"transactionHash":%q,"organizerAddress":%q}`, txHash, ledger.DemoOrganizer.Hex()),
			wantCode: http.StatusOK,
			wantBody: fmt.Sprintf(
				`{"success":true,"message":"Event creation recorded successfully","eventId":5,"explorerUrl":"https://scan.testnet.ms/tx/%s"}`,
				txHash,
			),
		},
		{
			name:     "when fields missing",
			body:     `{"eventId":5}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Missing required fields: eventId, transactionHash, organizerAddress"}`,
		},
		{
			name:     "when hash malformed",
			body:     fmt.Sprintf(`{"eventId":5,"transactionHash":"0x1234","organizerAddress":%q}`, ledger.DemoOrganizer.Hex()),
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Invalid transaction hash"}`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, "/api/organizer/events/created", tt.body)

			s.Equal(tt.wantCode, rec.Code)
			s.JSONEq(tt.wantBody, rec.Body.String())
		})
	}
}

func (s *OrganizerPublicTestSuite) TestGetEvents() {
	tests := []struct {
		name     string
		query    string
		wantCode int
		wantIDs  []uint64
	}{
		{
			name:     "when organizer has events",
			query:    "?address=" + ledger.DemoOrganizer.Hex(),
			wantCode: http.StatusOK,
			wantIDs:  []uint64{3, 1},
		},
		{
			name:     "when organizer has none",
			query:    "?address=0x0000000000000000000000000000000000000001",
			wantCode: http.StatusOK,
		},
		{
			name:     "when address missing",
			query:    "",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "when address invalid",
			query:    "?address=0xzz",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodGet, "/api/organizer/events"+tt.query, "")

			s.Equal(tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			var got organizer.EventsResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
			var ids []uint64
			for _, e := range got.Events {
				ids = append(ids, e.ID)
			}
			s.Equal(tt.wantIDs, ids)
			s.Equal(len(tt.wantIDs), got.Pagination.TotalEvents)
		})
	}
}

func TestOrganizerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizerPublicTestSuite))
}
