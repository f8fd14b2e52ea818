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

package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	"github.com/crossfi-tickets/ticketgate/internal/ledger/mocks"
)

type ScanPublicTestSuite struct {
	suite.Suite

	ctx    context.Context
	reader *ledger.MemoryReader
}

func (s *ScanPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.reader = ledger.DemoFixtures(time.Unix(1_700_000_000, 0))
}

func (s *ScanPublicTestSuite) TestScanEvents() {
	tests := []struct {
		name    string
		maxID   uint64
		keep    func(ledger.Event) bool
		wantIDs []uint64
	}{
		{
			name:    "when no filter returns all newest first",
			maxID:   100,
			wantIDs: []uint64{3, 2, 1},
		},
		{
			name:  "when filtered by organizer",
			maxID: 100,
			keep: func(e ledger.Event) bool {
				return e.Organizer == ledger.DemoOrganizer
			},
			wantIDs: []uint64{3, 1},
		},
		{
			name:    "when max id bounds the scan",
			maxID:   2,
			wantIDs: []uint64{2, 1},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			events, err := ledger.ScanEvents(s.ctx, s.reader, tt.maxID, tt.keep)

			s.Require().NoError(err)
			var ids []uint64
			for _, e := range events {
				ids = append(ids, e.ID)
			}
			s.Equal(tt.wantIDs, ids)
		})
	}
}

func (s *ScanPublicTestSuite) TestScanEventsUnavailable() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().
		GetEvent(gomock.Any(), gomock.Any()).
		Return(ledger.Event{}, fmt.Errorf("%w: dial tcp: timeout", ledger.ErrUnavailable)).
		AnyTimes()

	events, err := ledger.ScanEvents(s.ctx, mock, 5, nil)

	s.Nil(events)
	s.True(errors.Is(err, ledger.ErrUnavailable))
}

func (s *ScanPublicTestSuite) TestResolve() {
	tests := []struct {
		name      string
		id        uint64
		expectErr error
		validate  func(rt ledger.ResolvedTicket)
	}{
		{
			name: "when ticket exists joins event and tier",
			id:   1,
			validate: func(rt ledger.ResolvedTicket) {
				s.Equal(uint64(1), rt.Event.ID)
				s.Equal("VIP", rt.Tier.Name)
			},
		},
		{
			name:      "when ticket missing returns not found",
			id:        42,
			expectErr: ledger.ErrNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rt, err := ledger.Resolve(s.ctx, s.reader, tt.id)

			if tt.expectErr != nil {
				s.True(errors.Is(err, tt.expectErr))
				return
			}

			s.Require().NoError(err)
			tt.validate(rt)
		})
	}
}

func (s *ScanPublicTestSuite) TestResolveAll() {
	var skipped []uint64

	got := ledger.ResolveAll(s.ctx, s.reader, []uint64{2, 99, 1}, func(id uint64, _ error) {
		skipped = append(skipped, id)
	})

	s.Require().Len(got, 2)
	s.Equal(uint64(2), got[0].Ticket.ID)
	s.Equal(uint64(1), got[1].Ticket.ID)
	s.Equal([]uint64{99}, skipped)
}

func TestScanPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ScanPublicTestSuite))
}
