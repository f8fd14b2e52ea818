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

package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/crossfi-tickets/ticketgate/internal/audit"
)

type CommandsTestSuite struct {
	suite.Suite
}

func (s *CommandsTestSuite) TestAuditSection() {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		entries  []audit.Entry
		wantRows [][]string
	}{
		{
			name:     "when no entries",
			entries:  nil,
			wantRows: [][]string{},
		},
		{
			name: "when entries present renders one row each",
			entries: []audit.Entry{
				{
					Timestamp: now.Add(-2 * time.Hour),
					Kind:      audit.KindAccess,
					TicketID:  7,
					EventID:   1,
					Allowed:   false,
					Reason:    "not_owner",
					Address:   "0xabc",
					SourceIP:  "203.0.113.9",
				},
			},
			wantRows: [][]string{
				{"2 hours ago", "access", "7", "1", "no", "not_owner", "0xabc", "203.0.113.9"},
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			section := auditSection(tt.entries, now)

			s.Len(section.Headers, 8)
			s.Equal(tt.wantRows, section.Rows)
		})
	}
}

func (s *CommandsTestSuite) TestValidateRoles() {
	tests := []struct {
		name    string
		roles   []string
		wantErr bool
	}{
		{
			name:  "when staff",
			roles: []string{"staff"},
		},
		{
			name:  "when staff and organizer",
			roles: []string{"staff", "organizer"},
		},
		{
			name:    "when unknown role",
			roles:   []string{"admin"},
			wantErr: true,
		},
		{
			name:    "when empty",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := validateRoles(tt.roles)

			if tt.wantErr {
				s.Error(err)
				return
			}
			s.NoError(err)
		})
	}
}

func TestCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(CommandsTestSuite))
}
