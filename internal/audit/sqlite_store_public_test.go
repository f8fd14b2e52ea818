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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/crossfi-tickets/ticketgate/internal/audit"
	"github.com/crossfi-tickets/ticketgate/internal/audit/export"
)

type SQLiteStorePublicTestSuite struct {
	suite.Suite

	ctx   context.Context
	path  string
	store *audit.SQLiteStore
}

func (s *SQLiteStorePublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "data", "audit.db")

	store, err := audit.OpenSQLite(s.ctx, slog.New(slog.DiscardHandler), s.path)
	s.Require().NoError(err)
	s.store = store
}

func (s *SQLiteStorePublicTestSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func newEntry(
	id string,
	ts time.Time,
	allowed bool,
) audit.Entry {
	reason := "not_owner"
	if allowed {
		reason = "allowed"
	}

	return audit.Entry{
		ID:         id,
		Timestamp:  ts,
		Kind:       audit.KindAccess,
		TicketID:   12,
		EventID:    3,
		Address:    "0x1f9031A2beA086a591e9872FE3A26F01570A8B2A",
		Allowed:    allowed,
		Reason:     reason,
		SourceIP:   "127.0.0.1",
		RequestID:  "req-" + id,
		DurationMs: 4,
	}
}

func (s *SQLiteStorePublicTestSuite) TestWriteGet() {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Write(s.ctx, newEntry("a", ts, true)))

	tests := []struct {
		name         string
		id           string
		validateFunc func(entry *audit.Entry, err error)
	}{
		{
			name: "when entry exists returns all fields",
			id:   "a",
			validateFunc: func(entry *audit.Entry, err error) {
				s.Require().NoError(err)
				s.Equal(newEntry("a", ts, true), *entry)
			},
		},
		{
			name: "when entry missing returns not found",
			id:   "missing",
			validateFunc: func(entry *audit.Entry, err error) {
				s.Nil(entry)
				s.True(errors.Is(err, audit.ErrNotFound))
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			entry, err := s.store.Get(s.ctx, tt.id)
			tt.validateFunc(entry, err)
		})
	}
}

func (s *SQLiteStorePublicTestSuite) TestWriteDuplicateID() {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Write(s.ctx, newEntry("dup", ts, true)))

	err := s.store.Write(s.ctx, newEntry("dup", ts, false))

	s.Error(err)
	s.Contains(err.Error(), "insert audit entry")
}

func (s *SQLiteStorePublicTestSuite) TestList() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		entry := newEntry(fmt.Sprintf("e%d", i), base.Add(time.Duration(i)*time.Minute), i%2 == 0)
		s.Require().NoError(s.store.Write(s.ctx, entry))
	}

	tests := []struct {
		name    string
		limit   int
		offset  int
		wantIDs []string
	}{
		{name: "first page newest first", limit: 2, offset: 0, wantIDs: []string{"e4", "e3"}},
		{name: "second page", limit: 2, offset: 2, wantIDs: []string{"e2", "e1"}},
		{name: "last partial page", limit: 2, offset: 4, wantIDs: []string{"e0"}},
		{name: "offset past end", limit: 2, offset: 10, wantIDs: []string{}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			entries, total, err := s.store.List(s.ctx, tt.limit, tt.offset)

			s.Require().NoError(err)
			s.Equal(5, total)

			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			s.Equal(tt.wantIDs, ids)
		})
	}
}

func (s *SQLiteStorePublicTestSuite) TestReopenKeepsEntries() {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Write(s.ctx, newEntry("kept", ts, true)))
	s.Require().NoError(s.store.Close())

	reopened, err := audit.OpenSQLite(s.ctx, slog.New(slog.DiscardHandler), s.path)
	s.Require().NoError(err)
	s.store = reopened

	entry, err := s.store.Get(s.ctx, "kept")
	s.Require().NoError(err)
	s.Equal("allowed", entry.Reason)
	s.NoError(s.store.Ping(s.ctx))
}

func (s *SQLiteStorePublicTestSuite) TestExportFromStore() {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		s.Require().NoError(s.store.Write(s.ctx, newEntry(fmt.Sprintf("x%d", i), ts, true)))
	}

	exporter := &collectingExporter{}
	result, err := export.Run(
		s.ctx,
		slog.New(slog.DiscardHandler),
		export.StoreFetcher(s.store),
		exporter,
		2,
		nil,
	)

	s.Require().NoError(err)
	s.Equal(3, result.TotalEntries)
	s.Equal(3, result.ExportedEntries)
	s.Len(exporter.entries, 3)
}

func (s *SQLiteStorePublicTestSuite) TestOpenSQLiteEmptyPath() {
	_, err := audit.OpenSQLite(s.ctx, slog.New(slog.DiscardHandler), "")

	s.Error(err)
	s.Contains(err.Error(), "sqlite path cannot be empty")
}

func TestSQLiteStorePublicTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStorePublicTestSuite))
}

type collectingExporter struct {
	entries []audit.Entry
}

func (c *collectingExporter) Open(
	_ context.Context,
) error {
	return nil
}

func (c *collectingExporter) Write(
	_ context.Context,
	entry audit.Entry,
) error {
	c.entries = append(c.entries, entry)
	return nil
}

func (c *collectingExporter) Close(
	_ context.Context,
) error {
	return nil
}
