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

package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// ensure SQLiteStore implements Store at compile time.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store backed by a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (creating when needed) the database at path, applies
// migrations and returns a store using a single connection.
func OpenSQLite(
	ctx context.Context,
	logger *slog.Logger,
	path string,
) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir audit db dir: %w", err)
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping audit db: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Write inserts an entry.
func (s *SQLiteStore) Write(
	ctx context.Context,
	entry Entry,
) error {
	var allowed int
	if entry.Allowed {
		allowed = 1
	}

	if _, err := s.db.ExecContext(ctx, `
INSERT INTO access_log(
  id, ts_ms, kind, ticket_id, event_id, address, allowed,
  reason, source_ip, request_id, duration_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
		entry.ID,
		entry.Timestamp.UTC().UnixMilli(),
		string(entry.Kind),
		int64(entry.TicketID),
		int64(entry.EventID),
		entry.Address,
		allowed,
		entry.Reason,
		entry.SourceIP,
		entry.RequestID,
		entry.DurationMs,
	); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	return nil
}

// Get retrieves a single entry by ID.
func (s *SQLiteStore) Get(
	ctx context.Context,
	id string,
) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?;", id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get audit entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get audit entry: %w", err)
	}

	return &entry, nil
}

// List retrieves entries newest first with pagination.
func (s *SQLiteStore) List(
	ctx context.Context,
	limit int,
	offset int,
) ([]Entry, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM access_log;").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	rows, err := s.db.QueryContext(
		ctx,
		selectColumns+" ORDER BY ts_ms DESC, id DESC LIMIT ? OFFSET ?;",
		limit,
		offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			s.logger.Warn(
				"failed to scan audit entry",
				slog.String("error", err.Error()),
			)
			continue
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, total, nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(
	ctx context.Context,
) error {
	return s.db.PingContext(ctx)
}

const selectColumns = `
SELECT id, ts_ms, kind, ticket_id, event_id, address, allowed,
       reason, source_ip, request_id, duration_ms
FROM access_log`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(
	row scanner,
) (Entry, error) {
	var (
		e        Entry
		tsMs     int64
		kind     string
		ticketID int64
		eventID  int64
		allowed  int
	)

	if err := row.Scan(
		&e.ID,
		&tsMs,
		&kind,
		&ticketID,
		&eventID,
		&e.Address,
		&allowed,
		&e.Reason,
		&e.SourceIP,
		&e.RequestID,
		&e.DurationMs,
	); err != nil {
		return Entry{}, err
	}

	e.Timestamp = time.UnixMilli(tsMs).UTC()
	e.Kind = Kind(kind)
	e.TicketID = uint64(ticketID)
	e.EventID = uint64(eventID)
	e.Allowed = allowed == 1

	return e, nil
}
