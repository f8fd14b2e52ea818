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
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultQueueSize is the number of entries buffered before Record drops.
const DefaultQueueSize = 256

// Recorder writes entries to a Store from a single background goroutine so
// request handlers never wait on storage.
type Recorder struct {
	store   Store
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.RWMutex
	closed  bool
	entries chan Entry
	done    chan struct{}
}

// NewRecorder starts a recorder draining into store.
func NewRecorder(
	logger *slog.Logger,
	store Store,
	queueSize int,
) *Recorder {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	r := &Recorder{
		store:   store,
		logger:  logger.With(slog.String("component", "audit")),
		timeout: 5 * time.Second,
		entries: make(chan Entry, queueSize),
		done:    make(chan struct{}),
	}
	go r.loop()

	return r
}

// Record enqueues an entry, filling ID and Timestamp when empty. It never
// blocks; when the queue is full the entry is dropped and logged. Entries
// recorded after Close are discarded.
func (r *Recorder) Record(
	entry Entry,
) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return
	}

	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	select {
	case r.entries <- entry:
	default:
		r.logger.Warn(
			"audit queue full, dropping entry",
			slog.String("reason", entry.Reason),
			slog.Uint64("ticket_id", entry.TicketID),
		)
	}
}

// Close stops accepting entries and waits for the queue to drain.
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.entries)
	}
	r.mu.Unlock()

	<-r.done
}

func (r *Recorder) loop() {
	defer close(r.done)

	for entry := range r.entries {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		if err := r.store.Write(ctx, entry); err != nil {
			r.logger.Error(
				"failed to write audit entry",
				slog.String("id", entry.ID),
				slog.String("error", err.Error()),
			)
		}
		cancel()
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
