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

// Package audit records ticket access decisions and provides storage for them.
package audit

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no entry has the requested ID.
var ErrNotFound = errors.New("audit entry not found")

// Kind identifies which gate produced an entry.
type Kind string

// Entry kinds.
const (
	KindAccess         Kind = "access"
	KindStaffVerify    Kind = "staff_verify"
	KindOrganizerCheck Kind = "organizer_verify"
)

// Entry represents a single recorded access decision.
type Entry struct {
	// ID is the unique identifier for this audit entry.
	ID string `json:"id"`
	// Timestamp is when the decision was made.
	Timestamp time.Time `json:"timestamp"`
	// Kind is the gate that produced the decision.
	Kind Kind `json:"kind"`
	// TicketID is the ticket the request targeted.
	TicketID uint64 `json:"ticket_id"`
	// EventID is the event of the ticket, when known.
	EventID uint64 `json:"event_id,omitempty"`
	// Address is the claimed wallet, organizer address or staff subject.
	Address string `json:"address,omitempty"`
	// Allowed reports whether access was granted.
	Allowed bool `json:"allowed"`
	// Reason is the machine readable decision reason.
	Reason string `json:"reason"`
	// SourceIP is the client's IP address.
	SourceIP string `json:"source_ip,omitempty"`
	// RequestID is the X-Request-ID of the HTTP request.
	RequestID string `json:"request_id,omitempty"`
	// DurationMs is the decision time in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}

// Store persists and queries audit entries.
type Store interface {
	// Write persists an entry.
	Write(ctx context.Context, entry Entry) error
	// Get returns the entry with the given ID.
	Get(ctx context.Context, id string) (*Entry, error)
	// List returns entries newest first along with the total count.
	List(ctx context.Context, limit int, offset int) ([]Entry, int, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
