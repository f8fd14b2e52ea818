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

// Package event provides the event catalogue and purchase preparation
// handlers.
package event

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/ledger"
)

// Pagination defaults.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	defaultPublic   = "http://localhost:3000"
)

// Options configures the event handlers.
type Options struct {
	// MaxEventID is the highest id scanned when listing.
	MaxEventID uint64
	// ContractAddress of the event manager, returned for transactions.
	ContractAddress string
	// ListingFee quoted to organizers, in whole tokens.
	ListingFee string
	// PublicURL is the base of the public event page links.
	PublicURL string
}

// Event implementation of the event endpoints.
type Event struct {
	// Reader reads events and tiers.
	Reader ledger.Reader
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	reader ledger.Reader,
	opts Options,
) *Event {
	if opts.PublicURL == "" {
		opts.PublicURL = defaultPublic
	}

	return &Event{
		Reader: reader,
		opts:   opts,
		logger: logger.With(slog.String("component", "api.event")),
		now:    time.Now,
	}
}

// RegisterHandlers mounts the event routes.
func RegisterHandlers(
	e *echo.Echo,
	ev *Event,
) {
	e.GET("/api/events", ev.GetEvents)
	e.POST("/api/events", ev.PostEvent)
	e.GET("/api/events/:id", ev.GetEvent)
	e.POST("/api/events/:id/purchase", ev.PostPurchase)
}
