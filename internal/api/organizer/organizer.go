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

// Package organizer provides the organizer event management handlers.
package organizer

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/ledger"
)

// Options configures the organizer handlers.
type Options struct {
	// MaxEventID is the highest id scanned when listing.
	MaxEventID uint64
	// ContractAddress of the event manager.
	ContractAddress string
	// ListingFee quoted to organizers, in whole tokens.
	ListingFee string
	// GasLimit quoted for the create transaction.
	GasLimit string
	// ExplorerURL is the block explorer base.
	ExplorerURL string
}

// Organizer implementation of the organizer endpoints.
type Organizer struct {
	// Reader reads events.
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
) *Organizer {
	return &Organizer{
		Reader: reader,
		opts:   opts,
		logger: logger.With(slog.String("component", "api.organizer")),
		now:    time.Now,
	}
}

// RegisterHandlers mounts the organizer routes.
func RegisterHandlers(
	e *echo.Echo,
	o *Organizer,
) {
	e.POST("/api/organizer/events/prepare", o.PostPrepare)
	e.POST("/api/organizer/events/created", o.PostCreated)
	e.GET("/api/organizer/events", o.GetEvents)
}
