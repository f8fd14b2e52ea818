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

package organizer

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
	"github.com/crossfi-tickets/ticketgate/internal/ticket"
)

// GetEvents lists the active events of one organizer, newest first.
func (o *Organizer) GetEvents(
	c echo.Context,
) error {
	address := c.QueryParam("address")
	if address == "" {
		return common.JSONError(c, http.StatusBadRequest, "Organizer address is required", "")
	}
	if !signature.IsAddress(address) {
		return common.JSONError(c, http.StatusBadRequest, "Invalid organizer address", "")
	}

	events, err := ledger.ScanEvents(
		c.Request().Context(),
		o.Reader,
		o.opts.MaxEventID,
		func(e ledger.Event) bool {
			return e.Active && signature.AddressesEqual(e.Organizer.Hex(), address)
		},
	)
	if err != nil {
		o.logger.Warn(
			"organizer event scan failed",
			slog.String("organizer", address),
			slog.String("error", err.Error()),
		)
		return common.LedgerError(c, err, "Event not found")
	}

	now := o.now()
	views := make([]ticket.EventView, 0, len(events))
	for _, e := range events {
		views = append(views, ticket.ProjectEvent(e, now))
	}

	pages := 0
	if len(views) > 0 {
		pages = 1
	}

	return c.JSON(http.StatusOK, EventsResponse{
		Events: views,
		Pagination: Pagination{
			CurrentPage: 1,
			TotalPages:  pages,
			TotalEvents: len(views),
		},
	})
}
