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

package event

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
	"github.com/crossfi-tickets/ticketgate/internal/ticket"
)

// GetEvents lists active events newest first, optionally for a single
// organizer.
func (ev *Event) GetEvents(
	c echo.Context,
) error {
	page, ok := queryInt(c, "page", 1)
	if !ok || page < 1 {
		return common.JSONError(c, http.StatusBadRequest, "Invalid page", "")
	}

	limit, ok := queryInt(c, "limit", DefaultPageSize)
	if !ok || limit < 1 || limit > MaxPageSize {
		return common.JSONError(c, http.StatusBadRequest, "Invalid limit", "")
	}

	organizer := c.QueryParam("organizer")
	if organizer != "" && !signature.IsAddress(organizer) {
		return common.JSONError(c, http.StatusBadRequest, "Invalid organizer address", "")
	}

	events, err := ledger.ScanEvents(
		c.Request().Context(),
		ev.Reader,
		ev.opts.MaxEventID,
		func(e ledger.Event) bool {
			if !e.Active {
				return false
			}
			return organizer == "" || signature.AddressesEqual(e.Organizer.Hex(), organizer)
		},
	)
	if err != nil {
		ev.logger.Warn(
			"event scan failed",
			slog.String("error", err.Error()),
		)
		return common.LedgerError(c, err, "Event not found")
	}

	return c.JSON(http.StatusOK, ListResponse{
		Events:             Page(events, page, limit, ev.now),
		Pagination:         Paginate(len(events), page, limit),
		BlockchainVerified: true,
	})
}

// Paginate computes the pagination block for total items.
func Paginate(
	total int,
	page int,
	limit int,
) Pagination {
	pages := (total + limit - 1) / limit

	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalEvents: total,
		HasNext:     page*limit < total,
		HasPrev:     page > 1,
	}
}

// Page projects the events on the requested page.
func Page(
	events []ledger.Event,
	page int,
	limit int,
	now func() time.Time,
) []ticket.EventView {
	start := (page - 1) * limit
	if start >= len(events) {
		return []ticket.EventView{}
	}
	end := min(start+limit, len(events))

	ts := now()
	views := make([]ticket.EventView, 0, end-start)
	for _, e := range events[start:end] {
		views = append(views, ticket.ProjectEvent(e, ts))
	}

	return views
}

func queryInt(
	c echo.Context,
	name string,
	fallback int,
) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return n, true
}
