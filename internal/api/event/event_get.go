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
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	"github.com/crossfi-tickets/ticketgate/internal/ticket"
)

const msgEventNotFound = "Event not found"

// GetEvent returns an active event with its tiers.
func (ev *Event) GetEvent(
	c echo.Context,
) error {
	id, ok := common.ParseID(c.Param("id"))
	if !ok {
		return common.JSONError(c, http.StatusBadRequest, "Invalid event ID", "")
	}

	ctx := c.Request().Context()
	event, err := ev.Reader.GetEvent(ctx, id)
	if err != nil {
		return common.LedgerError(c, err, msgEventNotFound)
	}
	if !event.Active {
		return common.JSONError(c, http.StatusNotFound, msgEventNotFound, "")
	}

	tiers := make([]ledger.Tier, 0, event.TierCount)
	for tierID := uint64(0); tierID < event.TierCount; tierID++ {
		tier, err := ev.Reader.GetTier(ctx, id, tierID)
		if errors.Is(err, ledger.ErrNotFound) {
			continue
		}
		if err != nil {
			ev.logger.Warn(
				"tier unavailable",
				slog.Uint64("event_id", id),
				slog.Uint64("tier_id", tierID),
				slog.String("error", err.Error()),
			)
			return common.LedgerError(c, err, msgEventNotFound)
		}
		tier.ID = tierID
		tiers = append(tiers, tier)
	}

	return c.JSON(http.StatusOK, ticket.ProjectEvent(event, ev.now(), tiers...))
}
