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

package ticket

import (
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"

	apicommon "github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
	ticketview "github.com/crossfi-tickets/ticketgate/internal/ticket"
)

// GetUserTickets lists every readable ticket purchased by a wallet.
func (t *Ticket) GetUserTickets(
	c echo.Context,
) error {
	address := c.Param("address")
	if !signature.IsAddress(address) {
		return apicommon.JSONError(c, http.StatusBadRequest, "Invalid user address", "")
	}

	ctx := c.Request().Context()
	ids, err := t.Reader.GetUserTickets(ctx, common.HexToAddress(address))
	if err != nil {
		t.logger.Warn(
			"user tickets unavailable",
			slog.String("address", address),
			slog.String("error", err.Error()),
		)
		return apicommon.LedgerError(c, err, "User not found")
	}

	resolved := ledger.ResolveAll(ctx, t.Reader, ids, func(id uint64, err error) {
		t.logger.Warn(
			"skipping unreadable ticket",
			slog.Uint64("ticket_id", id),
			slog.String("error", err.Error()),
		)
	})

	now := t.now()
	views := make([]ticketview.View, 0, len(resolved))
	for _, rt := range resolved {
		views = append(views, ticketview.Project(rt.Ticket, rt.Event, rt.Tier, now))
	}

	return c.JSON(http.StatusOK, UserTicketsResponse{
		Tickets:            views,
		TotalTickets:       len(views),
		UserAddress:        address,
		BlockchainVerified: true,
	})
}
