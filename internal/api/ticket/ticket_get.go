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

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/access"
	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/audit"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	ticketview "github.com/crossfi-tickets/ticketgate/internal/ticket"
)

// GetTicket returns a ticket to the wallet that purchased it. The caller
// proves control of the wallet with a signed challenge in the query.
func (t *Ticket) GetTicket(
	c echo.Context,
) error {
	id, ok := common.ParseID(c.Param("id"))
	if !ok {
		return common.JSONError(c, http.StatusBadRequest, "Invalid ticket ID", "")
	}

	ctx := c.Request().Context()
	req := access.Request{
		TicketID:       id,
		ClaimedAddress: c.QueryParam("address"),
		Signature:      c.QueryParam("signature"),
		Message:        c.QueryParam("message"),
		ObservedAt:     t.now(),
	}

	d := t.Authorizer.Decide(ctx, req)

	entry := audit.Entry{
		Kind:     audit.KindAccess,
		TicketID: id,
		Address:  req.ClaimedAddress,
		Allowed:  d.Allowed,
		Reason:   d.Reason.String(),
	}
	if d.Ticket != nil {
		entry.EventID = d.Ticket.EventID
	}
	common.RecordDecision(c, entry)

	if !d.Allowed {
		return c.JSON(d.Reason.HTTPStatus(), DeniedResponse{
			Error:  d.Reason.Message(),
			Detail: d.Detail,
			Reason: d.Reason.String(),
		})
	}

	rt, err := ledger.ResolveInfo(ctx, t.Reader, *d.Ticket)
	if err != nil {
		t.logger.Warn(
			"ticket details unavailable",
			slog.Uint64("ticket_id", id),
			slog.String("error", err.Error()),
		)
		return common.LedgerError(c, err, "Ticket not found")
	}

	return c.JSON(http.StatusOK, AccessResponse{
		View:               ticketview.Project(rt.Ticket, rt.Event, rt.Tier, t.now()),
		BlockchainVerified: true,
		PurchaserVerified:  true,
		SignatureValid:     true,
	})
}
