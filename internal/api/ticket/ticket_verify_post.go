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
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/audit"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
	ticketview "github.com/crossfi-tickets/ticketgate/internal/ticket"
)

// Verification reasons recorded in the audit log.
const (
	ReasonVerified      = "allowed"
	ReasonInvalidQR     = "invalid_qr"
	ReasonNotFound      = "ticket_not_found"
	ReasonUnavailable   = "service_unavailable"
	ReasonNotOrganizer  = "not_organizer"
	ReasonInvalidToken  = "invalid_staff_code"
	ReasonWrongEvent    = "event_mismatch"
	msgTicketNotFound   = "Ticket not found"
	msgInvalidQR        = "Invalid QR code format"
	msgNotOrganizer     = "Only the event organizer can verify this ticket"
	msgTicketWrongEvent = "Ticket does not belong to this event"
)

// PostVerify checks a scanned ticket on behalf of the event organizer.
func (t *Ticket) PostVerify(
	c echo.Context,
) error {
	var body VerifyRequest
	if err := c.Bind(&body); err != nil {
		return common.JSONError(c, http.StatusBadRequest, common.MsgInvalidBody, "")
	}

	if strings.TrimSpace(body.QRData) == "" || strings.TrimSpace(body.OrganizerAddress) == "" {
		return common.JSONError(c, http.StatusBadRequest, "Both qrData and organizerAddress are required", "")
	}

	if !signature.IsAddress(body.OrganizerAddress) {
		return common.JSONError(c, http.StatusBadRequest, "Invalid organizer address", "")
	}

	entry := audit.Entry{
		Kind:    audit.KindOrganizerCheck,
		Address: body.OrganizerAddress,
	}

	payload, err := ticketview.ParseQR(body.QRData)
	if err != nil {
		entry.Reason = ReasonInvalidQR
		common.RecordDecision(c, entry)
		return common.JSONError(c, http.StatusBadRequest, msgInvalidQR, "")
	}
	entry.TicketID = uint64(payload.TicketID)

	rt, err := ledger.Resolve(c.Request().Context(), t.Reader, entry.TicketID)
	if err != nil {
		return t.resolveFailed(c, entry, err)
	}
	entry.EventID = rt.Ticket.EventID

	if !signature.AddressesEqual(rt.Event.Organizer.Hex(), body.OrganizerAddress) {
		entry.Reason = ReasonNotOrganizer
		common.RecordDecision(c, entry)
		return common.JSONError(c, http.StatusForbidden, msgNotOrganizer, "")
	}

	entry.Allowed = true
	entry.Reason = ReasonVerified
	common.RecordDecision(c, entry)

	return c.JSON(http.StatusOK, ticketview.Verify(rt.Ticket, rt.Event, rt.Tier, t.now()))
}

// resolveFailed records and answers a failed ticket lookup.
func (t *Ticket) resolveFailed(
	c echo.Context,
	entry audit.Entry,
	err error,
) error {
	if errors.Is(err, ledger.ErrNotFound) {
		entry.Reason = ReasonNotFound
		common.RecordDecision(c, entry)
		return c.JSON(http.StatusNotFound, NotFoundResponse{
			Error:  msgTicketNotFound,
			Valid:  false,
			Reason: "Ticket does not exist on blockchain",
		})
	}

	t.logger.Warn(
		"ticket verification unavailable",
		slog.Uint64("ticket_id", entry.TicketID),
		slog.String("error", err.Error()),
	)
	entry.Reason = ReasonUnavailable
	common.RecordDecision(c, entry)

	return common.JSONError(c, http.StatusServiceUnavailable, common.MsgLedgerUnavailable, "")
}
