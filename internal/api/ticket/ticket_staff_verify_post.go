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
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/audit"
	"github.com/crossfi-tickets/ticketgate/internal/authtoken"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	ticketview "github.com/crossfi-tickets/ticketgate/internal/ticket"
)

// PostStaffVerify checks a scanned ticket at the door. The staff code is a
// token scoped to the event being checked.
func (t *Ticket) PostStaffVerify(
	c echo.Context,
) error {
	var body StaffVerifyRequest
	if err := c.Bind(&body); err != nil {
		return common.JSONError(c, http.StatusBadRequest, common.MsgInvalidBody, "")
	}

	eventID := uint64(body.EventID)
	if strings.TrimSpace(body.QRData) == "" || strings.TrimSpace(body.StaffCode) == "" || eventID == 0 {
		return common.JSONError(c, http.StatusBadRequest, "qrData, staffCode and eventId are required", "")
	}

	entry := audit.Entry{
		Kind:    audit.KindStaffVerify,
		EventID: eventID,
	}

	claims, err := t.Tokens.Authorize(
		body.StaffCode,
		t.SigningKey,
		eventID,
		authtoken.PermTicketVerify,
		t.CustomRoles,
	)
	if err != nil {
		t.logger.Info(
			"staff code rejected",
			slog.Uint64("event_id", eventID),
			slog.String("error", err.Error()),
		)
		entry.Reason = ReasonInvalidToken
		common.RecordDecision(c, entry)
		return common.JSONError(c, http.StatusUnauthorized, "Invalid staff code", "")
	}
	entry.Address = claims.Subject

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

	if rt.Ticket.EventID != eventID {
		entry.Reason = ReasonWrongEvent
		common.RecordDecision(c, entry)
		return common.JSONError(c, http.StatusBadRequest, msgTicketWrongEvent, "")
	}

	entry.Allowed = true
	entry.Reason = ReasonVerified
	common.RecordDecision(c, entry)

	result := ticketview.Verify(rt.Ticket, rt.Event, rt.Tier, t.now())
	result.StaffVerified = true
	result.QRData = body.QRData

	return c.JSON(http.StatusOK, result)
}
