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
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
)

const txHashLength = 32

// PostCreated records that an organizer's create transaction was mined and
// returns its explorer link.
func (o *Organizer) PostCreated(
	c echo.Context,
) error {
	var body CreatedRequest
	if err := c.Bind(&body); err != nil {
		return common.JSONError(c, http.StatusBadRequest, common.MsgInvalidBody, "")
	}

	if body.EventID == 0 || body.TransactionHash == "" || body.OrganizerAddress == "" {
		return common.JSONError(
			c,
			http.StatusBadRequest,
			"Missing required fields: eventId, transactionHash, organizerAddress",
			"",
		)
	}

	if b, err := hexutil.Decode(body.TransactionHash); err != nil || len(b) != txHashLength {
		return common.JSONError(c, http.StatusBadRequest, "Invalid transaction hash", "")
	}

	if !signature.IsAddress(body.OrganizerAddress) {
		return common.JSONError(c, http.StatusBadRequest, "Invalid organizer address", "")
	}

	o.logger.Info(
		"event creation recorded",
		slog.Uint64("event_id", uint64(body.EventID)),
		slog.String("transaction_hash", body.TransactionHash),
		slog.String("organizer", body.OrganizerAddress),
	)

	return c.JSON(http.StatusOK, CreatedResponse{
		Success:     true,
		Message:     "Event creation recorded successfully",
		EventID:     uint64(body.EventID),
		ExplorerURL: strings.TrimRight(o.opts.ExplorerURL, "/") + "/tx/" + body.TransactionHash,
	})
}
