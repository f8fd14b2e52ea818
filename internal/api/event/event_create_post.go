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
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/listing"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
)

// PostEvent validates a signed event draft and returns the payload for the
// create transaction. Nothing is written to the ledger.
func (ev *Event) PostEvent(
	c echo.Context,
) error {
	var body CreateRequest
	if err := c.Bind(&body); err != nil {
		return common.JSONError(c, http.StatusBadRequest, common.MsgInvalidBody, "")
	}

	if strings.TrimSpace(body.Signature) == "" || body.Message == "" ||
		strings.TrimSpace(body.Organizer) == "" {
		return common.JSONError(
			c,
			http.StatusBadRequest,
			"Missing required authentication fields: signature, message, organizerAddress",
			"",
		)
	}

	if status, msg, ok := verifySigner(body.Message, body.Signature, body.Organizer); !ok {
		return common.JSONError(c, status, msg, "")
	}

	now := ev.now()
	prepared, tiers, err := body.Prepare(now, true)
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, listing.Message(err), "")
	}

	tempID := now.UnixMilli()

	return c.JSON(http.StatusOK, CreateResponse{
		Success:   true,
		EventData: prepared,
		Tiers:     tiers,
		TransactionInfo: TransactionInfo{
			ContractAddress: ev.opts.ContractAddress,
			ListingFee:      ev.opts.ListingFee,
			FeeTokenType:    prepared.FeeTokenType,
			TempEventID:     tempID,
			PublicURL:       fmt.Sprintf("%s/event/%d", strings.TrimRight(ev.opts.PublicURL, "/"), tempID),
		},
		Message: "Event ready to create - confirm transaction in your wallet",
	})
}

// verifySigner checks that address signed message.
func verifySigner(
	message string,
	sig string,
	address string,
) (int, string, bool) {
	signer, err := signature.RecoverSigner(message, sig)
	if err != nil {
		return http.StatusUnauthorized, "Signature validation failed", false
	}

	if !signature.AddressesEqual(signer.Hex(), address) {
		return http.StatusUnauthorized, "Invalid signature", false
	}

	return 0, "", true
}
