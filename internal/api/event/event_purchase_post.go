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
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	"github.com/crossfi-tickets/ticketgate/internal/listing"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
)

// PostPurchase prices a signed purchase against the live tier supply.
func (ev *Event) PostPurchase(
	c echo.Context,
) error {
	id, ok := common.ParseID(c.Param("id"))
	if !ok {
		return common.JSONError(c, http.StatusBadRequest, "Invalid event ID", "")
	}

	var body PurchaseRequest
	if err := c.Bind(&body); err != nil {
		return common.JSONError(c, http.StatusBadRequest, common.MsgInvalidBody, "")
	}

	if body.TierID == nil || strings.TrimSpace(body.BuyerAddress) == "" ||
		strings.TrimSpace(body.Signature) == "" || body.Message == "" {
		return common.JSONError(
			c,
			http.StatusBadRequest,
			"Missing required fields: tierId, buyerAddress, signature, message",
			"",
		)
	}

	if !signature.IsAddress(body.BuyerAddress) {
		return common.JSONError(c, http.StatusBadRequest, "Invalid buyer address", "")
	}

	if status, msg, ok := verifySigner(body.Message, body.Signature, body.BuyerAddress); !ok {
		return common.JSONError(c, status, msg, "")
	}

	ctx := c.Request().Context()
	event, err := ev.Reader.GetEvent(ctx, id)
	if err != nil {
		return common.LedgerError(c, err, msgEventNotFound)
	}
	if !event.Active {
		return common.JSONError(c, http.StatusNotFound, msgEventNotFound, "")
	}

	tierID := uint64(*body.TierID)
	tier, err := ev.Reader.GetTier(ctx, id, tierID)
	if err != nil {
		return common.LedgerError(c, err, "Tier not found")
	}
	tier.ID = tierID

	quote, err := listing.NewQuote(id, tier, body.BuyerAddress, uint64(body.AttendeeCount), ev.now())
	switch {
	case errors.Is(err, listing.ErrInsufficientSupply):
		return common.JSONError(c, http.StatusBadRequest, "Not enough tickets available for this tier", "")
	case errors.Is(err, listing.ErrTierInactive):
		return common.JSONError(c, http.StatusBadRequest, "Tier is not on sale", "")
	case err != nil:
		return common.JSONError(c, http.StatusInternalServerError, "Failed to process ticket purchase", "")
	}

	return c.JSON(http.StatusOK, PurchaseResponse{
		Success: true,
		PurchaseDetails: PurchaseDetails{
			Quote:   quote,
			Message: "Ready to purchase - confirm transaction in your wallet",
		},
	})
}
