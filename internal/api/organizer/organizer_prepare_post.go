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
	"github.com/crossfi-tickets/ticketgate/internal/listing"
)

// PostPrepare validates an event draft and returns the create payload.
func (o *Organizer) PostPrepare(
	c echo.Context,
) error {
	var draft listing.Draft
	if err := c.Bind(&draft); err != nil {
		return common.JSONError(c, http.StatusBadRequest, common.MsgInvalidBody, "")
	}

	prepared, tiers, err := draft.Prepare(o.now(), true)
	if err != nil {
		return common.JSONError(c, http.StatusBadRequest, listing.Message(err), "")
	}

	o.logger.Info(
		"event prepared",
		slog.String("organizer", draft.Organizer),
		slog.String("title", draft.Title),
		slog.Int("tiers", len(tiers)),
	)

	return c.JSON(http.StatusOK, PrepareResponse{
		Success: true,
		EventData: PreparedEventData{
			PreparedEvent: prepared,
			Tiers:         tiers,
		},
		ContractInfo: ContractInfo{
			ContractAddress: o.opts.ContractAddress,
			ListingFee:      o.opts.ListingFee,
			GasLimit:        o.opts.GasLimit,
		},
		Message: "Event data prepared successfully",
	})
}
