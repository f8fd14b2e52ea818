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

package audit

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	auditstore "github.com/crossfi-tickets/ticketgate/internal/audit"
	"github.com/crossfi-tickets/ticketgate/internal/validation"
)

// GetAuditLogs returns a paginated list of audit log entries.
func (a *Audit) GetAuditLogs(
	c echo.Context,
) error {
	params := ListParams{Limit: 20}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &params); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Invalid query parameters", "")
	}

	if errMsg, ok := validation.Struct(params); !ok {
		return common.JSONError(c, http.StatusBadRequest, errMsg, "")
	}

	entries, total, err := a.Store.List(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		a.logger.Error(
			"failed to list audit entries",
			slog.String("error", err.Error()),
		)
		return common.JSONError(c, http.StatusInternalServerError, "failed to list audit entries", "")
	}

	if entries == nil {
		entries = []auditstore.Entry{}
	}

	return c.JSON(http.StatusOK, ListResponse{
		TotalItems: total,
		Items:      entries,
	})
}
