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
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/common"
	auditstore "github.com/crossfi-tickets/ticketgate/internal/audit"
)

// GetAuditLogByID returns a single audit log entry by ID.
func (a *Audit) GetAuditLogByID(
	c echo.Context,
) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return common.JSONError(c, http.StatusBadRequest, "Invalid audit entry ID", "")
	}

	entry, err := a.Store.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, auditstore.ErrNotFound) {
			return common.JSONError(c, http.StatusNotFound, "audit entry not found", "")
		}

		a.logger.Error(
			"failed to get audit entry",
			slog.String("error", err.Error()),
			slog.String("id", id),
		)
		return common.JSONError(c, http.StatusInternalServerError, "failed to get audit entry", "")
	}

	return c.JSON(http.StatusOK, EntryResponse{Entry: *entry})
}
