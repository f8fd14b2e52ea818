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
	auditstore "github.com/crossfi-tickets/ticketgate/internal/audit"
)

// ListParams are the query parameters of GetAuditLogs.
type ListParams struct {
	Limit  int `query:"limit"  validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// ListResponse is a page of audit entries.
type ListResponse struct {
	TotalItems int                `json:"total_items"`
	Items      []auditstore.Entry `json:"items"`
}

// EntryResponse wraps a single audit entry.
type EntryResponse struct {
	Entry auditstore.Entry `json:"entry"`
}
