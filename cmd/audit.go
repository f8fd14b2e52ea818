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

package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/crossfi-tickets/ticketgate/internal/audit"
)

// auditCmd represents the audit command.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect recorded access decisions",
	Long: `Read the access, staff and organizer verification decisions recorded
by the server directly from the configured audit backend.
`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		validateConfig()
	},
}

// withAuditStore opens the configured store, runs fn and releases the store.
func withAuditStore(
	ctx context.Context,
	fn func(store audit.Store),
) {
	store, closeFn, err := openAuditStore(ctx, logger, appConfig.Audit)
	if err != nil {
		logFatal("failed to open audit store", err, "backend", appConfig.Audit.Backend)
	}
	if store == nil {
		logFatal("auditing is disabled", errors.New("audit.backend is none"))
	}
	defer closeFn()

	fn(store)
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
