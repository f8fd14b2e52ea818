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
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/crossfi-tickets/ticketgate/internal/audit"
	"github.com/crossfi-tickets/ticketgate/internal/cli"
)

// auditListCmd represents the auditList command.
var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent audit log entries",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		withAuditStore(ctx, func(store audit.Store) {
			entries, total, err := store.List(ctx, limit, offset)
			if err != nil {
				logFatal("failed to list audit entries", err)
			}

			if jsonOutput {
				out, err := json.Marshal(map[string]any{
					"total_items": total,
					"items":       entries,
				})
				if err != nil {
					logFatal("failed to marshal entries", err)
				}
				fmt.Println(string(out))
				return
			}

			fmt.Println()
			cli.PrintKV("Total", cli.FormatCount(total), "Shown", strconv.Itoa(len(entries)))
			cli.PrintCompactTable([]cli.Section{auditSection(entries, time.Now())})
		})
	},
}

func auditSection(
	entries []audit.Entry,
	now time.Time,
) cli.Section {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			cli.FormatAge(e.Timestamp, now),
			string(e.Kind),
			strconv.FormatUint(e.TicketID, 10),
			strconv.FormatUint(e.EventID, 10),
			cli.BoolToString(e.Allowed),
			e.Reason,
			cli.Truncate(e.Address, 14),
			e.SourceIP,
		})
	}

	return cli.Section{
		Headers: []string{"age", "kind", "ticket", "event", "allowed", "reason", "address", "source"},
		Rows:    rows,
	}
}

func init() {
	auditCmd.AddCommand(auditListCmd)

	auditListCmd.Flags().IntP("limit", "l", 20, "Maximum number of entries")
	auditListCmd.Flags().Int("offset", 0, "Number of entries to skip")
}
