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
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/crossfi-tickets/ticketgate/internal/audit"
	"github.com/crossfi-tickets/ticketgate/internal/audit/export"
	"github.com/crossfi-tickets/ticketgate/internal/cli"
)

var (
	auditExportOutput    string
	auditExportBatchSize int
)

// auditExportCmd represents the auditExport command.
var auditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit log entries to a file",
	Long: `Export all audit log entries to a file for long-term retention.

Each entry is written as a JSON line (JSONL format), newest first.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		withAuditStore(ctx, func(store audit.Store) {
			exporter := export.NewFileExporter(appFs, auditExportOutput)

			result, err := export.Run(
				ctx,
				logger,
				export.StoreFetcher(store),
				exporter,
				auditExportBatchSize,
				func(exported int, total int) {
					logger.Debug(
						"export progress",
						slog.Int("exported", exported),
						slog.Int("total", total),
					)
				},
			)
			if err != nil {
				logFatal("export failed", err)
			}

			size := int64(-1)
			if info, err := appFs.Stat(auditExportOutput); err == nil {
				size = info.Size()
			}

			fmt.Println()
			cli.PrintKV(
				"Exported", cli.FormatCount(result.ExportedEntries),
				"Total", cli.FormatCount(result.TotalEntries),
			)
			cli.PrintKV("Output", auditExportOutput, "Size", cli.FormatBytes(size))
		})
	},
}

func init() {
	auditCmd.AddCommand(auditExportCmd)

	auditExportCmd.Flags().
		StringVarP(&auditExportOutput, "output", "o", "", "Output file path (required)")
	auditExportCmd.Flags().
		IntVar(&auditExportBatchSize, "batch-size", export.DefaultBatchSize, "Entries read per batch")

	_ = auditExportCmd.MarkFlagRequired("output")
}
