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
	"time"

	"github.com/spf13/cobra"

	"github.com/crossfi-tickets/ticketgate/internal/challenge"
)

// challengeFormatCmd represents the challengeFormat command.
var challengeFormatCmd = &cobra.Command{
	Use:   "format",
	Short: "Print the challenge message for a ticket",
	Run: func(cmd *cobra.Command, _ []string) {
		ticketID, _ := cmd.Flags().GetUint64("ticket-id")

		fmt.Println(challenge.Format(ticketID, issuedAt(cmd)))
	},
}

// issuedAt returns the --at flag, or the current time when unset.
func issuedAt(
	cmd *cobra.Command,
) int64 {
	at, _ := cmd.Flags().GetInt64("at")
	if at == 0 {
		return time.Now().Unix()
	}

	return at
}

func init() {
	challengeCmd.AddCommand(challengeFormatCmd)

	challengeFormatCmd.Flags().Uint64P("ticket-id", "t", 0, "Ticket ID")
	challengeFormatCmd.Flags().Int64("at", 0, "Unix timestamp of the challenge (default now)")

	_ = challengeFormatCmd.MarkFlagRequired("ticket-id")
}
