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
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/crossfi-tickets/ticketgate/internal/challenge"
	"github.com/crossfi-tickets/ticketgate/internal/cli"
	"github.com/crossfi-tickets/ticketgate/internal/config"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
)

// challengeVerifyCmd represents the challengeVerify command.
var challengeVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a signed challenge without reading the ledger",
	Long: `Recover the signer of a challenge and check its format and age
against the configured window. Ownership is not checked.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		message, _ := cmd.Flags().GetString("message")
		sig, _ := cmd.Flags().GetString("signature")
		address, _ := cmd.Flags().GetString("address")

		c, err := challenge.Parse(message)
		if err != nil {
			logFatal("invalid challenge", err, "format", challenge.RequiredFormat)
		}

		signer, err := signature.RecoverSigner(message, sig)
		if err != nil {
			logFatal("invalid signature", err)
		}

		policy := challenge.Policy{
			Window:      config.Duration(appConfig.Access.ChallengeWindow, challenge.DefaultWindow),
			ForwardOnly: appConfig.Access.ForwardOnly,
		}
		now := time.Now()
		fresh := policy.Fresh(c.IssuedAt, now)

		fmt.Println()
		cli.PrintKV("Ticket", strconv.FormatUint(c.TicketID, 10), "Signer", signer.Hex())
		cli.PrintKV(
			"Issued", cli.FormatAge(time.Unix(c.IssuedAt, 0), now),
			"Fresh", cli.BoolToString(fresh),
		)

		if address == "" {
			return
		}

		switch {
		case !fresh:
			fmt.Println("  " + cli.RenderDecision(false, "expired_challenge"))
		case !signature.AddressesEqual(signer.Hex(), address):
			fmt.Println("  " + cli.RenderDecision(false, "signer_mismatch"))
		default:
			fmt.Println("  " + cli.RenderDecision(true, "signature matches "+address))
		}
	},
}

func init() {
	challengeCmd.AddCommand(challengeVerifyCmd)

	challengeVerifyCmd.Flags().StringP("message", "m", "", "Signed challenge message")
	challengeVerifyCmd.Flags().StringP("signature", "s", "", "Hex signature")
	challengeVerifyCmd.Flags().StringP("address", "a", "", "Claimed wallet address")

	_ = challengeVerifyCmd.MarkFlagRequired("message")
	_ = challengeVerifyCmd.MarkFlagRequired("signature")
}
