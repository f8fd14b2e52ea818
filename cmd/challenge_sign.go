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
	"net/url"
	"strconv"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/crossfi-tickets/ticketgate/internal/challenge"
	"github.com/crossfi-tickets/ticketgate/internal/cli"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
)

// challengeSignCmd represents the challengeSign command.
var challengeSignCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a ticket challenge with a private key",
	Long: `Sign the challenge for a ticket the way a wallet does and print the
query string for GET /api/tickets/{id}.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ticketID, _ := cmd.Flags().GetUint64("ticket-id")
		hexKey, _ := cmd.Flags().GetString("key")

		key, err := signature.ParsePrivateKey(hexKey)
		if err != nil {
			logFatal("invalid private key", err)
		}

		message := challenge.Format(ticketID, issuedAt(cmd))
		sig, err := signature.SignMessage(message, key)
		if err != nil {
			logFatal("failed to sign challenge", err)
		}

		address := crypto.PubkeyToAddress(key.PublicKey).Hex()

		q := url.Values{}
		q.Set("address", address)
		q.Set("signature", sig)
		q.Set("message", message)

		fmt.Println()
		cli.PrintKV("Address", address, "Ticket", strconv.FormatUint(ticketID, 10))
		cli.PrintKV("Message", message)
		cli.PrintKV("Signature", sig)
		cli.PrintKV("Query", "/api/tickets/"+strconv.FormatUint(ticketID, 10)+"?"+q.Encode())
	},
}

func init() {
	challengeCmd.AddCommand(challengeSignCmd)

	challengeSignCmd.Flags().Uint64P("ticket-id", "t", 0, "Ticket ID")
	challengeSignCmd.Flags().StringP("key", "k", "", "Hex secp256k1 private key")
	challengeSignCmd.Flags().Int64("at", 0, "Unix timestamp of the challenge (default now)")

	_ = challengeSignCmd.MarkFlagRequired("ticket-id")
	_ = challengeSignCmd.MarkFlagRequired("key")
}
