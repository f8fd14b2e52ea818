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
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crossfi-tickets/ticketgate/internal/authtoken"
)

// TokenGenerator generates signed JWT tokens.
type TokenGenerator interface {
	Generate(
		signingKey string,
		roles []string,
		subject string,
		eventID uint64,
		ttl time.Duration,
	) (string, error)
}

// tokenGenerateCmd represents the tokenGenerate command.
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new token",
	Long: `Generate a token scoped to one event. Staff tokens are entered as the
staff code at the door; organizer tokens can also read the audit log.
`,
	PreRun: func(cmd *cobra.Command, _ []string) {
		roles, _ := cmd.Flags().GetStringSlice("roles")

		if err := validateRoles(roles); err != nil {
			logFatal(
				"invalid roles",
				err,
				"allowed",
				authtoken.GenerateAllowedRoles(authtoken.RoleHierarchy),
			)
		}
	},
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.API.Security.SigningKey
		roles, _ := cmd.Flags().GetStringSlice("roles")
		subject, _ := cmd.Flags().GetString("subject")
		eventID, _ := cmd.Flags().GetUint64("event-id")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		var tm TokenGenerator = authtoken.New(logger)
		tokin, err := tm.Generate(signingKey, roles, subject, eventID, ttl)
		if err != nil {
			logFatal("failed to generate token", err)
		}

		logger.Info(
			"generated token",
			slog.String("token", tokin),
			slog.String("roles", strings.Join(roles, ",")),
			slog.String("subject", subject),
			slog.Uint64("event_id", eventID),
		)
	},
}

func init() {
	tokenCmd.AddCommand(tokenGenerateCmd)
	allowedRoles := authtoken.GenerateAllowedRoles(authtoken.RoleHierarchy)
	usage := fmt.Sprintf("Roles for the token (allowed: %s)", strings.Join(allowedRoles, ", "))

	tokenGenerateCmd.PersistentFlags().
		StringSliceP("roles", "r", []string{authtoken.RoleStaff}, usage)
	tokenGenerateCmd.PersistentFlags().
		StringP("subject", "u", "", "Subject for the token (e.g., staff member name)")
	tokenGenerateCmd.PersistentFlags().
		Uint64P("event-id", "e", 0, "Event the token is valid for")
	tokenGenerateCmd.PersistentFlags().
		Duration("ttl", authtoken.DefaultTTL, "Token lifetime")

	_ = tokenGenerateCmd.MarkPersistentFlagRequired("subject")
	_ = tokenGenerateCmd.MarkPersistentFlagRequired("event-id")
}

func validateRoles(
	roles []string,
) error {
	if len(roles) == 0 {
		return fmt.Errorf("at least one role is required")
	}

	allowedRoles := authtoken.GenerateAllowedRoles(authtoken.RoleHierarchy)
	allowedRolesMap := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowedRolesMap[role] = struct{}{}
	}

	for _, role := range roles {
		if _, ok := allowedRolesMap[role]; !ok {
			return fmt.Errorf("unsupported role: %s", role)
		}
	}
	return nil
}
