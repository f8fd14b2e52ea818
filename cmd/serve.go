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
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crossfi-tickets/ticketgate/internal/access"
	"github.com/crossfi-tickets/ticketgate/internal/api"
	"github.com/crossfi-tickets/ticketgate/internal/api/health"
	"github.com/crossfi-tickets/ticketgate/internal/challenge"
	"github.com/crossfi-tickets/ticketgate/internal/cli"
	"github.com/crossfi-tickets/ticketgate/internal/config"
	"github.com/crossfi-tickets/ticketgate/internal/keepalive"
	"github.com/crossfi-tickets/ticketgate/internal/telemetry"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the ticket access API server.

Connects to the configured ledger and audit backend, serves the HTTP API
and, when enabled, pings itself while idle. Blocks until interrupted.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		validateConfig()

		providers, err := telemetry.Init(ctx, appConfig.Telemetry)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize telemetry", err)
		}

		reader, closeLedger, err := openLedger(ctx, logger, appConfig.Ledger, providers.Metrics.Meter)
		if err != nil {
			cli.LogFatal(logger, "failed to open ledger", err)
		}

		authorizer, err := access.New(logger, reader, access.Options{
			Policy: challenge.Policy{
				Window:      config.Duration(appConfig.Access.ChallengeWindow, challenge.DefaultWindow),
				ForwardOnly: appConfig.Access.ForwardOnly,
			},
			LedgerTimeout: config.Duration(appConfig.Ledger.Timeout, 0),
			Meter:         providers.Metrics.Meter,
		})
		if err != nil {
			cli.LogFatal(logger, "failed to create authorizer", err)
		}

		auditStore, closeAudit, err := openAuditStore(ctx, logger, appConfig.Audit)
		if err != nil {
			cli.LogFatal(logger, "failed to open audit store", err)
		}

		tracker := keepalive.NewTracker()
		opts := []api.Option{api.WithTracker(tracker)}

		var closeRecorder func()
		if auditStore != nil {
			recorder := newRecorder(auditStore)
			opts = append(opts, api.WithAuditRecorder(recorder))
			closeRecorder = recorder.Close
		}

		rateStore, closeRateLimit, err := openRateLimitStore(logger, appConfig.API.RateLimit)
		if err != nil {
			cli.LogFatal(logger, "failed to create rate limiter", err)
		}
		if rateStore != nil {
			opts = append(opts, api.WithRateLimitStore(rateStore))
		}

		sm := api.New(appConfig, logger, opts...)

		checker := &health.DependencyChecker{LedgerCheck: reader.Ping}
		if auditStore != nil {
			checker.AuditCheck = auditStore.Ping
		}

		handlers := make([]func(e *echo.Echo), 0, 8)
		handlers = append(handlers, sm.GetHealthHandler(checker, time.Now(), buildVersion().GitVersion)...)
		handlers = append(handlers, sm.GetTicketHandler(authorizer, reader)...)
		handlers = append(handlers, sm.GetEventHandler(reader)...)
		handlers = append(handlers, sm.GetOrganizerHandler(reader)...)
		handlers = append(handlers, sm.GetMetricsHandler(
			providers.Metrics.Handler,
			providers.Metrics.Path,
		)...)
		if auditStore != nil {
			handlers = append(handlers, sm.GetAuditHandler(auditStore)...)
		}
		sm.RegisterHandlers(handlers)

		group := cli.Group{sm}
		if appConfig.KeepAlive.Enabled {
			pinger, err := newPinger(tracker)
			if err != nil {
				cli.LogFatal(logger, "failed to create keepalive pinger", err)
			}
			group = append(group, pinger)
		}

		group.Start()
		cli.RunServer(ctx, group, func() {
			if closeRecorder != nil {
				closeRecorder()
			}
			closeAudit()
			closeRateLimit()
			closeLedger()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
			defer cancel()

			if err := providers.Shutdown(shutdownCtx); err != nil {
				logger.Warn(
					"telemetry shutdown failed",
					slog.String("error", err.Error()),
				)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.PersistentFlags().
		IntP("port", "p", 8080, "Port the server will bind to")
	_ = viper.BindPFlag("api.port", serveCmd.PersistentFlags().Lookup("port"))
}
