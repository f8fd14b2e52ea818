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
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel/metric"

	"github.com/crossfi-tickets/ticketgate/internal/audit"
	"github.com/crossfi-tickets/ticketgate/internal/config"
	"github.com/crossfi-tickets/ticketgate/internal/keepalive"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	"github.com/crossfi-tickets/ticketgate/internal/messaging"
	"github.com/crossfi-tickets/ticketgate/internal/ratelimit"
)

func noop() {}

// openLedger returns the configured ledger reader and a function that
// releases it.
func openLedger(
	ctx context.Context,
	log *slog.Logger,
	cfg config.Ledger,
	meter metric.Meter,
) (ledger.Reader, func(), error) {
	if cfg.Backend == "memory" {
		log.Warn("using the in-memory demo ledger, ownership is not read from chain")
		return ledger.DemoFixtures(time.Now()), noop, nil
	}

	reader, closeFn, err := ledger.Dial(ctx, log, cfg.RPCURL, ledger.Options{
		Contract: common.HexToAddress(cfg.ContractAddress),
		ChainID:  uint64(cfg.ChainID),
		Timeout:  config.Duration(cfg.Timeout, ledger.DefaultTimeout),
		Meter:    meter,
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info(
		"connected to ledger",
		slog.String("network", cfg.Network),
		slog.String("rpc_url", cfg.RPCURL),
		slog.String("contract", cfg.ContractAddress),
	)

	return reader, closeFn, nil
}

// openAuditStore returns the configured audit store, or nil when auditing
// is disabled, and a function that releases it.
func openAuditStore(
	ctx context.Context,
	log *slog.Logger,
	cfg config.Audit,
) (audit.Store, func(), error) {
	switch cfg.Backend {
	case "none":
		return nil, noop, nil
	case "nats":
		conn, err := messaging.Connect(log, cfg.NATS)
		if err != nil {
			return nil, nil, err
		}

		kv, err := conn.AuditBucket(ctx, cfg.NATS)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}

		return audit.NewKVStore(log, kv), conn.Close, nil
	default:
		store, err := audit.OpenSQLite(ctx, log, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}

		return store, func() {
			if err := store.Close(); err != nil {
				log.Warn(
					"failed to close audit database",
					slog.String("error", err.Error()),
				)
			}
		}, nil
	}
}

func newRecorder(
	store audit.Store,
) *audit.Recorder {
	return audit.NewRecorder(logger, store, appConfig.Audit.QueueSize)
}

// openRateLimitStore returns the limiter store, or nil when rate limiting
// is disabled, and a function that releases it.
func openRateLimitStore(
	log *slog.Logger,
	cfg config.RateLimit,
) (middleware.RateLimiterStore, func(), error) {
	if !cfg.Enabled {
		return nil, noop, nil
	}

	window := config.Duration(cfg.Window, ratelimit.DefaultWindow)

	if cfg.Backend != "valkey" {
		return ratelimit.NewMemoryStore(cfg.Requests, window), noop, nil
	}

	counter, err := ratelimit.NewValkeyCounter(cfg.Valkey)
	if err != nil {
		return nil, nil, err
	}

	return ratelimit.NewStore(log, counter, cfg.Requests, window), counter.Close, nil
}

func newPinger(
	tracker *keepalive.Tracker,
) (*keepalive.Pinger, error) {
	cfg := appConfig.KeepAlive

	url := cfg.URL
	if url == "" {
		url = fmt.Sprintf("http://127.0.0.1:%d/health", appConfig.API.Port)
	}

	return keepalive.NewPinger(logger, tracker, keepalive.Options{
		URL:       url,
		Interval:  config.Duration(cfg.Interval, keepalive.DefaultInterval),
		IdleAfter: config.Duration(cfg.IdleAfter, keepalive.DefaultIdleAfter),
	})
}
