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

// Package config defines the ticketgate configuration file and its defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/crossfi-tickets/ticketgate/internal/validation"
)

// Defaults are registered with viper before the config file is read.
var Defaults = map[string]any{
	"api.port":                         8080,
	"api.rate_limit.enabled":           true,
	"api.rate_limit.backend":           "memory",
	"api.rate_limit.requests":          100,
	"api.rate_limit.window":            "15m",
	"api.rate_limit.valkey.key_prefix": "ticketgate:ratelimit:",
	"ledger.backend":                   "rpc",
	"ledger.network":                   "testnet",
	"ledger.rpc_url":                   "https://rpc.testnet.ms",
	"ledger.chain_id":                  4157,
	"ledger.explorer_url":              "https://scan.testnet.ms",
	"ledger.timeout":                   "5s",
	"ledger.max_event_id":              100,
	"ledger.listing_fee":               "1.0",
	"ledger.gas_limit":                 "2000000",
	"access.challenge_window":          "5m",
	"audit.backend":                    "sqlite",
	"audit.queue_size":                 256,
	"audit.sqlite.path":                "/var/lib/ticketgate/audit.db",
	"audit.nats.bucket":                "ticketgate-audit",
	"audit.nats.ttl":                   "720h",
	"audit.nats.storage":               "file",
	"audit.nats.replicas":              1,
	"keepalive.enabled":                false,
	"keepalive.interval":               "15s",
	"keepalive.idle_after":             "60s",
	"telemetry.metrics.path":           "/metrics",
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func Validate(
	cfg *Config,
) error {
	if msg, ok := validation.Struct(cfg); !ok {
		return errors.New(msg)
	}

	if cfg.Ledger.ContractAddress != "" {
		if msg, ok := validation.Var(cfg.Ledger.ContractAddress, "wallet"); !ok {
			return fmt.Errorf("ledger.contract_address: %s", msg)
		}
	}

	durations := map[string]string{
		"ledger.timeout":          cfg.Ledger.Timeout,
		"access.challenge_window": cfg.Access.ChallengeWindow,
		"api.rate_limit.window":   cfg.API.RateLimit.Window,
		"audit.nats.ttl":          cfg.Audit.NATS.TTL,
		"keepalive.interval":      cfg.KeepAlive.Interval,
		"keepalive.idle_after":    cfg.KeepAlive.IdleAfter,
	}
	for key, value := range durations {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	if cfg.API.RateLimit.Enabled &&
		cfg.API.RateLimit.Backend == "valkey" &&
		len(cfg.API.RateLimit.Valkey.Addresses) == 0 {
		return errors.New("api.rate_limit.valkey.addresses is required for the valkey backend")
	}

	return nil
}

// Duration parses value, returning fallback when it is empty or invalid.
func Duration(
	value string,
	fallback time.Duration,
) time.Duration {
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}
