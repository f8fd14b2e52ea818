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

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/crossfi-tickets/ticketgate/internal/config"
)

type ConfigPublicTestSuite struct {
	suite.Suite
}

func validConfig() config.Config {
	return config.Config{
		API: config.API{
			Port: 8080,
			RateLimit: config.RateLimit{
				Enabled:  true,
				Backend:  "memory",
				Requests: 100,
				Window:   "15m",
			},
			Security: config.ServerSecurity{
				SigningKey: "test-signing-key",
			},
		},
		Ledger: config.Ledger{
			Backend:         "rpc",
			RPCURL:          "https://rpc.testnet.ms",
			ChainID:         4157,
			ContractAddress: "0xdeAFa17D50dBa6224177FFA396395A7E096f250E",
			Timeout:         "5s",
			MaxEventID:      100,
		},
		Access: config.Access{
			ChallengeWindow: "5m",
		},
		Audit: config.Audit{
			Backend: "sqlite",
			SQLite:  config.AuditSQLite{Path: "/tmp/audit.db"},
		},
	}
}

func (s *ConfigPublicTestSuite) TestValidate() {
	tests := []struct {
		name        string
		mutate      func(cfg *config.Config)
		expectError bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(_ *config.Config) {},
		},
		{
			name: "memory ledger needs no rpc settings",
			mutate: func(cfg *config.Config) {
				cfg.Ledger = config.Ledger{Backend: "memory", MaxEventID: 10}
			},
		},
		{
			name: "missing signing key",
			mutate: func(cfg *config.Config) {
				cfg.API.Security.SigningKey = ""
			},
			expectError: true,
			errContains: "SigningKey",
		},
		{
			name: "unknown ledger backend",
			mutate: func(cfg *config.Config) {
				cfg.Ledger.Backend = "graphql"
			},
			expectError: true,
			errContains: "Backend",
		},
		{
			name: "rpc ledger without url",
			mutate: func(cfg *config.Config) {
				cfg.Ledger.RPCURL = ""
			},
			expectError: true,
			errContains: "RPCURL",
		},
		{
			name: "rpc ledger without contract",
			mutate: func(cfg *config.Config) {
				cfg.Ledger.ContractAddress = ""
			},
			expectError: true,
			errContains: "ContractAddress",
		},
		{
			name: "malformed contract address",
			mutate: func(cfg *config.Config) {
				cfg.Ledger.ContractAddress = "0x1234"
			},
			expectError: true,
			errContains: "ledger.contract_address",
		},
		{
			name: "zero max event id",
			mutate: func(cfg *config.Config) {
				cfg.Ledger.MaxEventID = 0
			},
			expectError: true,
			errContains: "MaxEventID",
		},
		{
			name: "bad challenge window",
			mutate: func(cfg *config.Config) {
				cfg.Access.ChallengeWindow = "five minutes"
			},
			expectError: true,
			errContains: "access.challenge_window",
		},
		{
			name: "unknown audit backend",
			mutate: func(cfg *config.Config) {
				cfg.Audit.Backend = "postgres"
			},
			expectError: true,
			errContains: "Backend",
		},
		{
			name: "valkey limiter without addresses",
			mutate: func(cfg *config.Config) {
				cfg.API.RateLimit.Backend = "valkey"
			},
			expectError: true,
			errContains: "valkey.addresses",
		},
		{
			name: "valkey limiter with addresses",
			mutate: func(cfg *config.Config) {
				cfg.API.RateLimit.Backend = "valkey"
				cfg.API.RateLimit.Valkey.Addresses = []string{"127.0.0.1:6379"}
			},
		},
		{
			name: "unknown trace exporter",
			mutate: func(cfg *config.Config) {
				cfg.Telemetry.Tracing.Exporter = "jaeger"
			},
			expectError: true,
			errContains: "Exporter",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := config.Validate(&cfg)

			if tt.expectError {
				s.Require().Error(err)
				s.Contains(err.Error(), tt.errContains)
				return
			}
			s.NoError(err)
		})
	}
}

func (s *ConfigPublicTestSuite) TestDuration() {
	tests := []struct {
		name     string
		value    string
		fallback time.Duration
		want     time.Duration
	}{
		{name: "empty uses fallback", value: "", fallback: time.Second, want: time.Second},
		{name: "valid value", value: "90s", fallback: time.Second, want: 90 * time.Second},
		{name: "invalid uses fallback", value: "soon", fallback: time.Minute, want: time.Minute},
		{name: "negative uses fallback", value: "-5s", fallback: time.Minute, want: time.Minute},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, config.Duration(tt.value, tt.fallback))
		})
	}
}

func (s *ConfigPublicTestSuite) TestDefaultsAreValid() {
	cfg := validConfig()
	cfg.Ledger.Timeout = config.Defaults["ledger.timeout"].(string)
	cfg.Access.ChallengeWindow = config.Defaults["access.challenge_window"].(string)

	s.NoError(config.Validate(&cfg))
	s.Equal(5*time.Second, config.Duration(cfg.Ledger.Timeout, 0))
	s.Equal(5*time.Minute, config.Duration(cfg.Access.ChallengeWindow, 0))
}

func TestConfigPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigPublicTestSuite))
}
