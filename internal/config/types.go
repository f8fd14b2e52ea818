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

package config

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	API       API       `mapstructure:"api"       mask:"struct"`
	Ledger    Ledger    `mapstructure:"ledger"`
	Access    Access    `mapstructure:"access"`
	Audit     Audit     `mapstructure:"audit"`
	KeepAlive KeepAlive `mapstructure:"keepalive"`
	Telemetry Telemetry `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter" validate:"omitempty,oneof=stdout otlp"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// API configuration settings.
type API struct {
	// Port the server will bind to.
	Port int `mapstructure:"port" validate:"min=0,max=65535"`
	// PublicURL is the externally visible base URL, used in prepared event links.
	PublicURL string `mapstructure:"public_url"`
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
	// RateLimit throttles requests per client IP.
	RateLimit RateLimit `mapstructure:"rate_limit"`
	// Security contains the staff token signing settings.
	Security ServerSecurity `mapstructure:"security" mask:"struct"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server (e.g., "foo").
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}

// RateLimit configuration for the per-IP request limiter.
type RateLimit struct {
	// Enabled turns the limiter on.
	Enabled bool `mapstructure:"enabled"`
	// Backend is "memory" (per process) or "valkey" (shared).
	Backend string `mapstructure:"backend" validate:"omitempty,oneof=memory valkey"`
	// Requests allowed per client within Window.
	Requests int `mapstructure:"requests" validate:"min=0"`
	// Window is the fixed window length, e.g. "15m".
	Window string `mapstructure:"window"`
	// Valkey connection settings used by the valkey backend.
	Valkey Valkey `mapstructure:"valkey" mask:"struct"`
}

// Valkey connection settings.
type Valkey struct {
	// Addresses of the valkey nodes (host:port).
	Addresses []string `mapstructure:"addresses"`
	// Password for AUTH, when required.
	Password string `mapstructure:"password" mask:"password"`
	// KeyPrefix namespaces the limiter keys.
	KeyPrefix string `mapstructure:"key_prefix"`
}

// CustomRole defines a named set of permissions that can be assigned to tokens.
type CustomRole struct {
	// Permissions granted to this role.
	Permissions []string `mapstructure:"permissions"`
}

// ServerSecurity represents security-related settings for the server.
type ServerSecurity struct {
	// SigningKey is the key used for signing or validating staff tokens.
	SigningKey string `mapstructure:"signing_key" validate:"required" mask:"password"`
	// Roles defines custom roles with fine-grained permissions.
	Roles map[string]CustomRole `mapstructure:"roles"`
}

// Ledger configuration for the ticket contract reader.
type Ledger struct {
	// Backend is "rpc" for a live chain or "memory" for the built-in demo ledger.
	Backend string `mapstructure:"backend" validate:"required,oneof=rpc memory"`
	// Network is a label such as "testnet" or "mainnet".
	Network string `mapstructure:"network"`
	// RPCURL is the JSON-RPC endpoint.
	RPCURL string `mapstructure:"rpc_url" validate:"required_if=Backend rpc"`
	// ChainID expected from the endpoint. Zero skips the check.
	ChainID int64 `mapstructure:"chain_id" validate:"min=0"`
	// ContractAddress of the event manager contract.
	ContractAddress string `mapstructure:"contract_address" validate:"required_if=Backend rpc"`
	// ExplorerURL is the block explorer base, e.g. "https://scan.testnet.ms".
	ExplorerURL string `mapstructure:"explorer_url"`
	// Timeout bounds every contract call, e.g. "5s".
	Timeout string `mapstructure:"timeout"`
	// MaxEventID is the highest event id scanned when listing events.
	MaxEventID uint64 `mapstructure:"max_event_id" validate:"min=1"`
	// ListingFee is the decimal fee quoted to organizers.
	ListingFee string `mapstructure:"listing_fee"`
	// GasLimit quoted to organizers for the create transaction.
	GasLimit string `mapstructure:"gas_limit"`
}

// Access configuration for the signed ticket access gate.
type Access struct {
	// ChallengeWindow is the maximum challenge age, e.g. "5m".
	ChallengeWindow string `mapstructure:"challenge_window"`
	// ForwardOnly rejects challenges issued in the future.
	ForwardOnly bool `mapstructure:"forward_only"`
}

// Audit configuration for access decision records.
type Audit struct {
	// Backend is "sqlite", "nats" or "none".
	Backend string `mapstructure:"backend" validate:"omitempty,oneof=sqlite nats none"`
	// QueueSize bounds the asynchronous write queue.
	QueueSize int `mapstructure:"queue_size" validate:"min=0"`
	// SQLite settings for the sqlite backend.
	SQLite AuditSQLite `mapstructure:"sqlite"`
	// NATS settings for the nats backend.
	NATS AuditNATS `mapstructure:"nats"`
}

// AuditSQLite configuration.
type AuditSQLite struct {
	// Path to the database file.
	Path string `mapstructure:"path"`
}

// AuditNATS configuration for the audit log KV bucket.
type AuditNATS struct {
	// URL of the NATS server. Empty starts an embedded server.
	URL string `mapstructure:"url"`
	// StoreDir is the JetStream directory of the embedded server.
	StoreDir string `mapstructure:"store_dir"`
	// Bucket is the KV bucket name for audit log entries.
	Bucket   string `mapstructure:"bucket"`
	TTL      string `mapstructure:"ttl"` // e.g. "720h" (30 days)
	MaxBytes int64  `mapstructure:"max_bytes"`
	Storage  string `mapstructure:"storage" validate:"omitempty,oneof=file memory"`
	Replicas int    `mapstructure:"replicas"`
}

// KeepAlive configuration for the idle self-ping.
type KeepAlive struct {
	// Enabled turns the pinger on.
	Enabled bool `mapstructure:"enabled"`
	// Interval between idle checks, e.g. "15s".
	Interval string `mapstructure:"interval"`
	// IdleAfter is how long without requests before pinging, e.g. "60s".
	IdleAfter string `mapstructure:"idle_after"`
	// URL pinged when idle. Defaults to the local health endpoint.
	URL string `mapstructure:"url"`
}
