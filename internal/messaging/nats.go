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

// Package messaging connects to NATS JetStream for the audit KV bucket,
// starting an in-process server when no URL is configured.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/crossfi-tickets/ticketgate/internal/config"
)

// ClientName identifies ticketgate connections on the server.
const ClientName = "ticketgate"

// Conn is an open JetStream connection and, when embedded, its server.
type Conn struct {
	NC *nats.Conn
	JS jetstream.JetStream

	embedded *server.Server
	logger   *slog.Logger
}

// Connect dials cfg.URL or, when it is empty, starts an embedded JetStream
// server storing into cfg.StoreDir and connects to it.
func Connect(
	logger *slog.Logger,
	cfg config.AuditNATS,
) (*Conn, error) {
	c := &Conn{
		logger: logger.With(slog.String("component", "nats")),
	}

	url := cfg.URL
	if url == "" {
		ns, err := StartEmbedded(cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		c.embedded = ns
		url = ns.ClientURL()
		c.logger.Info("started embedded nats server", slog.String("url", url))
	}

	nc, err := nats.Connect(
		url,
		nats.Name(ClientName),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				c.logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
	)
	if err != nil {
		c.shutdownEmbedded()
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	c.NC = nc

	js, err := jetstream.New(nc)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}
	c.JS = js

	return c, nil
}

// StartEmbedded runs a loopback-only JetStream server on a random port.
func StartEmbedded(
	storeDir string,
) (*server.Server, error) {
	ns, err := server.NewServer(&server.Options{
		ServerName: ClientName,
		Host:       "127.0.0.1",
		Port:       server.RANDOM_PORT,
		JetStream:  true,
		StoreDir:   storeDir,
		NoLog:      true,
		NoSigs:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedded nats server: %w", err)
	}

	go ns.Start()
	if !ns.ReadyForConnections(10 * time.Second) {
		ns.Shutdown()
		return nil, errors.New("embedded nats server not ready")
	}

	return ns, nil
}

// AuditBucket creates or updates the audit KV bucket described by cfg.
func (c *Conn) AuditBucket(
	ctx context.Context,
	cfg config.AuditNATS,
) (jetstream.KeyValue, error) {
	kv, err := c.JS.CreateOrUpdateKeyValue(ctx, BuildAuditKVConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("create audit bucket %q: %w", cfg.Bucket, err)
	}

	return kv, nil
}

// Close drains the connection and stops the embedded server, if any.
func (c *Conn) Close() {
	if c.NC != nil {
		if err := c.NC.Drain(); err != nil {
			c.NC.Close()
		}
	}
	c.shutdownEmbedded()
}

func (c *Conn) shutdownEmbedded() {
	if c.embedded == nil {
		return
	}

	c.embedded.Shutdown()
	c.embedded.WaitForShutdown()
}

// ParseStorageType maps "memory"/"file" strings to jetstream.StorageType.
func ParseStorageType(
	s string,
) jetstream.StorageType {
	if s == "memory" {
		return jetstream.MemoryStorage
	}

	return jetstream.FileStorage
}

// BuildAuditKVConfig builds the KV bucket configuration for audit entries.
// An unparseable TTL keeps entries forever.
func BuildAuditKVConfig(
	cfg config.AuditNATS,
) jetstream.KeyValueConfig {
	ttl, _ := time.ParseDuration(cfg.TTL)

	replicas := cfg.Replicas
	if replicas <= 0 {
		replicas = 1
	}

	return jetstream.KeyValueConfig{
		Bucket:      cfg.Bucket,
		Description: "ticketgate access decisions",
		TTL:         ttl,
		MaxBytes:    cfg.MaxBytes,
		Storage:     ParseStorageType(cfg.Storage),
		Replicas:    replicas,
	}
}
