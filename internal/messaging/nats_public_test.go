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

package messaging_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/suite"

	"github.com/crossfi-tickets/ticketgate/internal/config"
	"github.com/crossfi-tickets/ticketgate/internal/messaging"
)

type NATSPublicTestSuite struct {
	suite.Suite
}

func TestNATSPublicTestSuite(t *testing.T) {
	suite.Run(t, new(NATSPublicTestSuite))
}

func (s *NATSPublicTestSuite) TestParseStorageType() {
	tests := []struct {
		name  string
		input string
		want  jetstream.StorageType
	}{
		{name: "memory", input: "memory", want: jetstream.MemoryStorage},
		{name: "file", input: "file", want: jetstream.FileStorage},
		{name: "empty defaults to file", input: "", want: jetstream.FileStorage},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.Equal(tc.want, messaging.ParseStorageType(tc.input))
		})
	}
}

func (s *NATSPublicTestSuite) TestBuildAuditKVConfig() {
	tests := []struct {
		name       string
		cfg        config.AuditNATS
		validateFn func(jetstream.KeyValueConfig)
	}{
		{
			name: "when fully configured",
			cfg: config.AuditNATS{
				Bucket:   "ticketgate-audit",
				TTL:      "720h",
				MaxBytes: 1 << 20,
				Storage:  "memory",
				Replicas: 3,
			},
			validateFn: func(kv jetstream.KeyValueConfig) {
				s.Equal("ticketgate-audit", kv.Bucket)
				s.Equal(720*time.Hour, kv.TTL)
				s.Equal(int64(1<<20), kv.MaxBytes)
				s.Equal(jetstream.MemoryStorage, kv.Storage)
				s.Equal(3, kv.Replicas)
			},
		},
		{
			name: "when ttl invalid and replicas unset",
			cfg: config.AuditNATS{
				Bucket: "audit",
				TTL:    "forever",
			},
			validateFn: func(kv jetstream.KeyValueConfig) {
				s.Zero(kv.TTL)
				s.Equal(1, kv.Replicas)
				s.Equal(jetstream.FileStorage, kv.Storage)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.validateFn(messaging.BuildAuditKVConfig(tc.cfg))
		})
	}
}

func (s *NATSPublicTestSuite) TestConnectEmbedded() {
	cfg := config.AuditNATS{
		StoreDir: s.T().TempDir(),
		Bucket:   "ticketgate-audit",
		TTL:      "1h",
		Storage:  "memory",
	}

	conn, err := messaging.Connect(slog.New(slog.DiscardHandler), cfg)
	s.Require().NoError(err)
	defer conn.Close()

	kv, err := conn.AuditBucket(context.Background(), cfg)
	s.Require().NoError(err)

	_, err = kv.Put(context.Background(), "k", []byte("v"))
	s.Require().NoError(err)

	entry, err := kv.Get(context.Background(), "k")
	s.Require().NoError(err)
	s.Equal("v", string(entry.Value()))
}
