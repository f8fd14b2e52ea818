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

package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/crossfi-tickets/ticketgate/internal/config"
)

// connectTimeout bounds the initial PING.
const connectTimeout = 5 * time.Second

// ensure ValkeyCounter implements Counter at compile time.
var _ Counter = (*ValkeyCounter)(nil)

// ValkeyCounter implements Counter with INCR and EXPIRE NX.
type ValkeyCounter struct {
	client valkey.Client
	prefix string
}

// NewValkeyCounter connects to the configured nodes and verifies the
// connection with PING.
func NewValkeyCounter(
	cfg config.Valkey,
) (*ValkeyCounter, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("valkey addresses cannot be empty")
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: cfg.Addresses,
		Password:    cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping valkey: %w", err)
	}

	return NewValkeyCounterFromClient(client, cfg.KeyPrefix), nil
}

// NewValkeyCounterFromClient wraps an existing client.
func NewValkeyCounterFromClient(
	client valkey.Client,
	prefix string,
) *ValkeyCounter {
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}

	return &ValkeyCounter{
		client: client,
		prefix: prefix,
	}
}

// Incr increments key and sets its expiry only when none is set yet.
func (c *ValkeyCounter) Incr(
	ctx context.Context,
	key string,
	ttl time.Duration,
) (int64, error) {
	full := c.prefix + key
	seconds := max(int64(ttl.Seconds()), 1)

	results := c.client.DoMulti(
		ctx,
		c.client.B().Incr().Key(full).Build(),
		c.client.B().Expire().Key(full).Seconds(seconds).Nx().Build(),
	)

	n, err := results[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", full, err)
	}

	if err := results[1].Error(); err != nil {
		return 0, fmt.Errorf("expire %s: %w", full, err)
	}

	return n, nil
}

// Close closes the client.
func (c *ValkeyCounter) Close() {
	c.client.Close()
}
