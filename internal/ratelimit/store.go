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

// Package ratelimit provides a fixed-window request limiter shared across
// instances through valkey, plugged into echo's RateLimiter middleware.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Defaults match the public API policy: 100 requests per 15 minutes.
const (
	DefaultRequests = 100
	DefaultWindow   = 15 * time.Minute
)

// DeniedMessage is returned to throttled clients.
const DeniedMessage = "Too many requests from this IP, please try again later."

// Counter atomically increments the counter at key, starting its expiry
// when the key is new, and returns the new value.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// ensure Store implements echo's limiter store at compile time.
var _ middleware.RateLimiterStore = (*Store)(nil)

// Store is a fixed-window limiter keyed by identifier and window start.
type Store struct {
	counter  Counter
	logger   *slog.Logger
	requests int64
	window   time.Duration
	timeout  time.Duration
	now      func() time.Time
}

// NewStore creates a Store allowing requests per window for each identifier.
func NewStore(
	logger *slog.Logger,
	counter Counter,
	requests int,
	window time.Duration,
) *Store {
	if requests <= 0 {
		requests = DefaultRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &Store{
		counter:  counter,
		logger:   logger.With(slog.String("component", "ratelimit")),
		requests: int64(requests),
		window:   window,
		timeout:  time.Second,
		now:      time.Now,
	}
}

// Allow reports whether identifier may make another request in the current
// window. Counter failures allow the request so an unreachable backend
// cannot take the API down.
func (s *Store) Allow(
	identifier string,
) (bool, error) {
	start := s.now().Truncate(s.window)
	key := fmt.Sprintf("%s:%d", identifier, start.Unix())

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.counter.Incr(ctx, key, s.window)
	if err != nil {
		s.logger.Warn(
			"rate limit counter unavailable, allowing request",
			slog.String("identifier", identifier),
			slog.String("error", err.Error()),
		)
		return true, nil
	}

	return n <= s.requests, nil
}

// SkipLoopback skips limiting for requests from the local host, which
// includes the keep-alive self ping.
func SkipLoopback(
	c echo.Context,
) bool {
	ip := net.ParseIP(c.RealIP())
	return ip != nil && ip.IsLoopback()
}

// Middleware builds the echo RateLimiter using store, keyed by client IP.
func Middleware(
	store middleware.RateLimiterStore,
) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: SkipLoopback,
		Store:   store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "unable to identify client",
			})
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error": DeniedMessage,
			})
		},
	})
}

// NewMemoryStore returns echo's in-process limiter configured for
// requests per window.
func NewMemoryStore(
	requests int,
	window time.Duration,
) middleware.RateLimiterStore {
	if requests <= 0 {
		requests = DefaultRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(requests) / window.Seconds()),
		Burst:     requests,
		ExpiresIn: window,
	})
}
