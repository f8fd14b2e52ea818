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

package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/crossfi-tickets/ticketgate/internal/audit"
	"github.com/crossfi-tickets/ticketgate/internal/config"
	"github.com/crossfi-tickets/ticketgate/internal/keepalive"
)

// DecisionRecorder receives the access decisions handlers record.
type DecisionRecorder interface {
	Record(entry audit.Entry)
}

// Server implementation of the Server's API operations.
type Server struct {
	// Echo is the HTTP router.
	Echo *echo.Echo

	logger      *slog.Logger
	appConfig   config.Config
	customRoles map[string][]string
	recorder    DecisionRecorder
	tracker     *keepalive.Tracker
	rateStore   middleware.RateLimiterStore
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithAuditRecorder records access decisions through recorder.
func WithAuditRecorder(
	recorder DecisionRecorder,
) Option {
	return func(s *Server) {
		s.recorder = recorder
	}
}

// WithTracker touches tracker on every request.
func WithTracker(
	tracker *keepalive.Tracker,
) Option {
	return func(s *Server) {
		s.tracker = tracker
	}
}

// WithRateLimitStore throttles /api requests using store.
func WithRateLimitStore(
	store middleware.RateLimiterStore,
) Option {
	return func(s *Server) {
		s.rateStore = store
	}
}
