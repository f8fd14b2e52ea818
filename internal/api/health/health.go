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

// Package health provides the liveness and readiness handlers.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// StatusOK is the liveness status value.
const StatusOK = "OK"

// Health implementation of the health endpoints.
type Health struct {
	// Checker performs dependency checks for readiness.
	Checker Checker
	// StartTime records when the server started.
	StartTime time.Time
	// Version is the application version string.
	Version string
	logger  *slog.Logger
	now     func() time.Time
}

// Response is the liveness body.
type Response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
}

// ReadyResponse is the readiness body.
type ReadyResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	checker Checker,
	startTime time.Time,
	version string,
) *Health {
	return &Health{
		Checker:   checker,
		StartTime: startTime,
		Version:   version,
		logger:    logger,
		now:       time.Now,
	}
}

// RegisterHandlers mounts the health routes.
func RegisterHandlers(
	e *echo.Echo,
	h *Health,
) {
	e.GET("/health", h.GetHealth)
	e.GET("/health/ready", h.GetHealthReady)
}

// GetHealth liveness probe.
func (h *Health) GetHealth(
	c echo.Context,
) error {
	now := h.now()

	return c.JSON(http.StatusOK, Response{
		Status:    StatusOK,
		Timestamp: now.UTC().Format(time.RFC3339),
		Version:   h.Version,
		Uptime:    now.Sub(h.StartTime).Truncate(time.Second).String(),
	})
}

// GetHealthReady readiness probe, 200 when dependencies are reachable.
func (h *Health) GetHealthReady(
	c echo.Context,
) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	if err := h.Checker.CheckHealth(ctx); err != nil {
		h.logger.Warn(
			"readiness check failed",
			slog.String("error", err.Error()),
		)
		return c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Error:  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, ReadyResponse{
		Status: "ready",
	})
}
