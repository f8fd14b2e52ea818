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

package keepalive

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/crossfi-tickets/ticketgate/internal/telemetry"
)

// Defaults for the idle check.
const (
	DefaultInterval  = 15 * time.Second
	DefaultIdleAfter = 60 * time.Second
)

// Options configures a Pinger.
type Options struct {
	// URL is requested when the service is idle.
	URL string
	// Interval between idle checks.
	Interval time.Duration
	// IdleAfter is the idle period that triggers a ping.
	IdleAfter time.Duration
	// Client performs the ping. Defaults to a client with a 10s timeout.
	Client *http.Client
}

// Pinger requests URL on a schedule whenever the tracker reports the
// service idle. It implements cli.Lifecycle.
type Pinger struct {
	logger    *slog.Logger
	tracker   *Tracker
	client    *http.Client
	url       string
	interval  time.Duration
	idleAfter time.Duration
	cron      *cron.Cron
}

// NewPinger creates a Pinger. It does not start until Start is called.
func NewPinger(
	logger *slog.Logger,
	tracker *Tracker,
	opts Options,
) (*Pinger, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("keepalive url cannot be empty")
	}

	p := &Pinger{
		logger:    logger.With(slog.String("component", "keepalive")),
		tracker:   tracker,
		client:    opts.Client,
		url:       opts.URL,
		interval:  opts.Interval,
		idleAfter: opts.IdleAfter,
		cron:      cron.New(),
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: 10 * time.Second}
	}
	if p.interval <= 0 {
		p.interval = DefaultInterval
	}
	if p.idleAfter <= 0 {
		p.idleAfter = DefaultIdleAfter
	}

	spec := fmt.Sprintf("@every %s", p.interval)
	if _, err := p.cron.AddFunc(spec, p.check); err != nil {
		return nil, fmt.Errorf("schedule keepalive %q: %w", spec, err)
	}

	return p, nil
}

// Start begins the schedule.
func (p *Pinger) Start() {
	p.logger.Info(
		"starting keepalive",
		slog.String("url", p.url),
		slog.Duration("interval", p.interval),
		slog.Duration("idle_after", p.idleAfter),
	)
	p.cron.Start()
}

// Stop halts the schedule and waits for a running check, bounded by ctx.
func (p *Pinger) Stop(
	ctx context.Context,
) {
	done := p.cron.Stop()

	select {
	case <-done.Done():
		p.logger.Info("keepalive stopped")
	case <-ctx.Done():
		p.logger.Warn("keepalive stop timed out")
	}
}

func (p *Pinger) check() {
	idle := p.tracker.IdleFor()
	if idle < p.idleAfter {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		p.logger.Warn(
			"keepalive ping failed",
			slog.Duration("idle", idle),
			slog.String("error", err.Error()),
		)
		return
	}

	p.logger.Debug("keepalive ping ok", slog.Duration("idle", idle))
}

// Ping requests the URL once and touches the tracker on a 200 response.
func (p *Pinger) Ping(
	ctx context.Context,
) error {
	ctx, span := telemetry.Tracer().Start(ctx, "keepalive.ping")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	telemetry.InjectTraceContextToHeader(ctx, req.Header)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", p.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %d", p.url, resp.StatusCode)
	}

	p.tracker.Touch()

	return nil
}
