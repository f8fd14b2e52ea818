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

package api_test

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/crossfi-tickets/ticketgate/internal/api"
	"github.com/crossfi-tickets/ticketgate/internal/config"
	"github.com/crossfi-tickets/ticketgate/internal/keepalive"
	"github.com/crossfi-tickets/ticketgate/internal/ratelimit"
)

type ServerPublicTestSuite struct {
	suite.Suite

	logger *slog.Logger
}

func (s *ServerPublicTestSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

func (s *ServerPublicTestSuite) appConfig(
	port int,
) config.Config {
	return config.Config{
		API: config.API{
			Port: port,
			Security: config.ServerSecurity{
				SigningKey: "test-key",
			},
		},
	}
}

func (s *ServerPublicTestSuite) TestNew() {
	tests := []struct {
		name      string
		appConfig config.Config
		opts      []api.Option
	}{
		{
			name:      "creates server with default config",
			appConfig: s.appConfig(0),
		},
		{
			name: "creates server with CORS origins and roles",
			appConfig: config.Config{
				API: config.API{
					CORS: config.CORS{
						AllowOrigins: []string{
							"http://localhost:3000",
							"https://example.com",
						},
					},
					Security: config.ServerSecurity{
						SigningKey: "test-key",
						Roles: map[string]config.CustomRole{
							"door": {Permissions: []string{"ticket:verify"}},
						},
					},
				},
			},
		},
		{
			name:      "creates server with options",
			appConfig: s.appConfig(0),
			opts: []api.Option{
				api.WithAuditRecorder(&fakeRecorder{}),
				api.WithTracker(keepalive.NewTracker()),
				api.WithRateLimitStore(ratelimit.NewMemoryStore(10, time.Minute)),
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			server := api.New(tt.appConfig, s.logger, tt.opts...)

			s.NotNil(server)
			s.NotNil(server.Echo)
		})
	}
}

func (s *ServerPublicTestSuite) TestStartAndStop() {
	server := api.New(s.appConfig(0), s.logger)
	server.Start()

	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	server.Stop(ctx)
}

func (s *ServerPublicTestSuite) TestStartErrorPath() {
	ln, err := net.Listen("tcp", ":0")
	s.Require().NoError(err)
	defer func() { _ = ln.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port

	server := api.New(s.appConfig(port), s.logger)
	server.Start()

	time.Sleep(100 * time.Millisecond)
}

func (s *ServerPublicTestSuite) TestStopErrorPath() {
	ln, err := net.Listen("tcp", ":0")
	s.Require().NoError(err)
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	server := api.New(s.appConfig(port), s.logger)

	server.Echo.GET("/slow", func(c echo.Context) error {
		time.Sleep(2 * time.Second)
		return c.String(http.StatusOK, "done")
	})

	server.Start()
	time.Sleep(50 * time.Millisecond)

	go http.Get(fmt.Sprintf("http://localhost:%d/slow", port)) //nolint:errcheck
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Millisecond)
	defer cancel()

	server.Stop(ctx)
}

func TestServerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ServerPublicTestSuite))
}
