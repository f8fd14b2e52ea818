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
	"github.com/labstack/echo/v4"

	"github.com/crossfi-tickets/ticketgate/internal/api/event"
	"github.com/crossfi-tickets/ticketgate/internal/api/organizer"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
)

// GetEventHandler returns event handler for registration.
func (s *Server) GetEventHandler(
	reader ledger.Reader,
) []func(e *echo.Echo) {
	cfg := s.appConfig.Ledger
	eventHandler := event.New(s.logger, reader, event.Options{
		MaxEventID:      cfg.MaxEventID,
		ContractAddress: cfg.ContractAddress,
		ListingFee:      cfg.ListingFee,
		PublicURL:       s.appConfig.API.PublicURL,
	})

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			event.RegisterHandlers(e, eventHandler)
		},
	}
}

// GetOrganizerHandler returns organizer handler for registration.
func (s *Server) GetOrganizerHandler(
	reader ledger.Reader,
) []func(e *echo.Echo) {
	cfg := s.appConfig.Ledger
	organizerHandler := organizer.New(s.logger, reader, organizer.Options{
		MaxEventID:      cfg.MaxEventID,
		ContractAddress: cfg.ContractAddress,
		ListingFee:      cfg.ListingFee,
		GasLimit:        cfg.GasLimit,
		ExplorerURL:     cfg.ExplorerURL,
	})

	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			organizer.RegisterHandlers(e, organizerHandler)
		},
	}
}
