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

// Package access decides whether a wallet may view a ticket.
//
// A request carries a challenge message signed by the wallet. The decision
// runs an ordered list of checks and the first failing check determines the
// reason:
//
//  1. all credentials present
//  2. message parses as a challenge
//  3. challenge names the requested ticket
//  4. challenge timestamp is fresh
//  5. a signer can be recovered
//  6. the signer is the claimed address
//  7. the ticket exists on the ledger (and the ledger answered)
//  8. the claimed address purchased the ticket
//
// Ownership is read from the ledger on every request and never cached.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/crossfi-tickets/ticketgate/internal/challenge"
	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
)

// Request is a single ticket access attempt.
type Request struct {
	// TicketID is the ticket being requested.
	TicketID uint64
	// ClaimedAddress is the wallet the client says it controls.
	ClaimedAddress string
	// Signature is the hex personal-message signature over Message.
	Signature string
	// Message is the signed challenge.
	Message string
	// ObservedAt is the evaluation time. Zero means the authorizer's clock.
	ObservedAt time.Time
}

// Decision is the outcome of Decide.
type Decision struct {
	// Allowed is true only when Reason is ReasonAllowed.
	Allowed bool
	// Reason is the first failing check, or ReasonAllowed.
	Reason Reason
	// Detail adds request-specific context for the client.
	Detail string
	// Ticket is the ledger record read during the ownership check. It is set
	// whenever the ledger returned the ticket.
	Ticket *ledger.TicketInfo
}

// Options configures an Authorizer.
type Options struct {
	// Policy controls challenge freshness.
	Policy challenge.Policy
	// LedgerTimeout bounds the ownership read. Zero leaves the reader's own
	// timeout in charge.
	LedgerTimeout time.Duration
	// Now overrides the clock.
	Now func() time.Time
	// Meter records decision counts. Nil disables metrics.
	Meter metric.Meter
}

// Authorizer evaluates access requests against a ledger.
type Authorizer struct {
	logger        *slog.Logger
	reader        ledger.Reader
	policy        challenge.Policy
	ledgerTimeout time.Duration
	now           func() time.Time
	decisions     metric.Int64Counter
}

// New creates an Authorizer reading ownership from reader.
func New(
	logger *slog.Logger,
	reader ledger.Reader,
	opts Options,
) (*Authorizer, error) {
	if reader == nil {
		return nil, fmt.Errorf("ledger reader cannot be nil")
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	meter := opts.Meter
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("ticketgate/access")
	}

	decisions, err := meter.Int64Counter(
		"ticketgate.access.decisions",
		metric.WithDescription("Ticket access decisions by reason."),
	)
	if err != nil {
		return nil, fmt.Errorf("create decision counter: %w", err)
	}

	return &Authorizer{
		logger:        logger.With(slog.String("component", "access")),
		reader:        reader,
		policy:        opts.Policy,
		ledgerTimeout: opts.LedgerTimeout,
		now:           now,
		decisions:     decisions,
	}, nil
}

// Decide evaluates req. It never returns an error: every failure is a
// Decision with a reason.
func (a *Authorizer) Decide(
	ctx context.Context,
	req Request,
) Decision {
	d := a.decide(ctx, req)

	a.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", d.Reason.String()),
	))
	a.logger.Debug(
		"access decision",
		slog.Uint64("ticket_id", req.TicketID),
		slog.String("address", req.ClaimedAddress),
		slog.String("reason", d.Reason.String()),
		slog.Bool("allowed", d.Allowed),
	)

	return d
}

func (a *Authorizer) decide(
	ctx context.Context,
	req Request,
) Decision {
	claimed := strings.TrimSpace(req.ClaimedAddress)
	if req.TicketID == 0 || claimed == "" ||
		strings.TrimSpace(req.Signature) == "" || req.Message == "" {
		return deny(ReasonMissingCredentials, "address, signature and message are required")
	}

	c, err := challenge.Parse(req.Message)
	if err != nil {
		return deny(ReasonMalformedMessage, "required format: "+challenge.RequiredFormat)
	}

	if c.TicketID != req.TicketID {
		return deny(ReasonTicketIDMismatch, "Message references different ticket")
	}

	observedAt := req.ObservedAt
	if observedAt.IsZero() {
		observedAt = a.now()
	}

	if !a.policy.Fresh(c.IssuedAt, observedAt) {
		window := a.policy.Window
		if window <= 0 {
			window = challenge.DefaultWindow
		}
		return deny(ReasonExpiredChallenge, fmt.Sprintf(
			"Signature is %d seconds old (max %d allowed)",
			int64(challenge.Age(c.IssuedAt, observedAt)/time.Second),
			int64(window/time.Second),
		))
	}

	signer, err := signature.RecoverSigner(req.Message, req.Signature)
	if err != nil {
		return deny(ReasonSignatureInvalid, "Signature could not be verified")
	}

	if !signature.AddressesEqual(signer.Hex(), claimed) {
		return deny(ReasonSignerMismatch, "Signer address does not match provided address")
	}

	info, err := a.readTicket(ctx, req.TicketID)
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return deny(ReasonTicketNotFound, fmt.Sprintf("Ticket %d does not exist", req.TicketID))
	case err != nil:
		a.logger.Warn(
			"ledger read failed",
			slog.Uint64("ticket_id", req.TicketID),
			slog.String("error", err.Error()),
		)
		return deny(ReasonServiceUnavailable, "Ownership could not be confirmed, try again later")
	}

	if !signature.AddressesEqual(info.Purchaser.Hex(), claimed) {
		d := deny(ReasonNotOwner, "Connected wallet does not own this ticket")
		d.Ticket = &info
		return d
	}

	return Decision{
		Allowed: true,
		Reason:  ReasonAllowed,
		Ticket:  &info,
	}
}

func (a *Authorizer) readTicket(
	ctx context.Context,
	id uint64,
) (ledger.TicketInfo, error) {
	if a.ledgerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.ledgerTimeout)
		defer cancel()
	}

	info, err := a.reader.GetTicket(ctx, id)
	if err != nil && ctx.Err() != nil && !errors.Is(err, ledger.ErrNotFound) {
		return ledger.TicketInfo{}, fmt.Errorf("%w: %w", ledger.ErrUnavailable, ctx.Err())
	}

	return info, err
}

func deny(
	reason Reason,
	detail string,
) Decision {
	return Decision{
		Allowed: false,
		Reason:  reason,
		Detail:  detail,
	}
}
