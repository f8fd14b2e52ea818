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

package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// DefaultTimeout bounds a single contract call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Backend is the subset of an Ethereum JSON-RPC client used by RPCReader.
type Backend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// RPCReader reads the EventManager contract over JSON-RPC.
type RPCReader struct {
	logger   *slog.Logger
	backend  Backend
	contract common.Address
	chainID  uint64
	timeout  time.Duration
	duration metric.Float64Histogram
}

// Options configures an RPCReader.
type Options struct {
	// Contract is the EventManager address.
	Contract common.Address
	// ChainID is the expected chain. Zero skips the check in Ping.
	ChainID uint64
	// Timeout bounds each call. Zero means DefaultTimeout.
	Timeout time.Duration
	// Meter records call durations. Nil disables metrics.
	Meter metric.Meter
}

// NewRPCReader creates a reader over backend.
func NewRPCReader(
	logger *slog.Logger,
	backend Backend,
	opts Options,
) (*RPCReader, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}

	if opts.Contract == (common.Address{}) {
		return nil, fmt.Errorf("contract address cannot be empty")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	meter := opts.Meter
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("ticketgate/ledger")
	}

	duration, err := meter.Float64Histogram(
		"ticketgate.ledger.call.duration",
		metric.WithDescription("Duration of EventManager contract calls."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create ledger call histogram: %w", err)
	}

	return &RPCReader{
		logger:   logger.With(slog.String("component", "ledger")),
		backend:  backend,
		contract: opts.Contract,
		chainID:  opts.ChainID,
		timeout:  timeout,
		duration: duration,
	}, nil
}

// Dial connects to a JSON-RPC endpoint and returns a reader together with
// a function that closes the connection.
func Dial(
	ctx context.Context,
	logger *slog.Logger,
	url string,
	opts Options,
) (*RPCReader, func(), error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial ledger rpc %s: %w", url, err)
	}

	reader, err := NewRPCReader(logger, client, opts)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	return reader, client.Close, nil
}

// GetTicket reads getTicketInfo. A record with a zero purchaser is treated
// as missing.
func (r *RPCReader) GetTicket(
	ctx context.Context,
	id uint64,
) (TicketInfo, error) {
	values, err := r.call(ctx, methodGetTicketInfo, new(big.Int).SetUint64(id))
	if err != nil {
		return TicketInfo{}, err
	}

	info, err := decodeTicketInfo(values)
	if err != nil {
		return TicketInfo{}, err
	}

	if info.ID == 0 || info.Purchaser == (common.Address{}) {
		return TicketInfo{}, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
	}

	return info, nil
}

// GetEvent reads getEvent. A record with a zero id or organizer is treated
// as missing.
func (r *RPCReader) GetEvent(
	ctx context.Context,
	id uint64,
) (Event, error) {
	values, err := r.call(ctx, methodGetEvent, new(big.Int).SetUint64(id))
	if err != nil {
		return Event{}, err
	}

	event, err := decodeEvent(values)
	if err != nil {
		return Event{}, err
	}

	if event.ID == 0 || event.Organizer == (common.Address{}) {
		return Event{}, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}

	return event, nil
}

// GetTier reads getTicketTier.
func (r *RPCReader) GetTier(
	ctx context.Context,
	eventID uint64,
	tierID uint64,
) (Tier, error) {
	values, err := r.call(
		ctx,
		methodGetTicketTier,
		new(big.Int).SetUint64(eventID),
		new(big.Int).SetUint64(tierID),
	)
	if err != nil {
		return Tier{}, err
	}

	tier, err := decodeTier(values)
	if err != nil {
		return Tier{}, err
	}
	tier.ID = tierID

	return tier, nil
}

// GetUserTickets reads getUserTickets.
func (r *RPCReader) GetUserTickets(
	ctx context.Context,
	owner common.Address,
) ([]uint64, error) {
	values, err := r.call(ctx, methodGetUserTickets, owner)
	if err != nil {
		return nil, err
	}

	return decodeTicketIDs(values)
}

// VerifyTicket reads verifyTicket.
func (r *RPCReader) VerifyTicket(
	ctx context.Context,
	id uint64,
) (Verification, error) {
	values, err := r.call(ctx, methodVerifyTicket, new(big.Int).SetUint64(id))
	if err != nil {
		return Verification{}, err
	}

	return decodeVerification(values)
}

// Ping checks the endpoint answers and serves the configured chain.
func (r *RPCReader) Ping(
	ctx context.Context,
) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	id, err := r.backend.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("%w: chain id: %w", ErrUnavailable, err)
	}

	if r.chainID != 0 && (!id.IsUint64() || id.Uint64() != r.chainID) {
		return fmt.Errorf("%w: connected to chain %s, want %d", ErrUnavailable, id, r.chainID)
	}

	return nil
}

func (r *RPCReader) call(
	ctx context.Context,
	method string,
	args ...interface{},
) ([]interface{}, error) {
	input, err := eventManager.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	output, err := r.backend.CallContract(ctx, ethereum.CallMsg{
		To:   &r.contract,
		Data: input,
	}, nil)
	err = classify(ctx, method, output, err)

	r.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome(err)),
	))

	if err != nil {
		r.logger.Debug(
			"ledger call failed",
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	values, err := eventManager.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("%w: unpack %s: %w", ErrInvalidResponse, method, err)
	}

	return values, nil
}

// classify maps transport and contract failures onto the package sentinels.
// Reverts mean the id does not exist; everything else is an availability
// problem.
func classify(
	ctx context.Context,
	method string,
	output []byte,
	err error,
) error {
	if err == nil {
		if len(output) == 0 {
			return fmt.Errorf("%w: %s returned no data, is the contract deployed?", ErrUnavailable, method)
		}
		return nil
	}

	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, method, err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "execution reverted") ||
		strings.Contains(msg, "invalid opcode") {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, method, err)
	}

	return fmt.Errorf("%w: %s: %w", ErrUnavailable, method, err)
}

func outcome(
	err error,
) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "unavailable"
	}
}
