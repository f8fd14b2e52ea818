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
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"
)

type fakeBackend struct {
	outputs  map[string][]interface{}
	errs     map[string]error
	block    bool
	chainID  *big.Int
	chainErr error
	inputs   map[string][]interface{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		outputs: make(map[string][]interface{}),
		errs:    make(map[string]error),
		inputs:  make(map[string][]interface{}),
		chainID: big.NewInt(4157),
	}
}

func (f *fakeBackend) CallContract(
	ctx context.Context,
	call ethereum.CallMsg,
	_ *big.Int,
) ([]byte, error) {
	method, err := eventManager.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}

	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}
	f.inputs[method.Name] = args

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	if err := f.errs[method.Name]; err != nil {
		return nil, err
	}

	values, ok := f.outputs[method.Name]
	if !ok {
		return nil, nil
	}

	return method.Outputs.Pack(values...)
}

func (f *fakeBackend) ChainID(
	_ context.Context,
) (*big.Int, error) {
	return f.chainID, f.chainErr
}

type RPCReaderTestSuite struct {
	suite.Suite

	ctx       context.Context
	backend   *fakeBackend
	reader    *RPCReader
	purchaser common.Address
	organizer common.Address
}

func (s *RPCReaderTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = newFakeBackend()
	s.purchaser = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	s.organizer = common.HexToAddress("0x00000000000000000000000000000000000000bb")

	var err error
	s.reader, err = NewRPCReader(slog.Default(), s.backend, Options{
		Contract: common.HexToAddress("0x0000000000000000000000000000000000000123"),
		ChainID:  4157,
		Timeout:  50 * time.Millisecond,
	})
	s.Require().NoError(err)
}

func (s *RPCReaderTestSuite) ticketTuple(
	id int64,
	purchaser common.Address,
) []interface{} {
	return []interface{}{
		big.NewInt(id),
		big.NewInt(3),
		big.NewInt(1),
		purchaser,
		big.NewInt(2),
		big.NewInt(1_000_000_000_000_000_000),
		big.NewInt(1_700_000_000),
		uint8(1),
		false,
		uint8(0),
		uint8(1),
		true,
		"Valid ticket",
	}
}

func (s *RPCReaderTestSuite) TestNewRPCReader() {
	tests := []struct {
		name        string
		backend     Backend
		opts        Options
		expectedErr string
	}{
		{
			name:        "nil backend",
			backend:     nil,
			expectedErr: "backend cannot be nil",
		},
		{
			name:        "empty contract",
			backend:     s.backend,
			expectedErr: "contract address cannot be empty",
		},
		{
			name:    "defaults timeout",
			backend: s.backend,
			opts:    Options{Contract: common.HexToAddress("0x01")},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			r, err := NewRPCReader(slog.Default(), tt.backend, tt.opts)

			if tt.expectedErr != "" {
				s.ErrorContains(err, tt.expectedErr)
				s.Nil(r)
				return
			}

			s.NoError(err)
			s.Equal(DefaultTimeout, r.timeout)
		})
	}
}

func (s *RPCReaderTestSuite) TestGetTicket() {
	tests := []struct {
		name      string
		setup     func()
		expectErr error
		validate  func(TicketInfo)
	}{
		{
			name: "decodes tuple",
			setup: func() {
				s.backend.outputs[methodGetTicketInfo] = s.ticketTuple(42, s.purchaser)
			},
			validate: func(info TicketInfo) {
				s.Equal(uint64(42), info.ID)
				s.Equal(uint64(3), info.EventID)
				s.Equal(uint64(1), info.TierID)
				s.Equal(s.purchaser, info.Purchaser)
				s.Equal(uint64(2), info.AttendeeCount)
				s.Equal("1000000000000000000", info.TotalAmountPaid.String())
				s.Equal(int64(1_700_000_000), info.PurchaseTimestamp)
				s.Equal(TokenXUSD, info.PaymentToken)
				s.Equal(StatusUpcoming, info.EventStatusAtPurchase)
				s.Equal(StatusLive, info.CurrentEventStatus)
				s.True(info.Valid)
				s.Equal("Valid ticket", info.Reason)
				s.Equal(big.NewInt(42), s.backend.inputs[methodGetTicketInfo][0])
			},
		},
		{
			name: "zero purchaser is not found",
			setup: func() {
				s.backend.outputs[methodGetTicketInfo] = s.ticketTuple(42, common.Address{})
			},
			expectErr: ErrNotFound,
		},
		{
			name: "revert is not found",
			setup: func() {
				s.backend.errs[methodGetTicketInfo] = errors.New("execution reverted: Ticket does not exist")
			},
			expectErr: ErrNotFound,
		},
		{
			name: "transport error is unavailable",
			setup: func() {
				s.backend.errs[methodGetTicketInfo] = errors.New("dial tcp: connection refused")
			},
			expectErr: ErrUnavailable,
		},
		{
			name:      "empty output is unavailable",
			setup:     func() {},
			expectErr: ErrUnavailable,
		},
		{
			name: "timeout is unavailable",
			setup: func() {
				s.backend.block = true
			},
			expectErr: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setup()

			info, err := s.reader.GetTicket(s.ctx, 42)

			if tt.expectErr != nil {
				s.Error(err)
				s.True(errors.Is(err, tt.expectErr), err.Error())
				return
			}

			s.NoError(err)
			tt.validate(info)
		})
	}
}

func (s *RPCReaderTestSuite) TestGetEvent() {
	s.backend.outputs[methodGetEvent] = []interface{}{
		big.NewInt(7),
		s.organizer,
		"Title",
		"Description",
		"Somewhere",
		big.NewInt(100),
		big.NewInt(200),
		"ipfs://x",
		true,
		big.NewInt(2),
	}

	event, err := s.reader.GetEvent(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal(Event{
		ID:          7,
		Organizer:   s.organizer,
		Title:       "Title",
		Description: "Description",
		Location:    "Somewhere",
		StartDate:   100,
		EndDate:     200,
		MetadataURI: "ipfs://x",
		Active:      true,
		TierCount:   2,
	}, event)

	s.backend.outputs[methodGetEvent][0] = big.NewInt(0)
	_, err = s.reader.GetEvent(s.ctx, 7)
	s.True(errors.Is(err, ErrNotFound))
}

func (s *RPCReaderTestSuite) TestGetTier() {
	s.backend.outputs[methodGetTicketTier] = []interface{}{
		"VIP",
		big.NewInt(500),
		big.NewInt(100),
		big.NewInt(25),
		uint8(2),
		true,
	}

	tier, err := s.reader.GetTier(s.ctx, 7, 1)
	s.Require().NoError(err)
	s.Equal(uint64(1), tier.ID)
	s.Equal("VIP", tier.Name)
	s.Equal(int64(500), tier.PricePerPerson.Int64())
	s.Equal(uint64(75), tier.Available())
	s.Equal(TokenMPX, tier.TokenType)
	s.Equal([]interface{}{big.NewInt(7), big.NewInt(1)}, s.backend.inputs[methodGetTicketTier])
}

func (s *RPCReaderTestSuite) TestGetUserTickets() {
	s.backend.outputs[methodGetUserTickets] = []interface{}{
		[]*big.Int{big.NewInt(3), big.NewInt(9)},
	}

	ids, err := s.reader.GetUserTickets(s.ctx, s.purchaser)
	s.NoError(err)
	s.Equal([]uint64{3, 9}, ids)
	s.Equal(s.purchaser, s.backend.inputs[methodGetUserTickets][0])
}

func (s *RPCReaderTestSuite) TestVerifyTicket() {
	s.backend.outputs[methodVerifyTicket] = []interface{}{false, "Ticket already used"}

	v, err := s.reader.VerifyTicket(s.ctx, 1)
	s.NoError(err)
	s.Equal(Verification{Valid: false, Reason: "Ticket already used"}, v)
}

func (s *RPCReaderTestSuite) TestPing() {
	tests := []struct {
		name      string
		chainID   *big.Int
		chainErr  error
		expectErr bool
	}{
		{
			name:    "matching chain",
			chainID: big.NewInt(4157),
		},
		{
			name:      "wrong chain",
			chainID:   big.NewInt(1),
			expectErr: true,
		},
		{
			name:      "rpc error",
			chainErr:  errors.New("boom"),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.backend.chainID = tt.chainID
			s.backend.chainErr = tt.chainErr

			err := s.reader.Ping(s.ctx)

			if tt.expectErr {
				s.True(errors.Is(err, ErrUnavailable))
				return
			}

			s.NoError(err)
		})
	}
}

func (s *RPCReaderTestSuite) TestDecodeRejectsWrongShape() {
	_, err := decodeTicketInfo([]interface{}{big.NewInt(1)})
	s.True(errors.Is(err, ErrInvalidResponse))

	values := s.ticketTuple(1, s.purchaser)
	values[7] = "not a uint8"
	_, err = decodeTicketInfo(values)
	s.True(errors.Is(err, ErrInvalidResponse))
}

func TestRPCReaderTestSuite(t *testing.T) {
	suite.Run(t, new(RPCReaderTestSuite))
}
