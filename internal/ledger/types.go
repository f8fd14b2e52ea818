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

// Package ledger reads ticketing state from the EventManager contract.
package ledger

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrNotFound is returned when the ledger has no record for the requested id.
	ErrNotFound = errors.New("ledger record not found")
	// ErrUnavailable is returned when the ledger cannot be reached in time.
	ErrUnavailable = errors.New("ledger unavailable")
	// ErrInvalidResponse is returned when a contract response does not match
	// the expected shape.
	ErrInvalidResponse = errors.New("invalid ledger response")
)

// Reader is the read-only view of the EventManager contract used by the
// service. Every call reads fresh state.
type Reader interface {
	// GetTicket returns the ticket record for id.
	GetTicket(ctx context.Context, id uint64) (TicketInfo, error)
	// GetEvent returns the event record for id.
	GetEvent(ctx context.Context, id uint64) (Event, error)
	// GetTier returns the tier record of an event.
	GetTier(ctx context.Context, eventID uint64, tierID uint64) (Tier, error)
	// GetUserTickets returns the ticket ids purchased by owner.
	GetUserTickets(ctx context.Context, owner common.Address) ([]uint64, error)
	// VerifyTicket returns the contract's validity verdict for a ticket.
	VerifyTicket(ctx context.Context, id uint64) (Verification, error)
	// Ping checks the ledger is reachable.
	Ping(ctx context.Context) error
}

// TokenType is the payment token index used by the contract.
type TokenType uint8

const (
	// TokenXFI is the native CrossFi token.
	TokenXFI TokenType = iota
	// TokenXUSD is the XUSD stablecoin.
	TokenXUSD
	// TokenMPX is the MPX token.
	TokenMPX
)

var tokenNames = [...]string{"XFI", "XUSD", "MPX"}

// String returns the token symbol. Unknown indices map to XFI.
func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}

	return tokenNames[TokenXFI]
}

// ParseTokenType maps a symbol (case-insensitive) to its index.
func ParseTokenType(
	s string,
) (TokenType, bool) {
	for i, name := range tokenNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return TokenType(i), true
		}
	}

	return TokenXFI, false
}

// EventStatus is the lifecycle index used by the contract.
type EventStatus uint8

const (
	// StatusUpcoming means the event has not started.
	StatusUpcoming EventStatus = iota
	// StatusLive means the event is running.
	StatusLive
	// StatusEnded means the event is over.
	StatusEnded
)

var statusNames = [...]string{"upcoming", "live", "ended"}

// String returns the status name. Unknown indices map to upcoming.
func (s EventStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}

	return statusNames[StatusUpcoming]
}

// TicketInfo is the decoded getTicketInfo record.
type TicketInfo struct {
	ID                    uint64
	EventID               uint64
	TierID                uint64
	Purchaser             common.Address
	AttendeeCount         uint64
	TotalAmountPaid       *big.Int
	PurchaseTimestamp     int64
	PaymentToken          TokenType
	Used                  bool
	EventStatusAtPurchase EventStatus
	CurrentEventStatus    EventStatus
	Valid                 bool
	Reason                string
}

// Event is the decoded getEvent record.
type Event struct {
	ID          uint64
	Organizer   common.Address
	Title       string
	Description string
	Location    string
	StartDate   int64
	EndDate     int64
	MetadataURI string
	Active      bool
	TierCount   uint64
}

// Tier is the decoded getTicketTier record. ID is not part of the contract
// tuple and is filled in from the request.
type Tier struct {
	ID             uint64
	Name           string
	PricePerPerson *big.Int
	MaxSupply      uint64
	CurrentSupply  uint64
	TokenType      TokenType
	Active         bool
}

// Available returns the number of seats left in the tier.
func (t Tier) Available() uint64 {
	if t.CurrentSupply >= t.MaxSupply {
		return 0
	}

	return t.MaxSupply - t.CurrentSupply
}

// Verification is the decoded verifyTicket result.
type Verification struct {
	Valid  bool
	Reason string
}
