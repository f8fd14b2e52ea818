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
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// MemoryReader is an in-process ledger used for local development and tests.
type MemoryReader struct {
	mu      sync.RWMutex
	events  map[uint64]Event
	tiers   map[uint64][]Tier
	tickets map[uint64]TicketInfo
}

// NewMemoryReader returns an empty in-memory ledger.
func NewMemoryReader() *MemoryReader {
	return &MemoryReader{
		events:  make(map[uint64]Event),
		tiers:   make(map[uint64][]Tier),
		tickets: make(map[uint64]TicketInfo),
	}
}

// PutEvent stores an event and replaces its tiers. Tier ids are assigned by
// position and TierCount is kept in sync.
func (m *MemoryReader) PutEvent(
	event Event,
	tiers ...Tier,
) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]Tier, len(tiers))
	for i, t := range tiers {
		t.ID = uint64(i)
		stored[i] = t
	}

	event.TierCount = uint64(len(stored))
	m.events[event.ID] = event
	m.tiers[event.ID] = stored
}

// PutTicket stores a ticket record.
func (m *MemoryReader) PutTicket(
	ticket TicketInfo,
) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tickets[ticket.ID] = ticket
}

// GetTicket implements Reader.
func (m *MemoryReader) GetTicket(
	ctx context.Context,
	id uint64,
) (TicketInfo, error) {
	if err := ctx.Err(); err != nil {
		return TicketInfo{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tickets[id]
	if !ok {
		return TicketInfo{}, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
	}

	return t, nil
}

// GetEvent implements Reader.
func (m *MemoryReader) GetEvent(
	ctx context.Context,
	id uint64,
) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[id]
	if !ok {
		return Event{}, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}

	return e, nil
}

// GetTier implements Reader.
func (m *MemoryReader) GetTier(
	ctx context.Context,
	eventID uint64,
	tierID uint64,
) (Tier, error) {
	if err := ctx.Err(); err != nil {
		return Tier{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	tiers := m.tiers[eventID]
	if tierID >= uint64(len(tiers)) {
		return Tier{}, fmt.Errorf("event %d tier %d: %w", eventID, tierID, ErrNotFound)
	}

	return tiers[tierID], nil
}

// GetUserTickets implements Reader. Ids are returned in ascending order.
func (m *MemoryReader) GetUserTickets(
	ctx context.Context,
	owner common.Address,
) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]uint64, 0)
	for id, t := range m.tickets {
		if t.Purchaser == owner {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

// VerifyTicket implements Reader.
func (m *MemoryReader) VerifyTicket(
	ctx context.Context,
	id uint64,
) (Verification, error) {
	t, err := m.GetTicket(ctx, id)
	if err != nil {
		return Verification{}, err
	}

	if t.Used {
		return Verification{Valid: false, Reason: "Ticket already used"}, nil
	}

	return Verification{Valid: t.Valid, Reason: t.Reason}, nil
}

// Ping implements Reader.
func (m *MemoryReader) Ping(
	ctx context.Context,
) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return nil
}

// Demo addresses used by DemoFixtures.
var (
	DemoOrganizer = common.HexToAddress("0x1f9031A2beA086a591e9872FE3A26F01570A8B2A")
	DemoAttendee  = common.HexToAddress("0x2f9031A2beA086a591e9872FE3A26F01570A8B2B")
)

// DemoFixtures seeds a reader with three upcoming events relative to now and
// two tickets owned by DemoAttendee.
func DemoFixtures(
	now time.Time,
) *MemoryReader {
	const day = 24 * 60 * 60

	m := NewMemoryReader()
	ts := now.Unix()

	m.PutEvent(
		Event{
			ID:          1,
			Organizer:   DemoOrganizer,
			Title:       "CrossFi Developer Conference",
			Description: "Builders of the CrossFi chain meet for two days of talks and workshops.",
			Location:    "San Francisco, CA",
			StartDate:   ts + 7*day,
			EndDate:     ts + 8*day,
			MetadataURI: "ipfs://QmExample",
			Active:      true,
		},
		demoTier("General Admission", "0.1", 500, 150, TokenXFI),
		demoTier("VIP", "0.5", 100, 25, TokenXFI),
		demoTier("Premium", "1.0", 50, 10, TokenXUSD),
	)
	m.PutEvent(
		Event{
			ID:          2,
			Organizer:   common.HexToAddress("0x3f9031A2beA086a591e9872FE3A26F01570A8B2C"),
			Title:       "DeFi Summit",
			Description: "Decentralized finance with industry leaders and innovators.",
			Location:    "New York, NY",
			StartDate:   ts + 14*day,
			EndDate:     ts + 15*day,
			MetadataURI: "ipfs://QmExample2",
			Active:      true,
		},
		demoTier("Standard", "0.2", 300, 80, TokenXUSD),
		demoTier("VIP", "0.8", 100, 30, TokenMPX),
	)
	m.PutEvent(
		Event{
			ID:          3,
			Organizer:   DemoOrganizer,
			Title:       "Web3 Gaming Expo",
			Description: "Blockchain gaming and NFT showcase.",
			Location:    "Los Angeles, CA",
			StartDate:   ts + 21*day,
			EndDate:     ts + 22*day,
			MetadataURI: "ipfs://QmExample3",
			Active:      true,
		},
		demoTier("General", "0.15", 400, 120, TokenXFI),
		demoTier("VIP", "0.6", 80, 20, TokenXUSD),
	)

	m.PutTicket(TicketInfo{
		ID:                1,
		EventID:           1,
		TierID:            1,
		Purchaser:         DemoAttendee,
		AttendeeCount:     2,
		TotalAmountPaid:   weiFromEther("1.0"),
		PurchaseTimestamp: ts - day,
		PaymentToken:      TokenXFI,
		Valid:             true,
		Reason:            "Valid ticket",
	})
	m.PutTicket(TicketInfo{
		ID:                2,
		EventID:           2,
		TierID:            0,
		Purchaser:         DemoAttendee,
		AttendeeCount:     1,
		TotalAmountPaid:   weiFromEther("0.2"),
		PurchaseTimestamp: ts - 2*day,
		PaymentToken:      TokenXUSD,
		Valid:             true,
		Reason:            "Valid ticket",
	})

	return m
}

func demoTier(
	name string,
	price string,
	maxSupply uint64,
	currentSupply uint64,
	token TokenType,
) Tier {
	return Tier{
		Name:           name,
		PricePerPerson: weiFromEther(price),
		MaxSupply:      maxSupply,
		CurrentSupply:  currentSupply,
		TokenType:      token,
		Active:         true,
	}
}

// weiFromEther converts a fixture decimal string to wei. Only used with
// constant inputs.
func weiFromEther(
	s string,
) *big.Int {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("invalid fixture amount " + s)
	}
	r.Mul(r, new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)))

	return new(big.Int).Quo(r.Num(), r.Denom())
}
