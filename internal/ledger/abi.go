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
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract method names.
const (
	methodGetTicketInfo  = "getTicketInfo"
	methodGetEvent       = "getEvent"
	methodGetTicketTier  = "getTicketTier"
	methodGetUserTickets = "getUserTickets"
	methodVerifyTicket   = "verifyTicket"
)

// EventManagerABI is the subset of the EventManager ABI read by the service.
const EventManagerABI = `[
  {"type":"function","name":"getTicketInfo","stateMutability":"view",
   "inputs":[{"name":"ticketId","type":"uint256"}],
   "outputs":[
     {"name":"id","type":"uint256"},
     {"name":"eventId","type":"uint256"},
     {"name":"tierId","type":"uint256"},
     {"name":"purchaser","type":"address"},
     {"name":"attendeeCount","type":"uint256"},
     {"name":"totalAmountPaid","type":"uint256"},
     {"name":"purchaseTimestamp","type":"uint256"},
     {"name":"paymentToken","type":"uint8"},
     {"name":"used","type":"bool"},
     {"name":"eventStatusAtPurchase","type":"uint8"},
     {"name":"currentEventStatus","type":"uint8"},
     {"name":"valid","type":"bool"},
     {"name":"reason","type":"string"}]},
  {"type":"function","name":"getEvent","stateMutability":"view",
   "inputs":[{"name":"eventId","type":"uint256"}],
   "outputs":[
     {"name":"id","type":"uint256"},
     {"name":"organizer","type":"address"},
     {"name":"title","type":"string"},
     {"name":"description","type":"string"},
     {"name":"location","type":"string"},
     {"name":"startDate","type":"uint256"},
     {"name":"endDate","type":"uint256"},
     {"name":"metadataURI","type":"string"},
     {"name":"active","type":"bool"},
     {"name":"tierCount","type":"uint256"}]},
  {"type":"function","name":"getTicketTier","stateMutability":"view",
   "inputs":[{"name":"eventId","type":"uint256"},{"name":"tierId","type":"uint256"}],
   "outputs":[
     {"name":"name","type":"string"},
     {"name":"pricePerPerson","type":"uint256"},
     {"name":"maxSupply","type":"uint256"},
     {"name":"currentSupply","type":"uint256"},
     {"name":"tokenType","type":"uint8"},
     {"name":"active","type":"bool"}]},
  {"type":"function","name":"getUserTickets","stateMutability":"view",
   "inputs":[{"name":"user","type":"address"}],
   "outputs":[{"name":"","type":"uint256[]"}]},
  {"type":"function","name":"verifyTicket","stateMutability":"view",
   "inputs":[{"name":"ticketId","type":"uint256"}],
   "outputs":[{"name":"valid","type":"bool"},{"name":"reason","type":"string"}]}
]`

var eventManager = mustParseABI(EventManagerABI)

func mustParseABI(
	definition string,
) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("parse EventManager ABI: %v", err))
	}

	return parsed
}

func decodeTicketInfo(
	values []interface{},
) (TicketInfo, error) {
	if len(values) != 13 {
		return TicketInfo{}, fmt.Errorf("%w: ticket tuple has %d fields", ErrInvalidResponse, len(values))
	}

	var (
		d    decoder
		info TicketInfo
	)
	info.ID = d.asUint64(values[0], "id")
	info.EventID = d.asUint64(values[1], "eventId")
	info.TierID = d.asUint64(values[2], "tierId")
	info.Purchaser = d.asAddress(values[3], "purchaser")
	info.AttendeeCount = d.asUint64(values[4], "attendeeCount")
	info.TotalAmountPaid = d.asBigInt(values[5], "totalAmountPaid")
	info.PurchaseTimestamp = int64(d.asUint64(values[6], "purchaseTimestamp"))
	info.PaymentToken = TokenType(d.asUint8(values[7], "paymentToken"))
	info.Used = d.asBool(values[8], "used")
	info.EventStatusAtPurchase = EventStatus(d.asUint8(values[9], "eventStatusAtPurchase"))
	info.CurrentEventStatus = EventStatus(d.asUint8(values[10], "currentEventStatus"))
	info.Valid = d.asBool(values[11], "valid")
	info.Reason = d.asString(values[12], "reason")

	return info, d.err
}

func decodeEvent(
	values []interface{},
) (Event, error) {
	if len(values) != 10 {
		return Event{}, fmt.Errorf("%w: event tuple has %d fields", ErrInvalidResponse, len(values))
	}

	var (
		d     decoder
		event Event
	)
	event.ID = d.asUint64(values[0], "id")
	event.Organizer = d.asAddress(values[1], "organizer")
	event.Title = d.asString(values[2], "title")
	event.Description = d.asString(values[3], "description")
	event.Location = d.asString(values[4], "location")
	event.StartDate = int64(d.asUint64(values[5], "startDate"))
	event.EndDate = int64(d.asUint64(values[6], "endDate"))
	event.MetadataURI = d.asString(values[7], "metadataURI")
	event.Active = d.asBool(values[8], "active")
	event.TierCount = d.asUint64(values[9], "tierCount")

	return event, d.err
}

func decodeTier(
	values []interface{},
) (Tier, error) {
	if len(values) != 6 {
		return Tier{}, fmt.Errorf("%w: tier tuple has %d fields", ErrInvalidResponse, len(values))
	}

	var (
		d    decoder
		tier Tier
	)
	tier.Name = d.asString(values[0], "name")
	tier.PricePerPerson = d.asBigInt(values[1], "pricePerPerson")
	tier.MaxSupply = d.asUint64(values[2], "maxSupply")
	tier.CurrentSupply = d.asUint64(values[3], "currentSupply")
	tier.TokenType = TokenType(d.asUint8(values[4], "tokenType"))
	tier.Active = d.asBool(values[5], "active")

	return tier, d.err
}

func decodeTicketIDs(
	values []interface{},
) ([]uint64, error) {
	if len(values) != 1 {
		return nil, fmt.Errorf("%w: ticket list has %d fields", ErrInvalidResponse, len(values))
	}

	raw, ok := values[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: ticket list has type %T", ErrInvalidResponse, values[0])
	}

	var d decoder
	ids := make([]uint64, 0, len(raw))
	for _, v := range raw {
		ids = append(ids, d.asUint64(v, "ticketId"))
	}

	return ids, d.err
}

func decodeVerification(
	values []interface{},
) (Verification, error) {
	if len(values) != 2 {
		return Verification{}, fmt.Errorf("%w: verification has %d fields", ErrInvalidResponse, len(values))
	}

	var d decoder
	v := Verification{
		Valid:  d.asBool(values[0], "valid"),
		Reason: d.asString(values[1], "reason"),
	}

	return v, d.err
}

// decoder converts ABI values and keeps the first conversion error.
type decoder struct {
	err error
}

func (d *decoder) fail(
	field string,
	v interface{},
) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: field %s has unexpected value %v (%T)", ErrInvalidResponse, field, v, v)
	}
}

func (d *decoder) asBigInt(
	v interface{},
	field string,
) *big.Int {
	n, ok := v.(*big.Int)
	if !ok || n == nil {
		d.fail(field, v)
		return new(big.Int)
	}

	return n
}

func (d *decoder) asUint64(
	v interface{},
	field string,
) uint64 {
	n := d.asBigInt(v, field)
	if !n.IsUint64() || n.Uint64() > 1<<63-1 {
		d.fail(field, v)
		return 0
	}

	return n.Uint64()
}

func (d *decoder) asUint8(
	v interface{},
	field string,
) uint8 {
	n, ok := v.(uint8)
	if !ok {
		d.fail(field, v)
	}

	return n
}

func (d *decoder) asBool(
	v interface{},
	field string,
) bool {
	b, ok := v.(bool)
	if !ok {
		d.fail(field, v)
	}

	return b
}

func (d *decoder) asString(
	v interface{},
	field string,
) string {
	s, ok := v.(string)
	if !ok {
		d.fail(field, v)
	}

	return s
}

func (d *decoder) asAddress(
	v interface{},
	field string,
) common.Address {
	a, ok := v.(common.Address)
	if !ok {
		d.fail(field, v)
	}

	return a
}
