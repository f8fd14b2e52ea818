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

// Package ticket projects typed ledger records into the shapes returned to
// API clients.
package ticket

import (
	"time"

	"github.com/crossfi-tickets/ticketgate/internal/ledger"
)

// Event lifecycle names derived from wall-clock time.
const (
	StatusUpcoming = "upcoming"
	StatusLive     = "live"
	StatusEnded    = "ended"
)

// View is the client representation of a ticket.
type View struct {
	ID                    uint64 `json:"id"`
	EventID               uint64 `json:"eventId"`
	EventTitle            string `json:"eventTitle"`
	EventLocation         string `json:"eventLocation"`
	EventStartDate        int64  `json:"eventStartDate"`
	EventEndDate          int64  `json:"eventEndDate"`
	TierName              string `json:"tierName"`
	PricePerPerson        string `json:"pricePerPerson"`
	AttendeeCount         uint64 `json:"attendeeCount"`
	TotalAmountPaid       string `json:"totalAmountPaid"`
	TokenType             string `json:"tokenType"`
	PurchaseTime          int64  `json:"purchaseTime"`
	Used                  bool   `json:"used"`
	Valid                 bool   `json:"valid"`
	ValidationReason      string `json:"validationReason"`
	EventStatusAtPurchase string `json:"eventStatusAtPurchase"`
	CurrentEventStatus    string `json:"currentEventStatus"`
	Purchaser             string `json:"purchaser"`
	Status                string `json:"status"`
	QRData                string `json:"qrData"`
}

// EventView is the client representation of an event.
type EventView struct {
	ID          uint64     `json:"id"`
	Organizer   string     `json:"organizer"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartDate   int64      `json:"startDate"`
	EndDate     int64      `json:"endDate"`
	MetadataURI string     `json:"metadataURI"`
	Active      bool       `json:"active"`
	TierCount   uint64     `json:"tierCount"`
	Status      string     `json:"status"`
	Tiers       []TierView `json:"tiers,omitempty"`
}

// TierView is the client representation of a ticket tier.
type TierView struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Price          string `json:"price"`
	PricePerPerson string `json:"pricePerPerson"`
	MaxSupply      uint64 `json:"maxSupply"`
	CurrentSupply  uint64 `json:"currentSupply"`
	TokenType      string `json:"tokenType"`
	Active         bool   `json:"active"`
	Available      uint64 `json:"available"`
}

// EventStatus classifies an event by its unix start and end times:
// upcoming before start, live from start to end inclusive, ended after.
func EventStatus(
	start int64,
	end int64,
	now time.Time,
) string {
	ts := now.Unix()

	switch {
	case ts < start:
		return StatusUpcoming
	case ts <= end:
		return StatusLive
	default:
		return StatusEnded
	}
}

// Project builds the ticket view from the three ledger records.
func Project(
	info ledger.TicketInfo,
	event ledger.Event,
	tier ledger.Tier,
	now time.Time,
) View {
	v := View{
		ID:                    info.ID,
		EventID:               info.EventID,
		EventTitle:            event.Title,
		EventLocation:         event.Location,
		EventStartDate:        event.StartDate,
		EventEndDate:          event.EndDate,
		TierName:              tier.Name,
		PricePerPerson:        FormatEther(tier.PricePerPerson),
		AttendeeCount:         info.AttendeeCount,
		TotalAmountPaid:       FormatEther(info.TotalAmountPaid),
		TokenType:             info.PaymentToken.String(),
		PurchaseTime:          info.PurchaseTimestamp,
		Used:                  info.Used,
		Valid:                 info.Valid,
		ValidationReason:      info.Reason,
		EventStatusAtPurchase: info.EventStatusAtPurchase.String(),
		CurrentEventStatus:    info.CurrentEventStatus.String(),
		Purchaser:             info.Purchaser.Hex(),
		Status:                EventStatus(event.StartDate, event.EndDate, now),
	}
	v.QRData = NewQRPayload(v).Encode()

	return v
}

// ProjectEvent builds the event view. Tiers are attached only when given.
func ProjectEvent(
	event ledger.Event,
	now time.Time,
	tiers ...ledger.Tier,
) EventView {
	v := EventView{
		ID:          event.ID,
		Organizer:   event.Organizer.Hex(),
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
		MetadataURI: event.MetadataURI,
		Active:      event.Active,
		TierCount:   event.TierCount,
		Status:      EventStatus(event.StartDate, event.EndDate, now),
	}

	for _, t := range tiers {
		v.Tiers = append(v.Tiers, ProjectTier(t))
	}

	return v
}

// ProjectTier builds the tier view.
func ProjectTier(
	tier ledger.Tier,
) TierView {
	price := FormatEther(tier.PricePerPerson)

	return TierView{
		ID:             tier.ID,
		Name:           tier.Name,
		Price:          price,
		PricePerPerson: price,
		MaxSupply:      tier.MaxSupply,
		CurrentSupply:  tier.CurrentSupply,
		TokenType:      tier.TokenType.String(),
		Active:         tier.Active,
		Available:      tier.Available(),
	}
}

// Verification is the result returned to door staff and organizers after
// scanning a ticket.
type Verification struct {
	TicketID              uint64 `json:"ticketId"`
	EventID               uint64 `json:"eventId"`
	EventTitle            string `json:"eventTitle"`
	EventLocation         string `json:"eventLocation"`
	EventStartDate        int64  `json:"eventStartDate"`
	EventEndDate          int64  `json:"eventEndDate"`
	TierName              string `json:"tierName"`
	AttendeeCount         uint64 `json:"attendeeCount"`
	TotalAmountPaid       string `json:"totalAmountPaid"`
	PricePerPerson        string `json:"pricePerPerson"`
	TokenType             string `json:"tokenType"`
	PurchaseTimestamp     int64  `json:"purchaseTimestamp"`
	Purchaser             string `json:"purchaser"`
	Used                  bool   `json:"used"`
	Valid                 bool   `json:"valid"`
	ValidationReason      string `json:"validationReason"`
	EventStatusAtPurchase string `json:"eventStatusAtPurchase"`
	CurrentEventStatus    string `json:"currentEventStatus"`
	QRData                string `json:"qrData,omitempty"`
	Timestamp             string `json:"timestamp"`
	StaffVerified         bool   `json:"staffVerified,omitempty"`
	BlockchainVerified    bool   `json:"blockchainVerified"`
}

// Verify builds a verification result from the ledger records.
func Verify(
	info ledger.TicketInfo,
	event ledger.Event,
	tier ledger.Tier,
	now time.Time,
) Verification {
	return Verification{
		TicketID:              info.ID,
		EventID:               info.EventID,
		EventTitle:            event.Title,
		EventLocation:         event.Location,
		EventStartDate:        event.StartDate,
		EventEndDate:          event.EndDate,
		TierName:              tier.Name,
		AttendeeCount:         info.AttendeeCount,
		TotalAmountPaid:       FormatEther(info.TotalAmountPaid),
		PricePerPerson:        FormatEther(tier.PricePerPerson),
		TokenType:             info.PaymentToken.String(),
		PurchaseTimestamp:     info.PurchaseTimestamp,
		Purchaser:             info.Purchaser.Hex(),
		Used:                  info.Used,
		Valid:                 info.Valid,
		ValidationReason:      info.Reason,
		EventStatusAtPurchase: info.EventStatusAtPurchase.String(),
		CurrentEventStatus:    info.CurrentEventStatus.String(),
		Timestamp:             now.UTC().Format(time.RFC3339),
		BlockchainVerified:    true,
	}
}
