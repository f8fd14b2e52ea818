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

// Package listing validates organizer event drafts and prices ticket
// purchases before the client submits the contract transaction.
package listing

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crossfi-tickets/ticketgate/internal/ledger"
	"github.com/crossfi-tickets/ticketgate/internal/signature"
	"github.com/crossfi-tickets/ticketgate/internal/ticket"
)

// DefaultImage is placed in generated event metadata.
const DefaultImage = "https://images.pexels.com/photos/2747449/pexels-photo-2747449.jpeg"

var (
	// ErrInvalidDraft is wrapped by every draft validation failure.
	ErrInvalidDraft = errors.New("invalid event draft")
	// ErrInsufficientSupply is returned when a tier cannot seat the attendees.
	ErrInsufficientSupply = errors.New("not enough tickets available for this tier")
	// ErrTierInactive is returned when purchasing from a disabled tier.
	ErrTierInactive = errors.New("tier is not on sale")
)

// Amount is a decimal token amount written as a JSON string or number.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(
	b []byte,
) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = ""
		return nil
	}

	*a = Amount(strings.Trim(s, `"`))

	return nil
}

// TierDraft is a ticket tier proposed by an organizer.
type TierDraft struct {
	Name           string          `json:"name"`
	Price          Amount          `json:"price,omitempty"`
	PricePerPerson Amount          `json:"pricePerPerson,omitempty"`
	MaxSupply      ticket.FlexUint `json:"maxSupply"`
	TokenType      string          `json:"tokenType,omitempty"`
}

// EffectivePrice returns PricePerPerson, falling back to Price.
func (t TierDraft) EffectivePrice() string {
	if t.PricePerPerson != "" {
		return string(t.PricePerPerson)
	}

	return string(t.Price)
}

// Draft is an event proposed by an organizer.
type Draft struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Location     string      `json:"location"`
	StartDate    int64       `json:"startDate"`
	EndDate      int64       `json:"endDate"`
	MetadataURI  string      `json:"metadataURI,omitempty"`
	FeeTokenType string      `json:"feeTokenType,omitempty"`
	Organizer    string      `json:"organizerAddress"`
	Tiers        []TierDraft `json:"tiers"`
}

// PreparedTier is a tier ready for the create transaction. Prices are wei.
type PreparedTier struct {
	Name           string `json:"name"`
	Price          string `json:"price"`
	PricePerPerson string `json:"pricePerPerson"`
	MaxSupply      uint64 `json:"maxSupply"`
	TokenType      string `json:"tokenType"`
	TokenIndex     uint8  `json:"tokenIndex"`
}

// PreparedEvent is the event payload for the create transaction.
type PreparedEvent struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	StartDate    int64  `json:"startDate"`
	EndDate      int64  `json:"endDate"`
	MetadataURI  string `json:"metadataURI"`
	FeeTokenType string `json:"feeTokenType"`
	Organizer    string `json:"organizer"`
}

// Validate checks the draft against now. The organizer address is checked
// only when requireOrganizer is set.
func (d Draft) Validate(
	now time.Time,
	requireOrganizer bool,
) error {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Description) == "" ||
		strings.TrimSpace(d.Location) == "" || d.StartDate == 0 || d.EndDate == 0 {
		return invalid("Missing required fields: title, description, location, startDate, endDate")
	}

	if requireOrganizer && !signature.IsAddress(d.Organizer) {
		return invalid("Valid organizer address is required")
	}

	if d.StartDate <= now.Unix() {
		return invalid("Start date must be in the future")
	}

	if d.EndDate <= d.StartDate {
		return invalid("End date must be after start date")
	}

	if len(d.Tiers) == 0 {
		return invalid("At least one ticket tier is required")
	}

	for i, t := range d.Tiers {
		if strings.TrimSpace(t.Name) == "" {
			return invalid(fmt.Sprintf("Invalid tier %d: missing name", i+1))
		}

		wei, err := ticket.ParseEther(t.EffectivePrice())
		if err != nil || wei.Sign() <= 0 {
			return invalid(fmt.Sprintf("Invalid tier %d: price must be greater than 0", i+1))
		}

		if t.MaxSupply == 0 {
			return invalid(fmt.Sprintf("Invalid tier %d: maxSupply must be greater than 0", i+1))
		}

		if t.TokenType != "" {
			if _, ok := ledger.ParseTokenType(t.TokenType); !ok {
				return invalid(fmt.Sprintf("Invalid tier %d: unknown token %q", i+1, t.TokenType))
			}
		}
	}

	return nil
}

// Prepare validates the draft and converts it for the create transaction.
// A metadata data URI is generated when the draft has none.
func (d Draft) Prepare(
	now time.Time,
	requireOrganizer bool,
) (PreparedEvent, []PreparedTier, error) {
	if err := d.Validate(now, requireOrganizer); err != nil {
		return PreparedEvent{}, nil, err
	}

	tiers := make([]PreparedTier, 0, len(d.Tiers))
	for _, t := range d.Tiers {
		// validated above
		wei, _ := ticket.ParseEther(t.EffectivePrice())
		token, _ := ledger.ParseTokenType(t.TokenType)

		tiers = append(tiers, PreparedTier{
			Name:           strings.TrimSpace(t.Name),
			Price:          wei.String(),
			PricePerPerson: wei.String(),
			MaxSupply:      uint64(t.MaxSupply),
			TokenType:      token.String(),
			TokenIndex:     uint8(token),
		})
	}

	uri := d.MetadataURI
	if uri == "" {
		var err error
		uri, err = MetadataURI(eventMetadata{
			Title:       d.Title,
			Description: d.Description,
			Location:    d.Location,
			StartDate:   d.StartDate,
			EndDate:     d.EndDate,
			Organizer:   d.Organizer,
			Image:       DefaultImage,
			Tiers:       tiers,
		})
		if err != nil {
			return PreparedEvent{}, nil, err
		}
	}

	fee, _ := ledger.ParseTokenType(d.FeeTokenType)

	return PreparedEvent{
		Title:        d.Title,
		Description:  d.Description,
		Location:     d.Location,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		MetadataURI:  uri,
		FeeTokenType: fee.String(),
		Organizer:    d.Organizer,
	}, tiers, nil
}

type eventMetadata struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	StartDate   int64          `json:"startDate"`
	EndDate     int64          `json:"endDate"`
	Organizer   string         `json:"organizer,omitempty"`
	Image       string         `json:"image"`
	Tiers       []PreparedTier `json:"tiers"`
}

// MetadataURI encodes v as a base64 JSON data URI.
func MetadataURI(
	v any,
) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}

	return "data:application/json;base64," + base64.StdEncoding.EncodeToString(b), nil
}

// Quote is the priced purchase returned to a buyer.
type Quote struct {
	EventID        uint64 `json:"eventId"`
	TierID         uint64 `json:"tierId"`
	Price          string `json:"price"`
	TotalPrice     string `json:"totalPrice"`
	TotalPriceWei  string `json:"totalPriceWei"`
	AttendeeCount  uint64 `json:"attendeeCount"`
	TokenType      string `json:"tokenType"`
	MetadataURI    string `json:"metadataURI"`
	QRCode         string `json:"qrCode"`
	PurchaseTime   int64  `json:"purchaseTime"`
	BuyerAddress   string `json:"buyerAddress"`
	RemainingSeats uint64 `json:"remainingSeats"`
}

type ticketMetadata struct {
	EventID        uint64 `json:"eventId"`
	TierID         uint64 `json:"tierId"`
	Buyer          string `json:"buyer"`
	AttendeeCount  uint64 `json:"attendeeCount"`
	TotalPrice     string `json:"totalPrice"`
	PricePerPerson string `json:"pricePerPerson"`
	TokenType      string `json:"tokenType"`
	PurchaseTime   int64  `json:"purchaseTime"`
	QRData         string `json:"qrData"`
	Owner          string `json:"owner"`
}

// NewQuote prices attendees seats of tier for buyer.
func NewQuote(
	eventID uint64,
	tier ledger.Tier,
	buyer string,
	attendees uint64,
	now time.Time,
) (Quote, error) {
	if attendees == 0 {
		attendees = 1
	}

	if !tier.Active {
		return Quote{}, ErrTierInactive
	}

	if tier.Available() < attendees {
		return Quote{}, ErrInsufficientSupply
	}

	total := ticket.MulCount(tier.PricePerPerson, attendees)
	price := ticket.FormatEther(tier.PricePerPerson)
	qr := fmt.Sprintf("%d-%d-%s-%d", eventID, tier.ID, buyer, now.UnixMilli())

	uri, err := MetadataURI(ticketMetadata{
		EventID:        eventID,
		TierID:         tier.ID,
		Buyer:          buyer,
		AttendeeCount:  attendees,
		TotalPrice:     ticket.FormatEther(total),
		PricePerPerson: price,
		TokenType:      tier.TokenType.String(),
		PurchaseTime:   now.Unix(),
		QRData:         qr,
		Owner:          buyer,
	})
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		EventID:        eventID,
		TierID:         tier.ID,
		Price:          price,
		TotalPrice:     ticket.FormatEther(total),
		TotalPriceWei:  total.String(),
		AttendeeCount:  attendees,
		TokenType:      tier.TokenType.String(),
		MetadataURI:    uri,
		QRCode:         qr,
		PurchaseTime:   now.Unix(),
		BuyerAddress:   buyer,
		RemainingSeats: tier.Available() - attendees,
	}, nil
}

func invalid(
	msg string,
) error {
	return fmt.Errorf("%w: %s", ErrInvalidDraft, msg)
}

// Message returns the client-facing part of a draft validation error.
func Message(
	err error,
) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, ErrInvalidDraft.Error()+": "); ok {
		return rest
	}

	return msg
}
