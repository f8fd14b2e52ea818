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

package ticket

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// QR payload constants.
const (
	QRPlatform = "CrossFi-Tickets"
	QRVersion  = "2.0"
)

// ErrInvalidQR is returned when QR data carries no ticket id.
var ErrInvalidQR = errors.New("invalid QR code format")

var legacyQRPattern = regexp.MustCompile(`(?i)ticketId[:\s]*(\d+)`)

// QRPayload is the JSON document encoded in a ticket QR code.
type QRPayload struct {
	TicketID          FlexUint `json:"ticketId"`
	EventID           FlexUint `json:"eventId,omitempty"`
	AttendeeCount     FlexUint `json:"attendeeCount,omitempty"`
	Purchaser         string   `json:"purchaser,omitempty"`
	TotalAmountPaid   string   `json:"totalAmountPaid,omitempty"`
	TokenType         string   `json:"tokenType,omitempty"`
	PurchaseTimestamp FlexUint `json:"purchaseTimestamp,omitempty"`
	EventStatus       string   `json:"eventStatus,omitempty"`
	Platform          string   `json:"platform,omitempty"`
	Version           string   `json:"version,omitempty"`
}

// NewQRPayload builds the QR document for a ticket view.
func NewQRPayload(
	v View,
) QRPayload {
	return QRPayload{
		TicketID:          FlexUint(v.ID),
		EventID:           FlexUint(v.EventID),
		AttendeeCount:     FlexUint(v.AttendeeCount),
		Purchaser:         v.Purchaser,
		TotalAmountPaid:   v.TotalAmountPaid,
		TokenType:         v.TokenType,
		PurchaseTimestamp: FlexUint(v.PurchaseTime),
		EventStatus:       v.CurrentEventStatus,
		Platform:          QRPlatform,
		Version:           QRVersion,
	}
}

// Encode returns the JSON string placed in the QR code.
func (p QRPayload) Encode() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(p)

	return strings.TrimRight(buf.String(), "\n")
}

// ParseQR reads QR data in the JSON form or the legacy "ticketId: 12" text
// form. The legacy form only carries the ticket id.
func ParseQR(
	data string,
) (QRPayload, error) {
	var p QRPayload
	if err := json.Unmarshal([]byte(data), &p); err == nil {
		if p.TicketID == 0 {
			return QRPayload{}, fmt.Errorf("%w: missing ticketId", ErrInvalidQR)
		}
		return p, nil
	}

	m := legacyQRPattern.FindStringSubmatch(data)
	if m == nil {
		return QRPayload{}, ErrInvalidQR
	}

	id, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil || id == 0 {
		return QRPayload{}, fmt.Errorf("%w: ticket id %q", ErrInvalidQR, m[1])
	}

	return QRPayload{TicketID: FlexUint(id)}, nil
}

// FlexUint decodes a non-negative integer written either as a JSON number or
// as a quoted decimal string. It encodes as a number.
type FlexUint uint64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexUint) UnmarshalJSON(
	b []byte,
) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*f = 0
		return nil
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid unsigned integer %q: %w", s, err)
	}
	*f = FlexUint(n)

	return nil
}
