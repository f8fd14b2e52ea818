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
	ticketview "github.com/crossfi-tickets/ticketgate/internal/ticket"
)

// AccessResponse is the ticket returned to its verified owner.
type AccessResponse struct {
	ticketview.View
	BlockchainVerified bool `json:"blockchainVerified"`
	PurchaserVerified  bool `json:"purchaserVerified"`
	SignatureValid     bool `json:"signatureValid"`
}

// UserTicketsResponse lists the tickets of a wallet.
type UserTicketsResponse struct {
	Tickets            []ticketview.View `json:"tickets"`
	TotalTickets       int               `json:"totalTickets"`
	UserAddress        string            `json:"userAddress"`
	BlockchainVerified bool              `json:"blockchainVerified"`
}

// VerifyRequest is the organizer verification body.
type VerifyRequest struct {
	QRData           string `json:"qrData"`
	OrganizerAddress string `json:"organizerAddress"`
}

// StaffVerifyRequest is the door staff verification body.
type StaffVerifyRequest struct {
	QRData    string              `json:"qrData"`
	StaffCode string              `json:"staffCode"`
	EventID   ticketview.FlexUint `json:"eventId"`
}

// DeniedResponse is returned when an access check fails.
type DeniedResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Reason string `json:"reason"`
}

// NotFoundResponse is returned when a scanned ticket does not exist.
type NotFoundResponse struct {
	Error  string `json:"error"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}
