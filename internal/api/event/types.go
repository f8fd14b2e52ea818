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

package event

import (
	"github.com/crossfi-tickets/ticketgate/internal/listing"
	"github.com/crossfi-tickets/ticketgate/internal/ticket"
)

// Pagination describes a page of results.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalEvents int  `json:"totalEvents"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// ListResponse is a page of active events.
type ListResponse struct {
	Events             []ticket.EventView `json:"events"`
	Pagination         Pagination         `json:"pagination"`
	BlockchainVerified bool               `json:"blockchainVerified"`
}

// CreateRequest is a signed event creation draft.
type CreateRequest struct {
	listing.Draft
	Signature string `json:"signature"`
	Message   string `json:"message"`
}

// TransactionInfo tells the client how to submit the create transaction.
type TransactionInfo struct {
	ContractAddress string `json:"contractAddress"`
	ListingFee      string `json:"listingFee"`
	FeeTokenType    string `json:"feeTokenType"`
	TempEventID     int64  `json:"tempEventId"`
	PublicURL       string `json:"publicURL"`
}

// CreateResponse is the prepared event.
type CreateResponse struct {
	Success         bool                   `json:"success"`
	EventData       listing.PreparedEvent  `json:"eventData"`
	Tiers           []listing.PreparedTier `json:"tiers"`
	TransactionInfo TransactionInfo        `json:"transactionInfo"`
	Message         string                 `json:"message"`
}

// PurchaseRequest is a signed purchase intent.
type PurchaseRequest struct {
	TierID        *ticket.FlexUint `json:"tierId"`
	BuyerAddress  string           `json:"buyerAddress"`
	Signature     string           `json:"signature"`
	Message       string           `json:"message"`
	AttendeeCount ticket.FlexUint  `json:"attendeeCount"`
}

// PurchaseDetails is the priced purchase.
type PurchaseDetails struct {
	listing.Quote
	Message string `json:"message"`
}

// PurchaseResponse wraps the priced purchase.
type PurchaseResponse struct {
	Success         bool            `json:"success"`
	PurchaseDetails PurchaseDetails `json:"purchaseDetails"`
}
