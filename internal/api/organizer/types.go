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

package organizer

import (
	"github.com/crossfi-tickets/ticketgate/internal/listing"
	"github.com/crossfi-tickets/ticketgate/internal/ticket"
)

// PreparedEventData is the prepared event with its tiers.
type PreparedEventData struct {
	listing.PreparedEvent
	Tiers []listing.PreparedTier `json:"tiers"`
}

// ContractInfo tells the client how to submit the create transaction.
type ContractInfo struct {
	ContractAddress string `json:"contractAddress"`
	ListingFee      string `json:"listingFee"`
	GasLimit        string `json:"gasLimit"`
}

// PrepareResponse is the prepared event.
type PrepareResponse struct {
	Success      bool              `json:"success"`
	EventData    PreparedEventData `json:"eventData"`
	ContractInfo ContractInfo      `json:"contractInfo"`
	Message      string            `json:"message"`
}

// CreatedRequest reports a mined create transaction.
type CreatedRequest struct {
	EventID          ticket.FlexUint `json:"eventId"`
	TransactionHash  string          `json:"transactionHash"`
	OrganizerAddress string          `json:"organizerAddress"`
}

// CreatedResponse acknowledges a reported event.
type CreatedResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	EventID     uint64 `json:"eventId"`
	ExplorerURL string `json:"explorerUrl"`
}

// Pagination describes the single page returned to organizers.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalEvents int  `json:"totalEvents"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// EventsResponse lists an organizer's active events.
type EventsResponse struct {
	Events     []ticket.EventView `json:"events"`
	Pagination Pagination         `json:"pagination"`
}
