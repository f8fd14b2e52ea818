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

package access

import "net/http"

// Reason is the stable machine-readable outcome of an access decision.
type Reason string

const (
	// ReasonAllowed grants access.
	ReasonAllowed Reason = "allowed"
	// ReasonMissingCredentials means a required request field was empty.
	ReasonMissingCredentials Reason = "missing_credentials"
	// ReasonMalformedMessage means the message is not a challenge.
	ReasonMalformedMessage Reason = "malformed_message"
	// ReasonTicketIDMismatch means the message names a different ticket.
	ReasonTicketIDMismatch Reason = "ticket_id_mismatch"
	// ReasonExpiredChallenge means the challenge timestamp is outside the window.
	ReasonExpiredChallenge Reason = "expired_challenge"
	// ReasonSignatureInvalid means no signer could be recovered.
	ReasonSignatureInvalid Reason = "signature_invalid"
	// ReasonSignerMismatch means the signer is not the claimed address.
	ReasonSignerMismatch Reason = "signer_mismatch"
	// ReasonTicketNotFound means the ledger has no such ticket.
	ReasonTicketNotFound Reason = "ticket_not_found"
	// ReasonNotOwner means the claimed address did not purchase the ticket.
	ReasonNotOwner Reason = "not_owner"
	// ReasonServiceUnavailable means the ledger could not be read in time.
	ReasonServiceUnavailable Reason = "service_unavailable"
)

// Reasons lists every reason in check order, followed by allowed.
var Reasons = []Reason{
	ReasonMissingCredentials,
	ReasonMalformedMessage,
	ReasonTicketIDMismatch,
	ReasonExpiredChallenge,
	ReasonSignatureInvalid,
	ReasonSignerMismatch,
	ReasonTicketNotFound,
	ReasonNotOwner,
	ReasonServiceUnavailable,
	ReasonAllowed,
}

type reasonInfo struct {
	message string
	status  int
}

var reasonTable = map[Reason]reasonInfo{
	ReasonAllowed: {
		message: "Access granted",
		status:  http.StatusOK,
	},
	ReasonMissingCredentials: {
		message: `Please connect your wallet and access this ticket through "My Tickets"`,
		status:  http.StatusUnauthorized,
	},
	ReasonMalformedMessage: {
		message: "Invalid message format",
		status:  http.StatusBadRequest,
	},
	ReasonTicketIDMismatch: {
		message: "Ticket ID mismatch",
		status:  http.StatusForbidden,
	},
	ReasonExpiredChallenge: {
		message: "Expired signature",
		status:  http.StatusUnauthorized,
	},
	ReasonSignatureInvalid: {
		message: "Invalid signature",
		status:  http.StatusUnauthorized,
	},
	ReasonSignerMismatch: {
		message: "Signature verification failed",
		status:  http.StatusForbidden,
	},
	ReasonTicketNotFound: {
		message: "Ticket not found",
		status:  http.StatusNotFound,
	},
	ReasonNotOwner: {
		message: "Access denied",
		status:  http.StatusForbidden,
	},
	ReasonServiceUnavailable: {
		message: "Ticket ledger is temporarily unavailable",
		status:  http.StatusServiceUnavailable,
	},
}

// String returns the machine-readable reason.
func (r Reason) String() string {
	return string(r)
}

// Message returns a human-readable description suitable for API clients.
func (r Reason) Message() string {
	if info, ok := reasonTable[r]; ok {
		return info.message
	}

	return "Access denied"
}

// HTTPStatus returns the status code an HTTP handler responds with.
func (r Reason) HTTPStatus() int {
	if info, ok := reasonTable[r]; ok {
		return info.status
	}

	return http.StatusForbidden
}
