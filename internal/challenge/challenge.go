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

// Package challenge builds and parses the message a wallet signs to prove
// control of an address for a single ticket access.
package challenge

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// DefaultWindow is how far a challenge timestamp may drift from the
// evaluation time before it is considered expired.
const DefaultWindow = 300 * time.Second

// RequiredFormat is reported back to clients that send a malformed message.
const RequiredFormat = "Accessing ticket {id} at {timestamp}"

// ErrMalformedMessage is returned when a message does not match the challenge format.
var ErrMalformedMessage = errors.New("malformed challenge message")

var messagePattern = regexp.MustCompile(`^Accessing ticket (\d+) at (\d+)$`)

// Challenge holds the logical fields of a challenge message.
type Challenge struct {
	// TicketID is the ticket the signer wants to access.
	TicketID uint64
	// IssuedAt is the unix timestamp (seconds) the client stamped the message with.
	IssuedAt int64
}

// String renders the challenge in its wire format.
func (c Challenge) String() string {
	return Format(c.TicketID, c.IssuedAt)
}

// Format returns "Accessing ticket {ticketID} at {issuedAt}".
func Format(
	ticketID uint64,
	issuedAt int64,
) string {
	return "Accessing ticket " + strconv.FormatUint(ticketID, 10) +
		" at " + strconv.FormatInt(issuedAt, 10)
}

// Parse extracts the ticket id and timestamp from a challenge message. The
// whole message must match; trailing content is rejected.
func Parse(
	message string,
) (Challenge, error) {
	m := messagePattern.FindStringSubmatch(message)
	if m == nil {
		return Challenge{}, ErrMalformedMessage
	}

	ticketID, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Challenge{}, fmt.Errorf("%w: ticket id: %w", ErrMalformedMessage, err)
	}

	issuedAt, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Challenge{}, fmt.Errorf("%w: timestamp: %w", ErrMalformedMessage, err)
	}

	return Challenge{TicketID: ticketID, IssuedAt: issuedAt}, nil
}

// IsFresh reports whether issuedAt lies within window of now, in either
// direction. Future-dated challenges are accepted to tolerate clock skew.
func IsFresh(
	issuedAt int64,
	now time.Time,
	window time.Duration,
) bool {
	if window < 0 {
		return false
	}

	return distance(issuedAt, now.Unix()) <= uint64(window/time.Second)
}

// Age returns the absolute distance between issuedAt and now, saturating
// at the largest Duration.
func Age(
	issuedAt int64,
	now time.Time,
) time.Duration {
	d := distance(issuedAt, now.Unix())
	if d > uint64(math.MaxInt64/int64(time.Second)) {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(d) * time.Second
}

// distance is |a - b| in seconds, exact for any pair of int64 values.
func distance(
	a int64,
	b int64,
) uint64 {
	if a >= b {
		return uint64(a) - uint64(b)
	}

	return uint64(b) - uint64(a)
}

// Policy decides freshness for a challenge.
type Policy struct {
	// Window is the maximum accepted age. Zero means DefaultWindow.
	Window time.Duration
	// ForwardOnly rejects challenges stamped later than now.
	ForwardOnly bool
}

// Fresh applies the policy to issuedAt at time now.
func (p Policy) Fresh(
	issuedAt int64,
	now time.Time,
) bool {
	window := p.Window
	if window <= 0 {
		window = DefaultWindow
	}

	if p.ForwardOnly && issuedAt > now.Unix() {
		return false
	}

	return IsFresh(issuedAt, now, window)
}
