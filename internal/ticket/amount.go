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
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Decimals is the number of fractional digits of every ledger token.
const Decimals = 18

// ErrInvalidAmount is returned when a decimal amount cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

var weiPerUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// FormatEther renders a wei amount as a decimal string with trailing zeros
// removed but at least one fractional digit ("1.0", "0.15"). Nil is "0.0".
func FormatEther(
	wei *big.Int,
) string {
	if wei == nil {
		return "0.0"
	}

	neg := wei.Sign() < 0
	whole, frac := new(big.Int).QuoRem(new(big.Int).Abs(wei), weiPerUnit, new(big.Int))

	fraction := frac.String()
	fraction = strings.Repeat("0", Decimals-len(fraction)) + fraction
	fraction = strings.TrimRight(fraction, "0")
	if fraction == "" {
		fraction = "0"
	}

	out := whole.String() + "." + fraction
	if neg {
		out = "-" + out
	}

	return out
}

// ParseEther converts a non-negative decimal string with at most 18
// fractional digits into wei.
func ParseEther(
	s string,
) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	if len(frac) > Decimals {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, Decimals)
	}

	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	digits := whole + frac + strings.Repeat("0", Decimals-len(frac))
	wei, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return wei, nil
}

// MulCount multiplies a per-person price by an attendee count.
func MulCount(
	price *big.Int,
	count uint64,
) *big.Int {
	if price == nil {
		return new(big.Int)
	}

	return new(big.Int).Mul(price, new(big.Int).SetUint64(count))
}

func isDigits(
	s string,
) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
