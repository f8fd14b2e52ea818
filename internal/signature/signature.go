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

// Package signature recovers wallet addresses from personal-message
// (EIP-191) signatures.
package signature

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Length is the size of an r || s || v signature in bytes.
const Length = crypto.SignatureLength

// recoveryOffset is added to v by wallets following the legacy convention.
const recoveryOffset = 27

// ErrVerificationFailure is returned when a signature cannot be decoded or
// no public key can be recovered from it.
var ErrVerificationFailure = errors.New("signature verification failed")

// Decode parses a hex signature with or without the 0x prefix and normalises
// v to the 0/1 recovery id expected by secp256k1 recovery.
func Decode(
	sig string,
) ([]byte, error) {
	sig = strings.TrimSpace(sig)
	if !strings.HasPrefix(sig, "0x") && !strings.HasPrefix(sig, "0X") {
		sig = "0x" + sig
	}

	raw, err := hexutil.Decode(strings.Replace(sig, "0X", "0x", 1))
	if err != nil {
		return nil, fmt.Errorf("%w: decode hex: %w", ErrVerificationFailure, err)
	}

	if len(raw) != Length {
		return nil, fmt.Errorf(
			"%w: invalid length %d, want %d",
			ErrVerificationFailure,
			len(raw),
			Length,
		)
	}

	v := raw[crypto.RecoveryIDOffset]
	if v >= recoveryOffset {
		v -= recoveryOffset
	}
	if v != 0 && v != 1 {
		return nil, fmt.Errorf("%w: invalid recovery id %d", ErrVerificationFailure, raw[64])
	}
	raw[crypto.RecoveryIDOffset] = v

	return raw, nil
}

// RecoverSigner returns the address that produced sig over message using the
// "\x19Ethereum Signed Message:\n" + len(message) preamble.
func RecoverSigner(
	message string,
	sig string,
) (common.Address, error) {
	raw, err := Decode(sig)
	if err != nil {
		return common.Address{}, err
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: recover public key: %w", ErrVerificationFailure, err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// AddressesEqual compares two hex addresses case-insensitively.
func AddressesEqual(
	a string,
	b string,
) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SignMessage produces a wallet-compatible personal-message signature
// (v = 27/28) encoded as 0x-prefixed hex.
func SignMessage(
	message string,
	key *ecdsa.PrivateKey,
) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += recoveryOffset

	return hexutil.Encode(sig), nil
}

// ParsePrivateKey decodes a hex secp256k1 private key with or without 0x.
func ParsePrivateKey(
	hexKey string,
) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")

	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return key, nil
}

// IsAddress reports whether s is a 20-byte hex address.
func IsAddress(
	s string,
) bool {
	return common.IsHexAddress(strings.TrimSpace(s))
}
