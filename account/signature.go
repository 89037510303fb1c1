// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/freelanced/fault"
)

// Signature - the type for a signature
type Signature []byte

// String - convert a binary signature to hex string for use by the fmt package (for %s)
func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

// GoString - convert a binary signature to hex string for use by the fmt package (for %#v)
func (signature Signature) GoString() string {
	return "<signature:" + hex.EncodeToString(signature) + ">"
}

// MarshalText - convert signature to hex text
func (signature Signature) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(signature))
	buffer := make([]byte, size)
	hex.Encode(buffer, signature)
	return buffer, nil
}

// UnmarshalText - convert hex text into a signature
func (signature *Signature) UnmarshalText(s []byte) error {
	sig := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(sig, s)
	if nil != err {
		return err
	}
	*signature = sig[:byteCount]
	return nil
}

// PublicKey - hex encoded ed25519 public key
type PublicKey []byte

// MarshalText - convert public key to hex text
func (publicKey PublicKey) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(publicKey)), nil
}

// UnmarshalText - convert hex text into a public key
func (publicKey *PublicKey) UnmarshalText(s []byte) error {
	key, err := hex.DecodeString(string(s))
	if nil != err || ed25519.PublicKeySize != len(key) {
		return fault.InvalidPublicKey
	}
	*publicKey = key
	return nil
}

// Address - the account controlled by this key
func (publicKey PublicKey) Address() (Address, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return Zero, fault.InvalidPublicKey
	}
	return FromPublicKey(ed25519.PublicKey(publicKey)), nil
}

// CheckSignature - verify a signature over a message
func (publicKey PublicKey) CheckSignature(message []byte, signature Signature) error {
	if ed25519.PublicKeySize != len(publicKey) {
		return fault.InvalidPublicKey
	}
	if !ed25519.Verify(ed25519.PublicKey(publicKey), message, signature) {
		return fault.InvalidSignature
	}
	return nil
}
