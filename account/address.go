// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/freelanced/fault"
)

// AddressLength - number of bytes in an address
const AddressLength = 20

// Address - an opaque account identifier
type Address [AddressLength]byte

// Zero - the "none" address, never controlled by any key
var Zero Address

// FromPublicKey - derive the address controlled by a public key
func FromPublicKey(publicKey ed25519.PublicKey) Address {
	h := sha3.NewLegacyKeccak256()
	h.Write(publicKey)
	digest := h.Sum(nil)

	var a Address
	copy(a[:], digest[len(digest)-AddressLength:])
	return a
}

// FromBytes - convert exactly 20 bytes to an address
func FromBytes(buffer []byte) (Address, error) {
	var a Address
	if AddressLength != len(buffer) {
		return a, fault.InvalidAddress
	}
	copy(a[:], buffer)
	return a, nil
}

// FromString - parse "0x" + 40 hex digits
//
// all lower or all upper case is accepted as is, mixed case must
// carry a valid checksum
func FromString(s string) (Address, error) {
	var a Address
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return a, fault.InvalidAddress
	}
	digits := s[2:]
	if 2*AddressLength != len(digits) {
		return a, fault.InvalidAddress
	}
	if _, err := hex.Decode(a[:], []byte(digits)); nil != err {
		return a, fault.InvalidAddress
	}
	if digits != strings.ToLower(digits) && digits != strings.ToUpper(digits) && a.String() != "0x"+digits {
		return Zero, fault.InvalidAddress
	}
	return a, nil
}

// IsZero - true for the "none" address
func (a Address) IsZero() bool {
	return Zero == a
}

// Bytes - the raw address bytes
func (a Address) Bytes() []byte {
	return a[:]
}

// String - checksummed hex for use by the fmt package (for %s)
func (a Address) String() string {
	digits := []byte(hex.EncodeToString(a[:]))

	h := sha3.NewLegacyKeccak256()
	h.Write(digits)
	checksum := h.Sum(nil)

	for i, c := range digits {
		if c < 'a' {
			continue
		}
		nibble := checksum[i/2]
		if 0 == i%2 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			digits[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(digits)
}

// GoString - for the fmt package (for %#v)
func (a Address) GoString() string {
	return "<address:" + a.String() + ">"
}

// MarshalText - convert an address to its text form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert text form to an address
func (a *Address) UnmarshalText(s []byte) error {
	parsed, err := FromString(string(s))
	if nil != err {
		return err
	}
	*a = parsed
	return nil
}
