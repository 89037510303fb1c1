// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/freelanced/fault"
)

// PrivateKey - an ed25519 signing key
type PrivateKey struct {
	key ed25519.PrivateKey
}

// NewPrivateKey - generate a random key
func NewPrivateKey() (*PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromSeed - regenerate a key from its 32 byte seed
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.NotPrivateKey
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// PrivateKeyFromHexSeed - regenerate a key from a hex encoded seed
func PrivateKeyFromHexSeed(s string) (*PrivateKey, error) {
	seed, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.NotPrivateKey
	}
	return PrivateKeyFromSeed(seed)
}

// Seed - the 32 byte seed
func (privateKey *PrivateKey) Seed() []byte {
	return privateKey.key.Seed()
}

// PublicKey - the public half of the key
func (privateKey *PrivateKey) PublicKey() PublicKey {
	return PublicKey(privateKey.key.Public().(ed25519.PublicKey))
}

// Address - the account this key controls
func (privateKey *PrivateKey) Address() Address {
	return FromPublicKey(privateKey.key.Public().(ed25519.PublicKey))
}

// Sign - sign a message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(privateKey.key, message)
}
