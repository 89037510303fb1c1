// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package auth - signed credentials for state changing RPC calls
//
// the caller signs SHA3-256 of:
//   method name, 0x00, decimal unix timestamp, 0x00, JSON arguments
// where the JSON arguments are encoded with the "auth" field zeroed.
// The caller's account is derived from the public key.
package auth

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/fault"
)

// DefaultWindow - accepted clock difference between caller and node
const DefaultWindow = 5 * time.Minute

// Authorisation - credentials carried by an argument structure
//
// embed as:  auth.Authorisation `json:"auth"`
type Authorisation struct {
	PublicKey account.PublicKey `json:"publicKey"`
	Timestamp int64             `json:"timestamp"`
	Signature account.Signature `json:"signature"`
}

// Credentials - access to the embedded authorisation
func (a *Authorisation) Credentials() *Authorisation {
	return a
}

// Signed - an argument structure carrying an Authorisation
type Signed interface {
	Credentials() *Authorisation
}

// Digest - the message actually signed
func Digest(method string, arguments Signed) ([]byte, error) {
	a := arguments.Credentials()
	saved := *a
	*a = Authorisation{}
	payload, err := json.Marshal(arguments)
	*a = saved
	if nil != err {
		return nil, err
	}

	h := sha3.New256()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(saved.Timestamp, 10)))
	h.Write([]byte{0})
	h.Write(payload)
	return h.Sum(nil), nil
}

// Sign - fill in the credentials of arguments for a call to method
func Sign(privateKey *account.PrivateKey, method string, arguments Signed, now time.Time) error {
	a := arguments.Credentials()
	a.PublicKey = privateKey.PublicKey()
	a.Timestamp = now.Unix()
	a.Signature = nil

	digest, err := Digest(method, arguments)
	if nil != err {
		return err
	}
	a.Signature = privateKey.Sign(digest)
	return nil
}

// Verifier - checks credentials and remembers accepted signatures
type Verifier struct {
	window time.Duration
	seen   *cache.Cache
	now    func() time.Time
}

// NewVerifier - accept timestamps within window of the local clock
//
// signatures are remembered for twice the window so any replay
// inside the acceptance period is detected
func NewVerifier(window time.Duration) *Verifier {
	return &Verifier{
		window: window,
		seen:   cache.New(2*window, window),
		now:    time.Now,
	}
}

// Verify - check the credentials for method and return the caller
func (v *Verifier) Verify(method string, arguments Signed) (account.Address, error) {
	a := arguments.Credentials()

	caller, err := a.PublicKey.Address()
	if nil != err {
		return account.Zero, err
	}

	when := time.Unix(a.Timestamp, 0)
	now := v.now()
	if when.Before(now.Add(-v.window)) || when.After(now.Add(v.window)) {
		return account.Zero, fault.InvalidTimestamp
	}

	digest, err := Digest(method, arguments)
	if nil != err {
		return account.Zero, err
	}
	if err := a.PublicKey.CheckSignature(digest, a.Signature); nil != err {
		return account.Zero, err
	}

	if err := v.seen.Add(a.Signature.String(), caller, cache.DefaultExpiration); nil != err {
		return account.Zero, fault.ReplayedRequest
	}

	return caller, nil
}
