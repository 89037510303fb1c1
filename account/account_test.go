// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/fault"
)

var testSeed = []byte{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
	0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
	0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20,
}

func TestAddressText(t *testing.T) {
	key, err := account.PrivateKeyFromSeed(testSeed)
	assert.Nil(t, err, "key from seed")

	a := key.Address()
	s := a.String()
	assert.Equal(t, 42, len(s), "wrong text length")

	parsed, err := account.FromString(s)
	assert.Nil(t, err, "parse checksummed")
	assert.Equal(t, a, parsed, "checksummed round trip")

	parsed, err = account.FromString(strings.ToLower(s))
	assert.Nil(t, err, "parse lower case")
	assert.Equal(t, a, parsed, "lower case round trip")
}

func TestAddressBadChecksum(t *testing.T) {
	for _, s := range []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0x52908400098527886E0F7030069857D2E4169EE7",
	} {
		a, err := account.FromString(s)
		assert.Nil(t, err, "valid checksum rejected: %s", s)
		assert.Equal(t, s, a.String(), "checksum mismatch")
	}

	// every letter of this address has an upper case checksum
	_, err := account.FromString("0x52908400098527886E0F7030069857D2E4169EE7")
	assert.Nil(t, err, "all upper case is accepted")

	_, err = account.FromString("0x52908400098527886e0F7030069857D2E4169EE7")
	assert.Equal(t, fault.InvalidAddress, err, "bad checksum accepted")
}

func TestAddressInvalid(t *testing.T) {
	for _, s := range []string{"", "0x", "52908400098527886E0F7030069857D2E4169EE7", "0x1234", "0xZZ908400098527886E0F7030069857D2E4169EE7"} {
		_, err := account.FromString(s)
		assert.Equal(t, fault.InvalidAddress, err, "accepted: %q", s)
	}
}

func TestAddressJSON(t *testing.T) {
	key, _ := account.PrivateKeyFromSeed(testSeed)
	a := key.Address()

	buffer, err := json.Marshal(struct {
		Owner account.Address `json:"owner"`
	}{a})
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `{"owner":"`+a.String()+`"}`, string(buffer), "wrong JSON")

	var reply struct {
		Owner account.Address `json:"owner"`
	}
	err = json.Unmarshal(buffer, &reply)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, a, reply.Owner, "round trip")
}

func TestSignature(t *testing.T) {
	key, _ := account.PrivateKeyFromSeed(testSeed)
	message := []byte("register")
	signature := key.Sign(message)

	publicKey := key.PublicKey()
	assert.Nil(t, publicKey.CheckSignature(message, signature), "valid signature rejected")
	assert.Equal(t, fault.InvalidSignature, publicKey.CheckSignature([]byte("other"), signature), "wrong message accepted")

	a, err := publicKey.Address()
	assert.Nil(t, err, "address from public key")
	assert.Equal(t, key.Address(), a, "address mismatch")
}

func TestSeedRoundTrip(t *testing.T) {
	key, err := account.NewPrivateKey()
	assert.Nil(t, err, "new key")

	again, err := account.PrivateKeyFromSeed(key.Seed())
	assert.Nil(t, err, "key from seed")
	assert.Equal(t, key.Address(), again.Address(), "regenerated key differs")

	_, err = account.PrivateKeyFromHexSeed("abcd")
	assert.Equal(t, fault.NotPrivateKey, err, "short seed accepted")
}
