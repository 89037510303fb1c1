// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ledger account addresses and the ed25519 keys
// that control them
//
// An address is the last 20 bytes of the Keccak-256 digest of an
// ed25519 public key.  Text form is "0x" followed by 40 hex digits
// with the mixed case checksum used by Ethereum wallets.
package account
