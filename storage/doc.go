// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger state
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. id           = big endian uint64 (8 bytes), counters start at 0
// 4. address      = 20 byte account address
// 5. amount       = big endian uint64 (8 bytes) in token base units
// 6. *packed*     = util.Packed record, see the owning package for fields
//
// Users:
//
//   U ++ address               - registered user
//                                data: packed(name, contact, role)
//
// Jobs:
//
//   J ++ job id                - job record
//                                data: packed(client, title, description, payment, experience,
//                                      open, selected, [applicants])
//   O ++ job id                - index of open jobs
//                                data: empty
//
// Milestones:
//
//   M ++ milestone id          - milestone record
//                                data: packed(job id, description, amount, released)
//   K ++ job id ++ milestone id - milestones belonging to a job
//                                data: empty
//   E ++ address               - total amount held in escrow for a client
//                                data: amount
//
// Token:
//
//   B ++ address               - token balance
//                                data: amount
//   W ++ owner ++ spender      - spending allowance
//                                data: amount
//   S ++ "total"               - total supply
//                                data: amount
//
// Events:
//
//   L ++ sequence              - event log in commit order
//                                data: packed(name, [arguments])
//   N ++ name                  - next value of a named counter
//                                data: count
//
// Testing:
//   Z ++ key                   - testing data
package storage
