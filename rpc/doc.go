// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC requests
// from clients requiring freelanced services
//
// standard golang RPC services can be used on the client side to
// access these services; state changing calls must be signed, see
// package auth
package rpc
