// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - serialised all-or-nothing execution over storage
//
// Every state change runs inside Execute which holds the single
// ledger lock for its whole duration.  Writes and events are collected
// in one storage batch; an error from the function discards the batch
// so a failed operation leaves no trace.  Events reach the message bus
// only after the batch is on disk.
package ledger
