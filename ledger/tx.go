// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/storage"
)

// Tx - access to pools during Execute or View
//
// reads see the writes already made by the same Execute
type Tx struct {
	trx    storage.Transaction // nil for View
	events []Event
}

// Writable - true inside Execute
func (tx *Tx) Writable() bool {
	return nil != tx.trx
}

func (tx *Tx) mustWrite(op string) {
	if nil == tx.trx {
		logger.Panicf("ledger: %s in read only view", op)
	}
}

func (tx *Tx) mustRead(op string) {
	if nil != tx.trx {
		logger.Panicf("ledger: %s inside Execute", op)
	}
}

// Cursor - iterate the committed records of a pool
//
// cursors do not see the pending writes of Execute, so only View has them
func (tx *Tx) Cursor(pool *storage.PoolHandle) *storage.FetchCursor {
	tx.mustRead("Cursor")
	return pool.NewFetchCursor()
}

// PrefixCursor - iterate the committed records of a pool that start with prefix
func (tx *Tx) PrefixCursor(pool *storage.PoolHandle, prefix []byte) *storage.FetchCursor {
	tx.mustRead("PrefixCursor")
	return pool.NewPrefixCursor(prefix)
}

// Get - read a record, nil if absent
func (tx *Tx) Get(pool *storage.PoolHandle, key []byte) []byte {
	if nil == tx.trx {
		return pool.Get(key)
	}
	return tx.trx.Get(pool, key)
}

// GetN - read a uint64 record, zero and false if absent
func (tx *Tx) GetN(pool *storage.PoolHandle, key []byte) (uint64, bool) {
	if nil == tx.trx {
		return pool.GetN(key)
	}
	return tx.trx.GetN(pool, key)
}

// Has - check if a key exists
func (tx *Tx) Has(pool *storage.PoolHandle, key []byte) bool {
	if nil == tx.trx {
		return pool.Has(key)
	}
	return tx.trx.Has(pool, key)
}

// Put - write a record
func (tx *Tx) Put(pool *storage.PoolHandle, key []byte, value []byte) {
	tx.mustWrite("Put")
	tx.trx.Put(pool, key, value)
}

// PutN - write a uint64 record
func (tx *Tx) PutN(pool *storage.PoolHandle, key []byte, value uint64) {
	tx.mustWrite("PutN")
	tx.trx.PutN(pool, key, value)
}

// Delete - remove a record
func (tx *Tx) Delete(pool *storage.PoolHandle, key []byte) {
	tx.mustWrite("Delete")
	tx.trx.Delete(pool, key)
}

// Counter - current value of a named counter
func (tx *Tx) Counter(name string) uint64 {
	n, _ := tx.GetN(storage.Pool.Counters, []byte(name))
	return n
}

// Next - allocate the next value of a named counter, starting at zero
func (tx *Tx) Next(name string) uint64 {
	tx.mustWrite("Next")
	n := tx.Counter(name)
	tx.trx.PutN(storage.Pool.Counters, []byte(name), n+1)
	return n
}

// Emit - record an event in the same batch as the state change
func (tx *Tx) Emit(name string, arguments ...Argument) {
	tx.mustWrite("Emit")
	e := Event{
		Sequence:  tx.Next(EventCounter),
		Name:      name,
		Arguments: arguments,
	}
	tx.trx.Put(storage.Pool.Events, SequenceKey(e.Sequence), e.Pack())
	tx.events = append(tx.events, e)
}

// Emitted - events emitted so far by this transaction
func (tx *Tx) Emitted() []Event {
	return tx.events
}

func bigEndian(key []byte) uint64 {
	if len(key) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(key[:8])
}

// ID - 8 byte big endian key for a record id
func ID(n uint64) []byte {
	return SequenceKey(n)
}

// FromID - decode an 8 byte big endian key
func FromID(key []byte) uint64 {
	return bigEndian(key)
}
