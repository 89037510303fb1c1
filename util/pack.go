// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/bitmark-inc/freelanced/fault"
)

// MaximumFieldLength - longest byte string a packed field can hold
const MaximumFieldLength = 65535

// Packed - a record packed as a sequence of varint prefixed fields
type Packed []byte

// AppendUint64 - add a varint encoded number
func (p Packed) AppendUint64(value uint64) Packed {
	return append(p, ToVarint64(value)...)
}

// AppendBool - add a single byte flag
func (p Packed) AppendBool(flag bool) Packed {
	if flag {
		return append(p, 1)
	}
	return append(p, 0)
}

// AppendBytes - add a length prefixed byte string
//
// callers check lengths with CheckFieldLengths first, an oversize
// field here would make the record unreadable
func (p Packed) AppendBytes(data []byte) Packed {
	if len(data) > MaximumFieldLength {
		panic(fault.FieldTooLong)
	}
	p = append(p, ToVarint64(uint64(len(data)))...)
	return append(p, data...)
}

// AppendString - add a length prefixed string
func (p Packed) AppendString(s string) Packed {
	return p.AppendBytes([]byte(s))
}

// CheckFieldLengths - fault.FieldTooLong if any field cannot be packed
func CheckFieldLengths(fields ...string) error {
	for _, s := range fields {
		if len(s) > MaximumFieldLength {
			return fault.FieldTooLong
		}
	}
	return nil
}

// Unpacker - sequential reader for a Packed record
//
// the first failure is sticky, all subsequent reads return zero
// values and Error returns the failure
type Unpacker struct {
	buffer []byte
	offset int
	err    error
}

// NewUnpacker - start reading a packed record
func NewUnpacker(p Packed) *Unpacker {
	return &Unpacker{
		buffer: p,
	}
}

// Uint64 - read a varint encoded number
func (u *Unpacker) Uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, n := FromVarint64(u.buffer[u.offset:])
	if 0 == n {
		u.err = fault.NotTransactionPack
		return 0
	}
	u.offset += n
	return value
}

// Bool - read a single byte flag
func (u *Unpacker) Bool() bool {
	if nil != u.err {
		return false
	}
	if u.offset >= len(u.buffer) {
		u.err = fault.NotTransactionPack
		return false
	}
	b := u.buffer[u.offset]
	u.offset += 1
	switch b {
	case 0:
		return false
	case 1:
		return true
	default:
		u.err = fault.NotTransactionPack
		return false
	}
}

// Bytes - read a length prefixed byte string, the result is a copy
func (u *Unpacker) Bytes() []byte {
	length := u.Uint64()
	if nil != u.err {
		return nil
	}
	if length > MaximumFieldLength || u.offset+int(length) > len(u.buffer) {
		u.err = fault.NotTransactionPack
		return nil
	}
	data := make([]byte, length)
	copy(data, u.buffer[u.offset:])
	u.offset += int(length)
	return data
}

// String - read a length prefixed string
func (u *Unpacker) String() string {
	return string(u.Bytes())
}

// Error - the first failure, or nil if every field was read and no
// bytes remain
func (u *Unpacker) Error() error {
	if nil == u.err && u.offset != len(u.buffer) {
		return fault.NotTransactionPack
	}
	return u.err
}
