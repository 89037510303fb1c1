// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/freelanced/util"
)

// Argument - one named event argument
type Argument struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Event - a committed ledger event
type Event struct {
	Sequence  uint64     `json:"sequence"`
	Name      string     `json:"name"`
	Arguments []Argument `json:"arguments"`
}

// Arg - build an argument using the fmt %v form of the value
func Arg(name string, value interface{}) Argument {
	return Argument{
		Name:  name,
		Value: fmt.Sprint(value),
	}
}

// Get - value of a named argument
func (e Event) Get(name string) (string, bool) {
	for _, a := range e.Arguments {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Pack - event record for the Events pool
func (e Event) Pack() util.Packed {
	p := util.Packed{}.AppendString(e.Name).AppendUint64(uint64(len(e.Arguments)))
	for _, a := range e.Arguments {
		p = p.AppendString(a.Name).AppendString(a.Value)
	}
	return p
}

// UnpackEvent - decode an Events pool record
func UnpackEvent(sequence uint64, record []byte) (Event, error) {
	u := util.NewUnpacker(record)
	e := Event{
		Sequence: sequence,
		Name:     u.String(),
	}
	n := u.Uint64()
	for i := uint64(0); i < n && nil == u.Error(); i += 1 {
		e.Arguments = append(e.Arguments, Argument{
			Name:  u.String(),
			Value: u.String(),
		})
	}
	if err := u.Error(); nil != err {
		return Event{}, err
	}
	return e, nil
}

// SequenceKey - big endian key so events sort in commit order
func SequenceKey(sequence uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, sequence)
	return key
}
