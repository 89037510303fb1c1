// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/messagebus"
	"github.com/bitmark-inc/freelanced/storage"
)

// EventCounter - counter name for the event log sequence
const EventCounter = "event"

// MaximumEventCount - maximum events returned by one Events call
const MaximumEventCount = 100

// Ledger - the single serialised executor
type Ledger struct {
	sync.Mutex
	log *logger.L
	bus *messagebus.BroadcastQueue
}

// New - create a ledger over the already initialised storage
func New(bus *messagebus.BroadcastQueue) *Ledger {
	return &Ledger{
		log: logger.New("ledger"),
		bus: bus,
	}
}

// Execute - run f as one atomic transaction
//
// any error returned by f discards every write and event made by f
func (l *Ledger) Execute(name string, f func(tx *Tx) error) error {
	l.Lock()
	defer l.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		l.log.Errorf("%s: begin error: %s", name, err)
		return err
	}

	tx := &Tx{
		trx: trx,
	}

	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	err = f(tx)
	if nil != err {
		l.log.Debugf("%s: rejected: %s", name, err)
		return err
	}

	err = trx.Commit()
	if nil != err {
		l.log.Criticalf("%s: commit error: %s", name, err)
		return err
	}
	committed = true

	l.log.Debugf("%s: committed with %d event(s)", name, len(tx.events))

	if nil != l.bus {
		for _, e := range tx.events {
			data, err := json.Marshal(e)
			logger.PanicIfError("ledger.Execute: marshal event", err)
			if missed := l.bus.Send(e.Name, SequenceKey(e.Sequence), data); missed > 0 {
				l.log.Warnf("%s: event: %d %s missed by %d listener(s)", name, e.Sequence, e.Name, missed)
			}
		}
	}
	return nil
}

// View - serialised read only access to committed state
func (l *Ledger) View(f func(tx *Tx) error) error {
	l.Lock()
	defer l.Unlock()

	return f(&Tx{})
}

// Events - committed events from sequence start onwards
func (l *Ledger) Events(start uint64, count int) ([]Event, error) {
	if count <= 0 || count > MaximumEventCount {
		return nil, fault.InvalidCount
	}

	var events []Event
	err := l.View(func(tx *Tx) error {
		elements, err := tx.Cursor(storage.Pool.Events).Seek(SequenceKey(start)).Fetch(count)
		if nil != err {
			return err
		}
		events = make([]Event, 0, len(elements))
		for _, element := range elements {
			e, err := UnpackEvent(bigEndian(element.Key), element.Value)
			if nil != err {
				return err
			}
			events = append(events, e)
		}
		return nil
	})
	return events, err
}

// Counter - the next value a named counter will hand out
func (l *Ledger) Counter(name string) uint64 {
	var n uint64
	_ = l.View(func(tx *Tx) error {
		n = tx.Counter(name)
		return nil
	})
	return n
}
