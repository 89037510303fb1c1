// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
	"sync/atomic"
)

// default listener channel size
const defaultQueueSize = 1000

// Message - a command with its binary parameters
type Message struct {
	Command    string   // event name
	Parameters [][]byte // encoded arguments
}

// BroadcastQueue - fan out each message to every listener
type BroadcastQueue struct {
	dropped uint64 // first for 64 bit alignment of atomic access
	sync.RWMutex
	listeners []chan Message
}

// BusType - the set of queues
type BusType struct {
	Events *BroadcastQueue // committed ledger events
}

// Bus - all available queues
var Bus = BusType{
	Events: new(BroadcastQueue),
}

// Send - queue a message for all current listeners
//
// a full listener misses the message, returns the number of listeners
// that missed it
func (queue *BroadcastQueue) Send(command string, parameters ...[]byte) int {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	queue.RLock()
	defer queue.RUnlock()

	missed := 0
	for _, c := range queue.listeners {
		select {
		case c <- m:
		default:
			missed += 1
		}
	}
	if missed > 0 {
		atomic.AddUint64(&queue.dropped, uint64(missed))
	}
	return missed
}

// Dropped - total messages missed by full listeners
func (queue *BroadcastQueue) Dropped() uint64 {
	return atomic.LoadUint64(&queue.dropped)
}

// Chan - register a new listener
//
// size <= 0 selects the default size
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultQueueSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners = append(queue.listeners, c)
	queue.Unlock()

	return c
}

// Release - remove a listener and close its channel
func (queue *BroadcastQueue) Release(listener <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	for i, c := range queue.listeners {
		if (<-chan Message)(c) == listener {
			queue.listeners = append(queue.listeners[:i], queue.listeners[i+1:]...)
			close(c)
			return
		}
	}
}

// Listeners - number of registered listeners
func (queue *BroadcastQueue) Listeners() int {
	queue.RLock()
	defer queue.RUnlock()
	return len(queue.listeners)
}
