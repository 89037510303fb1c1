// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/freelanced/messagebus"
)

func TestBroadcast(t *testing.T) {
	queue := new(messagebus.BroadcastQueue)

	// nothing listening so nobody misses it
	assert.Equal(t, 0, queue.Send("ignored"), "missed without listeners")

	commands := []string{"c1", "c2", "c3"}

	const listeners = 5
	channels := make([]<-chan messagebus.Message, listeners)
	for i := range channels {
		channels[i] = queue.Chan(10)
	}
	assert.Equal(t, listeners, queue.Listeners(), "listener count")

	for _, c := range commands {
		queue.Send(c, []byte(c))
	}

	var wg sync.WaitGroup
	for i, ch := range channels {
		wg.Add(1)
		go func(n int, ch <-chan messagebus.Message) {
			defer wg.Done()
			for _, c := range commands {
				received := <-ch
				if received.Command != c {
					t.Errorf("listener[%d] actual: %q  expected: %q", n, received.Command, c)
				}
			}
		}(i, ch)
	}
	wg.Wait()
}

func TestFullListenerDoesNotBlock(t *testing.T) {
	queue := new(messagebus.BroadcastQueue)
	ch := queue.Chan(1)

	assert.Equal(t, 0, queue.Send("first"), "first message missed")
	assert.Equal(t, 1, queue.Send("second"), "full listener not reported")
	assert.Equal(t, uint64(1), queue.Dropped(), "dropped count")

	received := <-ch
	assert.Equal(t, "first", received.Command, "wrong message kept")

	select {
	case m := <-ch:
		t.Errorf("unexpected message: %q", m.Command)
	default:
	}
}

func TestRelease(t *testing.T) {
	queue := new(messagebus.BroadcastQueue)
	ch := queue.Chan(0)
	queue.Release(ch)

	assert.Equal(t, 0, queue.Listeners(), "listener not removed")

	_, ok := <-ch
	assert.False(t, ok, "channel not closed")
}
