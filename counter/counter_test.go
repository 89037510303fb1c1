// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/freelanced/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter

	assert.True(t, c.IsZero(), "counter is not zero at start")

	for i := 0; i < 5; i += 1 {
		c.Increment()
	}
	assert.Equal(t, uint64(5), c.Uint64(), "after incrementing")

	assert.Equal(t, uint64(4), c.Decrement(), "after decrementing")

	for i := 0; i < 4; i += 1 {
		c.Decrement()
	}
	assert.True(t, c.IsZero(), "did not return to zero")

	// twos complement -1
	c.Decrement()
	assert.Equal(t, ^uint64(0), c.Uint64(), "did not underflow")
}

func TestAcquire(t *testing.T) {
	var c counter.Counter
	const limit = 10

	var wg sync.WaitGroup
	var mutex sync.Mutex
	granted := 0
	for i := 0; i < 50; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Acquire(limit) {
				mutex.Lock()
				granted += 1
				mutex.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, granted, "wrong number granted")
	assert.Equal(t, uint64(limit), c.Uint64(), "counter exceeded limit")

	c.Decrement()
	assert.True(t, c.Acquire(limit), "slot not released")
}
