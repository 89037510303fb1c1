// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/messagebus"
	"github.com/bitmark-inc/freelanced/storage"
)

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "ledger-log")
	if nil != err {
		panic(err)
	}
	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(fmt.Sprintf("logger initialization failed: %s", err))
	}
	rc := m.Run()
	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

func setupStorage(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "ledger")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	database := filepath.Join(dir, "test")
	err = storage.Initialise(database, storage.ReadWrite)
	if nil != err {
		os.RemoveAll(dir)
		t.Fatalf("storage initialise error: %s", err)
	}
	return database, func() {
		storage.Finalise()
		os.RemoveAll(dir)
	}
}

func TestCommitWithEvents(t *testing.T) {
	_, teardown := setupStorage(t)
	defer teardown()

	bus := new(messagebus.BroadcastQueue)
	listener := bus.Chan(10)
	l := ledger.New(bus)

	err := l.Execute("test", func(tx *ledger.Tx) error {
		tx.Put(storage.Pool.TestData, []byte("k"), []byte("v"))
		tx.Emit("Stored", ledger.Arg("key", "k"), ledger.Arg("size", 1))
		return nil
	})
	assert.Nil(t, err, "execute")

	assert.Equal(t, []byte("v"), storage.Pool.TestData.Get([]byte("k")), "write not committed")

	m := <-listener
	assert.Equal(t, "Stored", m.Command, "wrong event name")
	assert.Equal(t, 2, len(m.Parameters), "wrong parameter count")

	var e ledger.Event
	err = json.Unmarshal(m.Parameters[1], &e)
	assert.Nil(t, err, "decode event")
	size, ok := e.Get("size")
	assert.True(t, ok, "missing argument")
	assert.Equal(t, "1", size, "wrong argument")

	events, err := l.Events(0, 10)
	assert.Nil(t, err, "events")
	assert.Equal(t, 1, len(events), "event not logged")
	assert.Equal(t, uint64(0), events[0].Sequence, "wrong sequence")
	assert.Equal(t, e, events[0], "logged event differs from published")
}

func TestFullListenerKeepsEvents(t *testing.T) {
	_, teardown := setupStorage(t)
	defer teardown()

	bus := new(messagebus.BroadcastQueue)
	listener := bus.Chan(1)
	l := ledger.New(bus)

	err := l.Execute("test", func(tx *ledger.Tx) error {
		tx.Emit("First")
		tx.Emit("Second")
		return nil
	})
	assert.Nil(t, err, "execute")
	assert.Equal(t, uint64(1), bus.Dropped(), "dropped count")

	m := <-listener
	assert.Equal(t, "First", m.Command, "wrong event kept")

	// a missed event is still in the log
	events, err := l.Events(0, 10)
	assert.Nil(t, err, "events")
	assert.Equal(t, 2, len(events), "events not logged")
}

func TestFailureLeavesNoTrace(t *testing.T) {
	_, teardown := setupStorage(t)
	defer teardown()

	bus := new(messagebus.BroadcastQueue)
	listener := bus.Chan(10)
	l := ledger.New(bus)

	err := l.Execute("failing", func(tx *ledger.Tx) error {
		n := tx.Next("job")
		assert.Equal(t, uint64(0), n, "first counter value")
		tx.Put(storage.Pool.TestData, []byte("k"), []byte("v"))
		tx.Emit("Stored")

		// own writes are visible before the failure
		assert.True(t, tx.Has(storage.Pool.TestData, []byte("k")), "own write not visible")
		return fault.ZeroAmount
	})
	assert.Equal(t, fault.ZeroAmount, err, "error not returned")

	assert.False(t, storage.Pool.TestData.Has([]byte("k")), "aborted write committed")
	assert.Equal(t, uint64(0), l.Counter("job"), "aborted counter advanced")

	events, err := l.Events(0, 10)
	assert.Nil(t, err, "events")
	assert.Equal(t, 0, len(events), "aborted event logged")

	select {
	case m := <-listener:
		t.Errorf("aborted event published: %q", m.Command)
	default:
	}

	// the batch was released
	err = l.Execute("after", func(tx *ledger.Tx) error {
		return nil
	})
	assert.Nil(t, err, "batch still in use")
}

func TestCounters(t *testing.T) {
	database, teardown := setupStorage(t)
	defer teardown()

	l := ledger.New(nil)
	for i := uint64(0); i < 3; i += 1 {
		err := l.Execute("count", func(tx *ledger.Tx) error {
			assert.Equal(t, i, tx.Next("job"), "job counter")
			return nil
		})
		assert.Nil(t, err, "execute")
	}
	err := l.Execute("count", func(tx *ledger.Tx) error {
		assert.Equal(t, uint64(0), tx.Next("milestone"), "counters are independent")
		return nil
	})
	assert.Nil(t, err, "execute")

	// counters survive a restart
	storage.Finalise()
	err = storage.Initialise(database, storage.ReadWrite)
	assert.Nil(t, err, "reopen")

	l = ledger.New(nil)
	assert.Equal(t, uint64(3), l.Counter("job"), "job counter after restart")
	assert.Equal(t, uint64(1), l.Counter("milestone"), "milestone counter after restart")
}

func TestEventsPaging(t *testing.T) {
	_, teardown := setupStorage(t)
	defer teardown()

	l := ledger.New(nil)
	err := l.Execute("many", func(tx *ledger.Tx) error {
		for i := 0; i < 5; i += 1 {
			tx.Emit("Tick", ledger.Arg("n", i))
		}
		return nil
	})
	assert.Nil(t, err, "execute")

	events, err := l.Events(3, 10)
	assert.Nil(t, err, "events")
	assert.Equal(t, 2, len(events), "wrong page size")
	assert.Equal(t, uint64(3), events[0].Sequence, "wrong start")

	_, err = l.Events(0, 0)
	assert.Equal(t, fault.InvalidCount, err, "zero count")
	_, err = l.Events(0, ledger.MaximumEventCount+1)
	assert.Equal(t, fault.InvalidCount, err, "excessive count")
}

func TestViewIsReadOnly(t *testing.T) {
	_, teardown := setupStorage(t)
	defer teardown()

	l := ledger.New(nil)
	err := l.View(func(tx *ledger.Tx) error {
		assert.False(t, tx.Writable(), "view is writable")
		assert.Panics(t, func() {
			tx.Put(storage.Pool.TestData, []byte("k"), []byte("v"))
		}, "write in view")
		return nil
	})
	assert.Nil(t, err, "view")
}

func TestCursorOnlyInView(t *testing.T) {
	_, teardown := setupStorage(t)
	defer teardown()

	l := ledger.New(nil)
	err := l.Execute("put", func(tx *ledger.Tx) error {
		assert.Panics(t, func() {
			tx.Cursor(storage.Pool.TestData)
		}, "cursor in execute")
		assert.Panics(t, func() {
			tx.PrefixCursor(storage.Pool.TestData, []byte("k"))
		}, "prefix cursor in execute")
		tx.Put(storage.Pool.TestData, []byte("k1"), []byte("v1"))
		tx.Put(storage.Pool.TestData, []byte("k2"), []byte("v2"))
		tx.Put(storage.Pool.TestData, []byte("x1"), []byte("v3"))
		return nil
	})
	assert.Nil(t, err, "execute")

	err = l.View(func(tx *ledger.Tx) error {
		elements, err := tx.Cursor(storage.Pool.TestData).Fetch(10)
		assert.Nil(t, err, "fetch")
		assert.Equal(t, 3, len(elements), "all records")

		keys := []string{}
		err = tx.PrefixCursor(storage.Pool.TestData, []byte("k")).Map(func(key []byte, value []byte) error {
			keys = append(keys, string(key))
			return nil
		})
		assert.Nil(t, err, "map")
		assert.Equal(t, []string{"k1", "k2"}, keys, "prefix records")
		return nil
	})
	assert.Nil(t, err, "view")
}

func TestEventCodec(t *testing.T) {
	e := ledger.Event{
		Sequence: 7,
		Name:     "JobCreated",
		Arguments: []ledger.Argument{
			ledger.Arg("jobId", 0),
			ledger.Arg("title", "Build a website"),
		},
	}
	decoded, err := ledger.UnpackEvent(7, e.Pack())
	assert.Nil(t, err, "unpack")
	assert.Equal(t, e, decoded, "event changed")

	_, err = ledger.UnpackEvent(7, e.Pack()[:4])
	assert.Equal(t, fault.NotTransactionPack, err, "truncated record accepted")
}
