// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/storage/mocks"
)

const defaultKey = "key"

var defaultValue = []byte{'a'}

func openTestDB(t *testing.T) (*leveldb.DB, func()) {
	dir, err := ioutil.TempDir("", "data-access")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	db, err := leveldb.OpenFile(dir, nil)
	if nil != err {
		os.RemoveAll(dir)
		t.Fatalf("open database error: %s", err)
	}
	return db, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}

func newMockCache(t *testing.T) (*mocks.MockCache, *gomock.Controller) {
	ctl := gomock.NewController(t)
	return mocks.NewMockCache(ctl), ctl
}

func TestBeginShouldErrorWhenAlreadyInTransaction(t *testing.T) {
	db, done := openTestDB(t)
	defer done()

	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	da := newDA(db, new(leveldb.Batch), mc)

	err := da.Begin()
	assert.Nil(t, err, "first time Begin should not error")

	err = da.Begin()
	assert.Equal(t, fault.TransactionInUse, err, "second time Begin should return error")
}

func TestCommitReleasesBatch(t *testing.T) {
	db, done := openTestDB(t)
	defer done()

	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Set(dbPut, defaultKey, defaultValue).Times(1)
	mc.EXPECT().Clear().Times(1)
	da := newDA(db, new(leveldb.Batch), mc)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	err := da.Commit()
	assert.Nil(t, err, "commit")

	assert.False(t, da.InUse(), "still in use after commit")
	assert.Equal(t, 0, len(da.DumpTx()), "commit did not reset batch")

	actual, err := db.Get([]byte(defaultKey), nil)
	assert.Nil(t, err, "read back")
	assert.Equal(t, defaultValue, actual, "commit did not write to db")
}

func TestCommitWithoutBegin(t *testing.T) {
	db, done := openTestDB(t)
	defer done()

	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	da := newDA(db, new(leveldb.Batch), mc)
	assert.Equal(t, fault.NotInitialised, da.Commit(), "commit without begin")
}

func TestDeleteActionCached(t *testing.T) {
	db, done := openTestDB(t)
	defer done()

	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	gomock.InOrder(
		mc.EXPECT().Set(dbPut, "a", []byte{'b'}).Times(1),
		mc.EXPECT().Set(dbDelete, "a", nil).Times(1),
	)
	da := newDA(db, new(leveldb.Batch), mc)

	_ = da.Begin()
	da.Put([]byte{'a'}, []byte{'b'})
	da.Delete([]byte{'a'})
}

func TestGetPrefersCache(t *testing.T) {
	db, done := openTestDB(t)
	defer done()

	_ = db.Put([]byte(defaultKey), []byte("committed"), nil)

	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Get(defaultKey).Return(defaultValue, true).Times(1)
	da := newDA(db, new(leveldb.Batch), mc)

	actual, err := da.Get([]byte(defaultKey))
	assert.Nil(t, err, "get")
	assert.Equal(t, defaultValue, actual, "cache not used")
}

func TestGetDeletedInCache(t *testing.T) {
	db, done := openTestDB(t)
	defer done()

	_ = db.Put([]byte(defaultKey), []byte("committed"), nil)

	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	mc.EXPECT().Get(defaultKey).Return(nil, true).Times(2)
	da := newDA(db, new(leveldb.Batch), mc)

	_, err := da.Get([]byte(defaultKey))
	assert.Equal(t, leveldb.ErrNotFound, err, "pending delete still visible")

	found, err := da.Has([]byte(defaultKey))
	assert.Nil(t, err, "has")
	assert.False(t, found, "pending delete still visible")
}

func TestAbortDropsWrites(t *testing.T) {
	db, done := openTestDB(t)
	defer done()

	da := newDA(db, new(leveldb.Batch), newCache())

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)

	actual, err := da.Get([]byte(defaultKey))
	assert.Nil(t, err, "read own write")
	assert.Equal(t, defaultValue, actual, "pending write not visible")

	da.Abort()

	_, err = da.Get([]byte(defaultKey))
	assert.Equal(t, leveldb.ErrNotFound, err, "aborted write still visible")
	assert.False(t, da.InUse(), "still in use after abort")
}
