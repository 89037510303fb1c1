// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledgertest - logger and storage fixtures for package tests
package ledgertest

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/messagebus"
	"github.com/bitmark-inc/freelanced/storage"
)

// Main - run the tests of a package with logging to a temporary directory
//
// use as: func TestMain(m *testing.M) { ledgertest.Main(m) }
func Main(m *testing.M) {
	dir, err := ioutil.TempDir("", "freelanced-log")
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

// Setup - fresh storage and a ledger publishing on bus
//
// bus may be nil; call the returned function to remove the database
func Setup(t *testing.T, bus *messagebus.BroadcastQueue) (*ledger.Ledger, func()) {
	dir, err := ioutil.TempDir("", "freelanced-db")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}

	err = storage.Initialise(filepath.Join(dir, "test"), storage.ReadWrite)
	if nil != err {
		os.RemoveAll(dir)
		t.Fatalf("storage initialise error: %s", err)
	}

	return ledger.New(bus), func() {
		storage.Finalise()
		os.RemoveAll(dir)
	}
}
