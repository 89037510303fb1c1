// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/freelanced/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "log"), "relative path")
	assert.Equal(t, "/var/log", util.EnsureAbsolute("/data", "/var/log/"), "absolute path")
	assert.Equal(t, "/data/db", util.EnsureAbsolute("/data", "./x/../db"), "cleaned path")
}

func TestEnsureDirectory(t *testing.T) {
	dir, err := ioutil.TempDir("", "paths")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	nested := filepath.Join(dir, "a", "b")
	assert.False(t, util.EnsureFileExists(nested), "exists before create")
	assert.Nil(t, util.EnsureDirectory(nested), "create")
	assert.True(t, util.EnsureFileExists(nested), "missing after create")
	assert.Nil(t, util.EnsureDirectory(nested), "create again")
}
