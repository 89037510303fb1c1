// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/command/freelance-cli/configuration"
	"github.com/bitmark-inc/freelanced/fault"
)

// identity name, blank means the default identity
func checkName(name string) (string, error) {
	if "" == name {
		return "", fmt.Errorf("identity name is required")
	}
	return name, nil
}

// name to use when the global flag is blank
func identityName(name string, config *configuration.Configuration) string {
	if "" == name {
		return config.DefaultIdentity
	}
	return name
}

// HOST:PORT
func checkConnect(connect string) (string, error) {
	connect = strings.TrimSpace(connect)
	if "" == connect {
		return "", fmt.Errorf("connect is required")
	}

	_, port, err := net.SplitHostPort(connect)
	if nil != err {
		return "", fault.InvalidIpAddress
	}
	if n, err := strconv.Atoi(port); nil != err || n < 1 || n > 65535 {
		return "", fmt.Errorf("invalid port: %q", port)
	}
	return connect, nil
}

func checkDescription(description string) (string, error) {
	if "" == description {
		return "", fmt.Errorf("description is required")
	}
	return description, nil
}

// hex seed, or a new one when blank and allowed
func checkSeed(seed string, generate bool) (string, error) {
	if "" == seed {
		if !generate {
			return "", fmt.Errorf("seed is required")
		}
		privateKey, err := account.NewPrivateKey()
		if nil != err {
			return "", err
		}
		return hex.EncodeToString(privateKey.Seed()), nil
	}

	_, err := account.PrivateKeyFromHexSeed(seed)
	if nil != err {
		return "", err
	}
	return seed, nil
}

// a configured identity name or an account address
func checkRecipient(name string, title string, config *configuration.Configuration) (string, account.Address, error) {
	if "" == name {
		return "", account.Zero, fmt.Errorf("%s is required", title)
	}

	if a, err := config.Account(name); nil == err {
		return name, a, nil
	}

	a, err := account.FromString(name)
	if nil != err {
		return "", account.Zero, fmt.Errorf("%s: %q is not an identity or account", title, name)
	}
	return name, a, nil
}

// decimal job or milestone id
func checkID(s string, title string) (uint64, error) {
	if "" == s {
		return 0, fmt.Errorf("%s id is required", title)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return 0, fmt.Errorf("invalid %s id: %q", title, s)
	}
	return n, nil
}

func checkAmount(amount uint64) (uint64, error) {
	if 0 == amount {
		return 0, fault.ZeroAmount
	}
	return amount, nil
}

// returns true if the path is a directory
func checkFileExists(name string) (bool, error) {
	info, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return info.IsDir(), nil
}
