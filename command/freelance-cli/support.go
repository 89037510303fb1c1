// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/command/freelance-cli/configuration"
	"github.com/bitmark-inc/freelanced/command/freelance-cli/rpccalls"
)

// connection for read only calls
func connect(m *metadata) (*rpccalls.Client, error) {
	if "" == m.config.Connect {
		return nil, fmt.Errorf("no connection configured")
	}
	return rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
}

// unlock the selected identity
func unlock(c *cli.Context, m *metadata) (*configuration.Private, error) {
	name := identityName(c.GlobalString("identity"), m.config)

	password := c.GlobalString("password")
	if "" == password {
		var err error
		password, err = promptPassword()
		if nil != err {
			return nil, err
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", name)
	}
	return m.config.Private(password, name)
}

// connection for state changing calls signed by the selected identity
func connectSigned(c *cli.Context, m *metadata) (*rpccalls.Client, account.Address, error) {
	private, err := unlock(c, m)
	if nil != err {
		return nil, account.Zero, err
	}

	client, err := connect(m)
	if nil != err {
		return nil, account.Zero, err
	}
	client.SetSigner(private.PrivateKey)
	return client, private.Account, nil
}

// the selected identity or an explicit name/account
func accountOrDefault(c *cli.Context, m *metadata, name string) (account.Address, error) {
	if "" == name {
		name = identityName(c.GlobalString("identity"), m.config)
	}
	_, a, err := checkRecipient(name, "account", m.config)
	return a, err
}
