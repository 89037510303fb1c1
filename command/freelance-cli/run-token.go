// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/command/freelance-cli/rpccalls"
	"github.com/bitmark-inc/freelanced/rpc/token"
)

type balanceResult struct {
	Owner    account.Address `json:"owner"`
	Balance  uint64          `json:"balance"`
	Escrowed uint64          `json:"escrowed"`
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountOrDefault(c, m, c.String("owner"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	balance, err := client.Balance(owner)
	if nil != err {
		return err
	}
	escrowed, err := client.Escrowed(owner)
	if nil != err {
		return err
	}

	printJson(m.w, balanceResult{
		Owner:    owner,
		Balance:  balance.Balance,
		Escrowed: escrowed.Amount,
	})
	return nil
}

func runApprove(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	_, spender, err := checkRecipient(c.String("spender"), "spender", m.config)
	if nil != err {
		return err
	}
	amount := c.Uint64("amount")

	client, owner, err := connectSigned(c, m)
	if nil != err {
		return err
	}
	defer client.Close()

	allowance, err := client.Approve(spender, amount)
	if nil != err {
		return err
	}

	printJson(m.w, struct {
		Owner     account.Address `json:"owner"`
		Spender   account.Address `json:"spender"`
		Allowance uint64          `json:"allowance"`
	}{
		Owner:     owner,
		Spender:   spender,
		Allowance: allowance,
	})
	return nil
}

func runTransfer(c *cli.Context) error {
	return sendTokens(c, func(client *rpccalls.Client, to account.Address, amount uint64) (*token.BalanceReply, error) {
		return client.Transfer(to, amount)
	})
}

func runMint(c *cli.Context) error {
	return sendTokens(c, func(client *rpccalls.Client, to account.Address, amount uint64) (*token.BalanceReply, error) {
		return client.Mint(to, amount)
	})
}

type sendFunc func(*rpccalls.Client, account.Address, uint64) (*token.BalanceReply, error)

func sendTokens(c *cli.Context, send sendFunc) error {

	m := c.App.Metadata["config"].(*metadata)

	name, to, err := checkRecipient(c.String("receiver"), "receiver", m.config)
	if nil != err {
		return err
	}
	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "receiver: %s\n", name)
		fmt.Fprintf(m.e, "amount: %d\n", amount)
	}

	client, _, err := connectSigned(c, m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := send(client, to, amount)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runToken(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	info, err := client.TokenInfo()
	if nil != err {
		return err
	}

	printJson(m.w, info)
	return nil
}
