// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/rpc/token"
	"github.com/bitmark-inc/freelanced/stablecoin"
)

// TokenInfo - name, symbol, decimals and supply
func (c *Client) TokenInfo() (*stablecoin.Info, error) {
	var reply stablecoin.Info
	err := c.call("Token.Info", &token.InfoArguments{}, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// Balance - tokens held by an account
func (c *Client) Balance(owner account.Address) (*token.BalanceReply, error) {
	var reply token.BalanceReply
	err := c.call("Token.Balance", &token.BalanceArguments{Owner: owner}, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// Allowance - remaining amount spender may move for owner
func (c *Client) Allowance(owner account.Address, spender account.Address) (uint64, error) {
	var reply token.AllowanceReply
	err := c.call("Token.Allowance", &token.AllowanceArguments{Owner: owner, Spender: spender}, &reply)
	return reply.Allowance, err
}

// Approve - set the signer's allowance for spender
func (c *Client) Approve(spender account.Address, amount uint64) (uint64, error) {
	var reply token.AllowanceReply
	err := c.signedCall("Token.Approve", &token.ApproveArguments{Spender: spender, Amount: amount}, &reply)
	return reply.Allowance, err
}

// Transfer - move tokens from the signer
func (c *Client) Transfer(to account.Address, amount uint64) (*token.BalanceReply, error) {
	var reply token.BalanceReply
	err := c.signedCall("Token.Transfer", &token.TransferArguments{To: to, Amount: amount}, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// Mint - create tokens, the signer must be the minter
func (c *Client) Mint(to account.Address, amount uint64) (*token.BalanceReply, error) {
	var reply token.BalanceReply
	err := c.signedCall("Token.Mint", &token.TransferArguments{To: to, Amount: amount}, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}
