// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/rpc/auth"
	"github.com/bitmark-inc/freelanced/rpc/ratelimit"
	"github.com/bitmark-inc/freelanced/stablecoin"
)

const (
	rateLimitToken = 200
	rateBurstToken = 100
)

// Token - type for the RPC
type Token struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Verifier *auth.Verifier
	Coin     *stablecoin.Token
}

// New - create the token service
func New(log *logger.L, verifier *auth.Verifier, coin *stablecoin.Token) *Token {
	return &Token{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitToken, rateBurstToken),
		Verifier: verifier,
		Coin:     coin,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// Info - token metadata and supply
func (token *Token) Info(_ *InfoArguments, reply *stablecoin.Info) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	*reply = token.Coin.Info()
	return nil
}

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Owner account.Address `json:"owner"`
}

// BalanceReply - result from RPC
type BalanceReply struct {
	Owner   account.Address `json:"owner"`
	Balance uint64          `json:"balance"`
}

// Balance - token balance of an account
func (token *Token) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	reply.Owner = arguments.Owner
	reply.Balance = token.Coin.BalanceOf(arguments.Owner)
	return nil
}

// AllowanceArguments - arguments for RPC
type AllowanceArguments struct {
	Owner   account.Address `json:"owner"`
	Spender account.Address `json:"spender"`
}

// AllowanceReply - result from RPC
type AllowanceReply struct {
	Allowance uint64 `json:"allowance"`
}

// Allowance - amount spender may move from owner
func (token *Token) Allowance(arguments *AllowanceArguments, reply *AllowanceReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	reply.Allowance = token.Coin.Allowance(arguments.Owner, arguments.Spender)
	return nil
}

// ApproveArguments - arguments for RPC
type ApproveArguments struct {
	auth.Authorisation `json:"auth"`
	Spender            account.Address `json:"spender"`
	Amount             uint64          `json:"amount"`
}

// Approve - set the caller's allowance for spender
func (token *Token) Approve(arguments *ApproveArguments, reply *AllowanceReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	caller, err := token.Verifier.Verify("Token.Approve", arguments)
	if nil != err {
		return err
	}

	token.Log.Infof("Token.Approve: owner: %s  spender: %s  amount: %d", caller, arguments.Spender, arguments.Amount)

	if err := token.Coin.Approve(caller, arguments.Spender, arguments.Amount); nil != err {
		return err
	}

	reply.Allowance = arguments.Amount
	return nil
}

// TransferArguments - arguments for RPC, used by Transfer and Mint
type TransferArguments struct {
	auth.Authorisation `json:"auth"`
	To                 account.Address `json:"to"`
	Amount             uint64          `json:"amount"`
}

// Transfer - move tokens from the caller
func (token *Token) Transfer(arguments *TransferArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	caller, err := token.Verifier.Verify("Token.Transfer", arguments)
	if nil != err {
		return err
	}

	token.Log.Infof("Token.Transfer: from: %s  to: %s  amount: %d", caller, arguments.To, arguments.Amount)

	if err := token.Coin.Send(caller, arguments.To, arguments.Amount); nil != err {
		return err
	}

	reply.Owner = caller
	reply.Balance = token.Coin.BalanceOf(caller)
	return nil
}

// Mint - create new tokens, minter only
func (token *Token) Mint(arguments *TransferArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	caller, err := token.Verifier.Verify("Token.Mint", arguments)
	if nil != err {
		return err
	}

	token.Log.Infof("Token.Mint: to: %s  amount: %d", arguments.To, arguments.Amount)

	if err := token.Coin.Mint(caller, arguments.To, arguments.Amount); nil != err {
		return err
	}

	reply.Owner = arguments.To
	reply.Balance = token.Coin.BalanceOf(arguments.To)
	return nil
}
