// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stablecoin - the USDC token held on the same ledger as the
// escrow so that a milestone and its funding commit together
package stablecoin

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/storage"
)

// token metadata
const (
	Name     = "USD Coin"
	Symbol   = "USDC"
	Decimals = 6
)

// allowance that is never consumed
const Unlimited = ^uint64(0)

var supplyKey = []byte("total")

// Info - token metadata and supply
type Info struct {
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Decimals    int             `json:"decimals"`
	TotalSupply uint64          `json:"totalSupply"`
	Minter      account.Address `json:"minter"`
}

// Allocation - initial balance for one account
type Allocation struct {
	Account account.Address
	Amount  uint64
}

// Token - balances, allowances and supply
type Token struct {
	log      *logger.L
	ledger   *ledger.Ledger
	minter   account.Address
	reserved account.Address
}

// New - the token with its minting account
//
// a zero minter disables Mint
func New(l *ledger.Ledger, minter account.Address) *Token {
	return &Token{
		log:    logger.New("stablecoin"),
		ledger: l,
		minter: minter,
	}
}

// Reserve - set the account whose balance only moves through
// TransferFrom and Transfer, Send, Mint and Genesis cannot credit it
//
// must be called before the token is used
func (t *Token) Reserve(a account.Address) {
	t.reserved = a
}

func (t *Token) isReserved(a account.Address) bool {
	return !t.reserved.IsZero() && t.reserved == a
}

// Info - metadata and current supply
func (t *Token) Info() Info {
	return Info{
		Name:        Name,
		Symbol:      Symbol,
		Decimals:    Decimals,
		TotalSupply: t.TotalSupply(),
		Minter:      t.minter,
	}
}

// TotalSupply - sum of all balances
func (t *Token) TotalSupply() uint64 {
	var n uint64
	_ = t.ledger.View(func(tx *ledger.Tx) error {
		n, _ = tx.GetN(storage.Pool.Supply, supplyKey)
		return nil
	})
	return n
}

// BalanceOf - balance of one account
func (t *Token) BalanceOf(a account.Address) uint64 {
	var n uint64
	_ = t.ledger.View(func(tx *ledger.Tx) error {
		n = balance(tx, a)
		return nil
	})
	return n
}

// Allowance - amount spender may still move from owner
func (t *Token) Allowance(owner account.Address, spender account.Address) uint64 {
	var n uint64
	_ = t.ledger.View(func(tx *ledger.Tx) error {
		n = allowance(tx, owner, spender)
		return nil
	})
	return n
}

// Approve - set the allowance of spender over owner's tokens
func (t *Token) Approve(owner account.Address, spender account.Address, amount uint64) error {
	if owner.IsZero() || spender.IsZero() {
		return fault.ZeroAddress
	}
	return t.ledger.Execute("approve", func(tx *ledger.Tx) error {
		tx.PutN(storage.Pool.Allowances, allowanceKey(owner, spender), amount)
		tx.Emit("Approval",
			ledger.Arg("owner", owner),
			ledger.Arg("spender", spender),
			ledger.Arg("value", amount),
		)
		return nil
	})
}

// Send - move tokens from sender to recipient
func (t *Token) Send(sender account.Address, recipient account.Address, amount uint64) error {
	if t.isReserved(recipient) {
		return fault.CustodyAccount
	}
	return t.ledger.Execute("transfer", func(tx *ledger.Tx) error {
		return t.Transfer(tx, sender, recipient, amount)
	})
}

// Mint - create new tokens, only for the minter
func (t *Token) Mint(caller account.Address, recipient account.Address, amount uint64) error {
	if t.minter.IsZero() || caller != t.minter {
		return fault.NotMinter
	}
	if t.isReserved(recipient) {
		return fault.CustodyAccount
	}
	err := t.ledger.Execute("mint", func(tx *ledger.Tx) error {
		return mint(tx, recipient, amount)
	})
	if nil == err {
		t.log.Infof("minted: %d to: %s", amount, recipient)
	}
	return err
}

// Genesis - initial allocation, skipped once any supply exists
func (t *Token) Genesis(allocations []Allocation) error {
	return t.ledger.Execute("genesis", func(tx *ledger.Tx) error {
		if tx.Has(storage.Pool.Supply, supplyKey) {
			t.log.Debugf("genesis: supply exists")
			return nil
		}
		tx.PutN(storage.Pool.Supply, supplyKey, 0)
		for _, a := range allocations {
			if t.isReserved(a.Account) {
				return fault.CustodyAccount
			}
			err := mint(tx, a.Account, a.Amount)
			if nil != err {
				return err
			}
			t.log.Infof("genesis: %d to: %s", a.Amount, a.Account)
		}
		return nil
	})
}

// TransferFrom - spender moves tokens from one account to another
//
// the allowance is checked before the balance
func (t *Token) TransferFrom(tx *ledger.Tx, spender account.Address, from account.Address, to account.Address, amount uint64) error {
	allowed := allowance(tx, from, spender)
	if allowed < amount {
		return fault.InsufficientAllowance
	}

	err := t.Transfer(tx, from, to, amount)
	if nil != err {
		return err
	}

	if Unlimited != allowed {
		tx.PutN(storage.Pool.Allowances, allowanceKey(from, spender), allowed-amount)
	}
	return nil
}

// Transfer - move tokens owned by from
func (t *Token) Transfer(tx *ledger.Tx, from account.Address, to account.Address, amount uint64) error {
	if from.IsZero() || to.IsZero() {
		return fault.ZeroAddress
	}

	fromBalance := balance(tx, from)
	if fromBalance < amount {
		return fault.InsufficientBalance
	}

	if from != to {
		toBalance := balance(tx, to)
		if toBalance+amount < toBalance {
			return fault.AmountOverflow
		}
		tx.PutN(storage.Pool.Balances, from.Bytes(), fromBalance-amount)
		tx.PutN(storage.Pool.Balances, to.Bytes(), toBalance+amount)
	}

	tx.Emit("Transfer",
		ledger.Arg("from", from),
		ledger.Arg("to", to),
		ledger.Arg("value", amount),
	)
	return nil
}

func mint(tx *ledger.Tx, recipient account.Address, amount uint64) error {
	if recipient.IsZero() {
		return fault.ZeroAddress
	}

	supply, _ := tx.GetN(storage.Pool.Supply, supplyKey)
	if supply+amount < supply {
		return fault.AmountOverflow
	}

	// a balance never exceeds the supply
	tx.PutN(storage.Pool.Supply, supplyKey, supply+amount)
	tx.PutN(storage.Pool.Balances, recipient.Bytes(), balance(tx, recipient)+amount)

	tx.Emit("Transfer",
		ledger.Arg("from", account.Zero),
		ledger.Arg("to", recipient),
		ledger.Arg("value", amount),
	)
	return nil
}

func balance(tx *ledger.Tx, a account.Address) uint64 {
	n, _ := tx.GetN(storage.Pool.Balances, a.Bytes())
	return n
}

func allowance(tx *ledger.Tx, owner account.Address, spender account.Address) uint64 {
	n, _ := tx.GetN(storage.Pool.Allowances, allowanceKey(owner, spender))
	return n
}

func allowanceKey(owner account.Address, spender account.Address) []byte {
	key := make([]byte, 0, 2*account.AddressLength)
	key = append(key, owner.Bytes()...)
	return append(key, spender.Bytes()...)
}
