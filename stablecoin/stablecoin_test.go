// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stablecoin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/ledger/ledgertest"
	"github.com/bitmark-inc/freelanced/stablecoin"
)

func TestMain(m *testing.M) {
	ledgertest.Main(m)
}

var (
	minter  = account.Address{0x99}
	holder  = account.Address{0x01}
	spender = account.Address{0x02}
	payee   = account.Address{0x03}
)

func TestMintAndSend(t *testing.T) {
	l, teardown := ledgertest.Setup(t, nil)
	defer teardown()

	token := stablecoin.New(l, minter)

	err := token.Mint(holder, holder, 100)
	assert.Equal(t, fault.NotMinter, err, "non minter")

	assert.Nil(t, token.Mint(minter, holder, 1000), "mint")
	assert.Equal(t, uint64(1000), token.TotalSupply(), "supply")

	assert.Nil(t, token.Send(holder, payee, 400), "send")
	assert.Equal(t, uint64(600), token.BalanceOf(holder), "sender balance")
	assert.Equal(t, uint64(400), token.BalanceOf(payee), "recipient balance")

	err = token.Send(holder, payee, 601)
	assert.Equal(t, fault.InsufficientBalance, err, "overdraw")
	assert.Equal(t, "ERC20: transfer amount exceeds balance", err.Error(), "reason string")

	assert.Equal(t, fault.ZeroAddress, token.Send(holder, account.Zero, 1), "burn by send")

	info := token.Info()
	assert.Equal(t, "USDC", info.Symbol, "symbol")
	assert.Equal(t, 6, info.Decimals, "decimals")
	assert.Equal(t, uint64(1000), info.TotalSupply, "supply unchanged by transfers")
}

func TestMintDisabled(t *testing.T) {
	l, teardown := ledgertest.Setup(t, nil)
	defer teardown()

	token := stablecoin.New(l, account.Zero)
	assert.Equal(t, fault.NotMinter, token.Mint(account.Zero, holder, 1), "zero minter")
}

func TestMintOverflow(t *testing.T) {
	l, teardown := ledgertest.Setup(t, nil)
	defer teardown()

	token := stablecoin.New(l, minter)
	assert.Nil(t, token.Mint(minter, holder, ^uint64(0)-1), "mint")
	assert.Equal(t, fault.AmountOverflow, token.Mint(minter, payee, 2), "supply overflow")
	assert.Equal(t, uint64(0), token.BalanceOf(payee), "failed mint credited")
}

func TestTransferFrom(t *testing.T) {
	l, teardown := ledgertest.Setup(t, nil)
	defer teardown()

	token := stablecoin.New(l, minter)
	assert.Nil(t, token.Mint(minter, holder, 100), "mint")
	assert.Nil(t, token.Approve(holder, spender, 500), "approve")
	assert.Equal(t, uint64(500), token.Allowance(holder, spender), "allowance")

	// allowance covers it but the balance does not
	err := l.Execute("pull", func(tx *ledger.Tx) error {
		return token.TransferFrom(tx, spender, holder, payee, 500)
	})
	assert.Equal(t, fault.InsufficientBalance, err, "balance check")
	assert.Equal(t, uint64(500), token.Allowance(holder, spender), "allowance consumed by failure")

	err = l.Execute("pull", func(tx *ledger.Tx) error {
		return token.TransferFrom(tx, payee, holder, payee, 1)
	})
	assert.Equal(t, fault.InsufficientAllowance, err, "no allowance")
	assert.Equal(t, "ERC20: insufficient allowance", err.Error(), "reason string")

	err = l.Execute("pull", func(tx *ledger.Tx) error {
		return token.TransferFrom(tx, spender, holder, payee, 60)
	})
	assert.Nil(t, err, "pull")
	assert.Equal(t, uint64(440), token.Allowance(holder, spender), "allowance not consumed")
	assert.Equal(t, uint64(40), token.BalanceOf(holder), "holder balance")
	assert.Equal(t, uint64(60), token.BalanceOf(payee), "payee balance")
}

func TestUnlimitedAllowance(t *testing.T) {
	l, teardown := ledgertest.Setup(t, nil)
	defer teardown()

	token := stablecoin.New(l, minter)
	assert.Nil(t, token.Mint(minter, holder, 100), "mint")
	assert.Nil(t, token.Approve(holder, spender, stablecoin.Unlimited), "approve")

	err := l.Execute("pull", func(tx *ledger.Tx) error {
		return token.TransferFrom(tx, spender, holder, payee, 100)
	})
	assert.Nil(t, err, "pull")
	assert.Equal(t, stablecoin.Unlimited, token.Allowance(holder, spender), "unlimited allowance consumed")
}

func TestApproveZero(t *testing.T) {
	l, teardown := ledgertest.Setup(t, nil)
	defer teardown()

	token := stablecoin.New(l, minter)
	assert.Equal(t, fault.ZeroAddress, token.Approve(holder, account.Zero, 1), "zero spender")
}

func TestGenesisOnce(t *testing.T) {
	l, teardown := ledgertest.Setup(t, nil)
	defer teardown()

	token := stablecoin.New(l, minter)
	allocations := []stablecoin.Allocation{
		{Account: holder, Amount: 1000},
		{Account: payee, Amount: 500},
	}
	assert.Nil(t, token.Genesis(allocations), "genesis")
	assert.Nil(t, token.Genesis(allocations), "second genesis")

	assert.Equal(t, uint64(1500), token.TotalSupply(), "supply")
	assert.Equal(t, uint64(1000), token.BalanceOf(holder), "holder")

	events, err := l.Events(0, 10)
	assert.Nil(t, err, "events")
	assert.Equal(t, 2, len(events), "second genesis emitted")
	from, _ := events[0].Get("from")
	assert.Equal(t, account.Zero.String(), from, "mint source")
}

func TestReservedAccount(t *testing.T) {
	l, teardown := ledgertest.Setup(t, nil)
	defer teardown()

	custody := account.Address{0xcc}

	token := stablecoin.New(l, minter)
	token.Reserve(custody)

	err := token.Genesis([]stablecoin.Allocation{
		{Account: holder, Amount: 1000},
		{Account: custody, Amount: 500},
	})
	assert.Equal(t, fault.CustodyAccount, err, "genesis to custody")
	assert.Equal(t, uint64(0), token.TotalSupply(), "partial genesis")

	assert.Nil(t, token.Mint(minter, holder, 1000), "mint")
	assert.Equal(t, fault.CustodyAccount, token.Mint(minter, custody, 1), "mint to custody")

	err = token.Send(holder, custody, 1)
	assert.Equal(t, fault.CustodyAccount, err, "send to custody")
	assert.Equal(t, "Only milestones can move tokens into custody.", err.Error(), "reason string")
	assert.Equal(t, uint64(0), token.BalanceOf(custody), "custody credited")
	assert.Equal(t, uint64(1000), token.BalanceOf(holder), "holder debited")

	// the escrow path still deposits and withdraws
	assert.Nil(t, token.Approve(holder, custody, 300), "approve custody")
	err = l.Execute("deposit", func(tx *ledger.Tx) error {
		return token.TransferFrom(tx, custody, holder, custody, 300)
	})
	assert.Nil(t, err, "deposit")
	err = l.Execute("withdraw", func(tx *ledger.Tx) error {
		return token.Transfer(tx, custody, payee, 100)
	})
	assert.Nil(t, err, "withdraw")
	assert.Equal(t, uint64(200), token.BalanceOf(custody), "custody balance")
	assert.Equal(t, uint64(100), token.BalanceOf(payee), "payee balance")
}
