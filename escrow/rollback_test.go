// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package escrow_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/freelanced/escrow"
	"github.com/bitmark-inc/freelanced/escrow/mocks"
	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/ledger"
)

func TestReleaseRollsBackWhenPushFails(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	token := mocks.NewMockToken(ctl)
	f, teardown := setupWith(t, nil, func(*ledger.Ledger) escrow.Token { return token })
	defer teardown()

	jobID, _ := f.jobs.Create(client, "t", "d", 1000, "e")
	assert.Nil(t, f.jobs.Apply(freelancer, jobID), "apply")
	assert.Nil(t, f.jobs.Select(client, jobID, freelancer), "select")

	token.EXPECT().
		TransferFrom(gomock.Any(), escrow.Custody, client, escrow.Custody, uint64(250)).
		Return(nil).
		Times(1)
	token.EXPECT().
		Transfer(gomock.Any(), escrow.Custody, freelancer, uint64(250)).
		Return(fault.InsufficientBalance).
		Times(1)

	id, err := f.escrow.Create(client, jobID, 250, "x")
	assert.Nil(t, err, "create")

	err = f.escrow.Release(client, id)
	assert.Equal(t, fault.InsufficientBalance, err, "push failure not returned")

	m, err := f.escrow.Get(id)
	assert.Nil(t, err, "get")
	assert.False(t, m.Released, "marked released after failed push")
	assert.Equal(t, uint64(250), f.escrow.Escrowed(client), "escrowed changed")

	events, _ := f.ledger.Events(0, 100)
	for _, e := range events {
		assert.NotEqual(t, "MilestoneReleased", e.Name, "failed release emitted")
	}
}

func TestCreateMapsTokenFailures(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	token := mocks.NewMockToken(ctl)
	f, teardown := setupWith(t, nil, func(*ledger.Ledger) escrow.Token { return token })
	defer teardown()

	jobID, _ := f.jobs.Create(client, "t", "d", 1000, "e")

	gomock.InOrder(
		token.EXPECT().
			TransferFrom(gomock.Any(), escrow.Custody, client, escrow.Custody, uint64(1)).
			Return(fault.AmountOverflow),
		token.EXPECT().
			TransferFrom(gomock.Any(), escrow.Custody, client, escrow.Custody, uint64(2)).
			Return(fault.InsufficientAllowance),
	)

	_, err := f.escrow.Create(client, jobID, 1, "x")
	assert.Equal(t, fault.TransferFailed, err, "other token errors")
	assert.Equal(t, "Token transfer failed.", err.Error(), "reason string")

	_, err = f.escrow.Create(client, jobID, 2, "x")
	assert.Equal(t, fault.InsufficientAllowance, err, "resource errors pass through")

	assert.Equal(t, uint64(0), f.escrow.Count(), "milestone recorded")
}

func TestZeroAmountSkipsToken(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	token := mocks.NewMockToken(ctl)
	f, teardown := setupWith(t, nil, func(*ledger.Ledger) escrow.Token { return token })
	defer teardown()

	jobID, _ := f.jobs.Create(client, "t", "d", 1000, "e")

	token.EXPECT().TransferFrom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.escrow.Create(client, jobID, 0, "x")
	assert.Equal(t, fault.ZeroAmount, err, "zero amount")
}
