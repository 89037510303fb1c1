// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/escrow"
	"github.com/bitmark-inc/freelanced/rpc/milestones"
)

// FundData - a milestone to escrow
type FundData struct {
	JobID       uint64
	Amount      uint64
	Description string
}

// Fund - escrow a milestone payment
//
// the signer must first approve the custody account for the amount
func (c *Client) Fund(data *FundData) (*milestones.CreateReply, error) {
	arguments := &milestones.CreateArguments{
		JobID:       data.JobID,
		Amount:      data.Amount,
		Description: data.Description,
	}
	var reply milestones.CreateReply
	err := c.signedCall("Milestones.Create", arguments, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// Release - pay a milestone to the selected freelancer
func (c *Client) Release(milestoneID uint64) (*escrow.Milestone, error) {
	var reply milestones.ReleaseReply
	err := c.signedCall("Milestones.Release", &milestones.ReleaseArguments{MilestoneID: milestoneID}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Milestone, nil
}

// Milestones - all milestones of a job
func (c *Client) Milestones(jobID uint64) ([]*escrow.Milestone, error) {
	var reply milestones.ListReply
	err := c.call("Milestones.List", &milestones.ListArguments{JobID: jobID}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Milestones, nil
}

// Escrowed - amount a client has held in custody
func (c *Client) Escrowed(client account.Address) (*milestones.EscrowedReply, error) {
	var reply milestones.EscrowedReply
	err := c.call("Milestones.Escrowed", &milestones.EscrowedArguments{Client: client}, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}
