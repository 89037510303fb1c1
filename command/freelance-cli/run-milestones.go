// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/freelanced/command/freelance-cli/rpccalls"
)

// escrowing needs an allowance for the custody account so that is
// approved first unless the client has already done so
func runFund(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	jobID, err := checkID(c.String("job"), "job")
	if nil != err {
		return err
	}
	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}
	data := &rpccalls.FundData{
		JobID:       jobID,
		Amount:      amount,
		Description: c.String("description"),
	}

	client, _, err := connectSigned(c, m)
	if nil != err {
		return err
	}
	defer client.Close()

	if !c.Bool("no-approve") {
		info, err := client.NodeInfo()
		if nil != err {
			return err
		}
		if m.verbose {
			fmt.Fprintf(m.e, "approve custody: %s  amount: %d\n", info.Custody, amount)
		}
		_, err = client.Approve(info.Custody, amount)
		if nil != err {
			return err
		}
	}

	response, err := client.Fund(data)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runRelease(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	milestoneID, err := checkID(c.String("milestone"), "milestone")
	if nil != err {
		return err
	}

	client, _, err := connectSigned(c, m)
	if nil != err {
		return err
	}
	defer client.Close()

	milestone, err := client.Release(milestoneID)
	if nil != err {
		return err
	}

	printJson(m.w, milestone)
	return nil
}

func runMilestones(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	jobID, err := checkID(c.String("job"), "job")
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	milestones, err := client.Milestones(jobID)
	if nil != err {
		return err
	}

	printJson(m.w, milestones)
	return nil
}
