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

type jobIDResult struct {
	JobID uint64 `json:"jobId"`
}

func jobData(c *cli.Context) (*rpccalls.JobData, error) {
	title := c.String("title")
	if "" == title {
		return nil, fmt.Errorf("title is required")
	}
	return &rpccalls.JobData{
		Title:       title,
		Description: c.String("description"),
		Payment:     c.Uint64("payment"),
		Experience:  c.String("experience"),
	}, nil
}

func runCreateJob(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	data, err := jobData(c)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "title: %s\n", data.Title)
		fmt.Fprintf(m.e, "payment: %d\n", data.Payment)
	}

	client, _, err := connectSigned(c, m)
	if nil != err {
		return err
	}
	defer client.Close()

	jobID, err := client.CreateJob(data)
	if nil != err {
		return err
	}

	printJson(m.w, jobIDResult{JobID: jobID})
	return nil
}

func runEditJob(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	jobID, err := checkID(c.String("job"), "job")
	if nil != err {
		return err
	}
	data, err := jobData(c)
	if nil != err {
		return err
	}

	client, _, err := connectSigned(c, m)
	if nil != err {
		return err
	}
	defer client.Close()

	err = client.EditJob(jobID, data)
	if nil != err {
		return err
	}

	printJson(m.w, jobIDResult{JobID: jobID})
	return nil
}

func runCloseJob(c *cli.Context) error {
	return jobAction(c, func(client *rpccalls.Client, jobID uint64) error {
		return client.CloseJob(jobID)
	})
}

func runApply(c *cli.Context) error {
	return jobAction(c, func(client *rpccalls.Client, jobID uint64) error {
		return client.Apply(jobID)
	})
}

// signed call that only needs a job id
func jobAction(c *cli.Context, action func(*rpccalls.Client, uint64) error) error {

	m := c.App.Metadata["config"].(*metadata)

	jobID, err := checkID(c.String("job"), "job")
	if nil != err {
		return err
	}

	client, _, err := connectSigned(c, m)
	if nil != err {
		return err
	}
	defer client.Close()

	err = action(client, jobID)
	if nil != err {
		return err
	}

	printJson(m.w, jobIDResult{JobID: jobID})
	return nil
}

func runSelect(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	jobID, err := checkID(c.String("job"), "job")
	if nil != err {
		return err
	}

	name, freelancer, err := checkRecipient(c.String("freelancer"), "freelancer", m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "job: %d\n", jobID)
		fmt.Fprintf(m.e, "freelancer: %s\n", name)
	}

	client, _, err := connectSigned(c, m)
	if nil != err {
		return err
	}
	defer client.Close()

	err = client.Select(jobID, freelancer)
	if nil != err {
		return err
	}

	printJson(m.w, jobIDResult{JobID: jobID})
	return nil
}

func runJob(c *cli.Context) error {

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

	j, err := client.GetJob(jobID)
	if nil != err {
		return err
	}

	printJson(m.w, j)
	return nil
}

func runJobs(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	jobs, err := client.OpenJobs()
	if nil != err {
		return err
	}

	printJson(m.w, jobs)
	return nil
}

func runApplications(c *cli.Context) error {

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

	applicants, err := client.Applications(jobID)
	if nil != err {
		return err
	}

	printJson(m.w, applicants)
	return nil
}
