// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/job"
	"github.com/bitmark-inc/freelanced/rpc/jobs"
)

// JobData - fields of a posted job
type JobData struct {
	Title       string
	Description string
	Payment     uint64
	Experience  string
}

// CreateJob - post a new job
func (c *Client) CreateJob(data *JobData) (uint64, error) {
	arguments := &jobs.CreateArguments{
		Title:       data.Title,
		Description: data.Description,
		Payment:     data.Payment,
		Experience:  data.Experience,
	}
	var reply jobs.JobIDReply
	err := c.signedCall("Jobs.Create", arguments, &reply)
	return reply.JobID, err
}

// EditJob - replace the fields of an open job
func (c *Client) EditJob(jobID uint64, data *JobData) error {
	arguments := &jobs.EditArguments{
		JobID:       jobID,
		Title:       data.Title,
		Description: data.Description,
		Payment:     data.Payment,
		Experience:  data.Experience,
	}
	var reply jobs.JobIDReply
	return c.signedCall("Jobs.Edit", arguments, &reply)
}

// CloseJob - stop taking applications
func (c *Client) CloseJob(jobID uint64) error {
	var reply jobs.JobIDReply
	return c.signedCall("Jobs.Close", &jobs.JobIDArguments{JobID: jobID}, &reply)
}

// Apply - signer applies for a job
func (c *Client) Apply(jobID uint64) error {
	var reply jobs.JobIDReply
	return c.signedCall("Jobs.Apply", &jobs.JobIDArguments{JobID: jobID}, &reply)
}

// Select - choose one of the applicants
func (c *Client) Select(jobID uint64, freelancer account.Address) error {
	arguments := &jobs.SelectArguments{
		JobID:      jobID,
		Freelancer: freelancer,
	}
	var reply jobs.JobIDReply
	return c.signedCall("Jobs.Select", arguments, &reply)
}

// GetJob - a single job
func (c *Client) GetJob(jobID uint64) (*job.Job, error) {
	var reply jobs.ViewReply
	err := c.call("Jobs.View", &jobs.ViewArguments{JobID: jobID}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Job, nil
}

// OpenJobs - all jobs still taking applications
func (c *Client) OpenJobs() ([]*job.Job, error) {
	var reply jobs.OpenReply
	err := c.call("Jobs.Open", &jobs.OpenArguments{}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Jobs, nil
}

// Applications - applicants of a job in application order
func (c *Client) Applications(jobID uint64) ([]account.Address, error) {
	var reply jobs.ApplicationsReply
	err := c.call("Jobs.Applications", &jobs.ViewArguments{JobID: jobID}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Applicants, nil
}
