// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package jobs

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/job"
	"github.com/bitmark-inc/freelanced/rpc/auth"
	"github.com/bitmark-inc/freelanced/rpc/ratelimit"
)

const (
	rateLimitJobs = 200
	rateBurstJobs = 100
)

// Jobs - type for the RPC
type Jobs struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Verifier *auth.Verifier
	Manager  *job.Manager
}

// New - create the jobs service
func New(log *logger.L, verifier *auth.Verifier, manager *job.Manager) *Jobs {
	return &Jobs{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitJobs, rateBurstJobs),
		Verifier: verifier,
		Manager:  manager,
	}
}

// JobIDArguments - a signed request naming one job
type JobIDArguments struct {
	auth.Authorisation `json:"auth"`
	JobID              uint64 `json:"jobId"`
}

// JobIDReply - the job affected
type JobIDReply struct {
	JobID uint64 `json:"jobId"`
}

// Jobs create
// -----------

// CreateArguments - arguments for RPC
type CreateArguments struct {
	auth.Authorisation `json:"auth"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Payment            uint64 `json:"payment"`
	Experience         string `json:"experience"`
}

// Create - post a new open job
func (jobs *Jobs) Create(arguments *CreateArguments, reply *JobIDReply) error {

	if err := ratelimit.Limit(jobs.Limiter); nil != err {
		return err
	}

	caller, err := jobs.Verifier.Verify("Jobs.Create", arguments)
	if nil != err {
		return err
	}

	jobs.Log.Infof("Jobs.Create: client: %s  title: %q", caller, arguments.Title)

	id, err := jobs.Manager.Create(caller, arguments.Title, arguments.Description, arguments.Payment, arguments.Experience)
	if nil != err {
		return err
	}

	reply.JobID = id
	return nil
}

// Jobs edit
// ---------

// EditArguments - arguments for RPC
type EditArguments struct {
	auth.Authorisation `json:"auth"`
	JobID              uint64 `json:"jobId"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Payment            uint64 `json:"payment"`
	Experience         string `json:"experience"`
}

// Edit - replace the mutable fields of an open job
func (jobs *Jobs) Edit(arguments *EditArguments, reply *JobIDReply) error {

	if err := ratelimit.Limit(jobs.Limiter); nil != err {
		return err
	}

	caller, err := jobs.Verifier.Verify("Jobs.Edit", arguments)
	if nil != err {
		return err
	}

	jobs.Log.Infof("Jobs.Edit: %d  caller: %s", arguments.JobID, caller)

	err = jobs.Manager.Edit(caller, arguments.JobID, arguments.Title, arguments.Description, arguments.Payment, arguments.Experience)
	if nil != err {
		return err
	}

	reply.JobID = arguments.JobID
	return nil
}

// Close - stop a job accepting applications
func (jobs *Jobs) Close(arguments *JobIDArguments, reply *JobIDReply) error {

	if err := ratelimit.Limit(jobs.Limiter); nil != err {
		return err
	}

	caller, err := jobs.Verifier.Verify("Jobs.Close", arguments)
	if nil != err {
		return err
	}

	jobs.Log.Infof("Jobs.Close: %d  caller: %s", arguments.JobID, caller)

	if err := jobs.Manager.Close(caller, arguments.JobID); nil != err {
		return err
	}

	reply.JobID = arguments.JobID
	return nil
}

// Apply - add the caller to the applicants of a job
func (jobs *Jobs) Apply(arguments *JobIDArguments, reply *JobIDReply) error {

	if err := ratelimit.Limit(jobs.Limiter); nil != err {
		return err
	}

	caller, err := jobs.Verifier.Verify("Jobs.Apply", arguments)
	if nil != err {
		return err
	}

	jobs.Log.Infof("Jobs.Apply: %d  applicant: %s", arguments.JobID, caller)

	if err := jobs.Manager.Apply(caller, arguments.JobID); nil != err {
		return err
	}

	reply.JobID = arguments.JobID
	return nil
}

// Jobs select
// -----------

// SelectArguments - arguments for RPC
type SelectArguments struct {
	auth.Authorisation `json:"auth"`
	JobID              uint64          `json:"jobId"`
	Freelancer         account.Address `json:"freelancer"`
}

// Select - choose the freelancer for a job
func (jobs *Jobs) Select(arguments *SelectArguments, reply *JobIDReply) error {

	if err := ratelimit.Limit(jobs.Limiter); nil != err {
		return err
	}

	caller, err := jobs.Verifier.Verify("Jobs.Select", arguments)
	if nil != err {
		return err
	}

	jobs.Log.Infof("Jobs.Select: %d  freelancer: %s", arguments.JobID, arguments.Freelancer)

	if err := jobs.Manager.Select(caller, arguments.JobID, arguments.Freelancer); nil != err {
		return err
	}

	reply.JobID = arguments.JobID
	return nil
}

// Jobs queries
// ------------

// ViewArguments - arguments for RPC
type ViewArguments struct {
	JobID uint64 `json:"jobId"`
}

// ViewReply - result from RPC
type ViewReply struct {
	Job *job.Job `json:"job"`
}

// View - fetch one job
func (jobs *Jobs) View(arguments *ViewArguments, reply *ViewReply) error {

	if err := ratelimit.Limit(jobs.Limiter); nil != err {
		return err
	}

	j, err := jobs.Manager.View(arguments.JobID)
	if nil != err {
		return err
	}

	reply.Job = j
	return nil
}

// OpenArguments - empty arguments for the open job list
type OpenArguments struct{}

// OpenReply - result from RPC
type OpenReply struct {
	Jobs []*job.Job `json:"jobs"`
}

// Open - all open jobs in ascending id order
func (jobs *Jobs) Open(_ *OpenArguments, reply *OpenReply) error {

	if err := ratelimit.Limit(jobs.Limiter); nil != err {
		return err
	}

	list, err := jobs.Manager.Open()
	if nil != err {
		return err
	}

	reply.Jobs = list
	return nil
}

// ApplicationsReply - result from RPC
type ApplicationsReply struct {
	Applicants []account.Address `json:"applicants"`
}

// Applications - current applicants of a job
func (jobs *Jobs) Applications(arguments *ViewArguments, reply *ApplicationsReply) error {

	if err := ratelimit.Limit(jobs.Limiter); nil != err {
		return err
	}

	applicants, err := jobs.Manager.Applications(arguments.JobID)
	if nil != err {
		return err
	}

	reply.Applicants = applicants
	return nil
}

// CountArguments - empty arguments for the job count
type CountArguments struct{}

// CountReply - result from RPC
type CountReply struct {
	Count uint64 `json:"count"`
}

// Count - number of jobs ever created
func (jobs *Jobs) Count(_ *CountArguments, reply *CountReply) error {

	if err := ratelimit.Limit(jobs.Limiter); nil != err {
		return err
	}

	reply.Count = jobs.Manager.Count()
	return nil
}
