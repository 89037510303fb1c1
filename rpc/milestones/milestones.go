// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package milestones

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/escrow"
	"github.com/bitmark-inc/freelanced/rpc/auth"
	"github.com/bitmark-inc/freelanced/rpc/ratelimit"
)

const (
	rateLimitMilestones = 200
	rateBurstMilestones = 100
)

// Milestones - type for the RPC
type Milestones struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Verifier *auth.Verifier
	Escrow   *escrow.Manager
}

// New - create the milestones service
func New(log *logger.L, verifier *auth.Verifier, manager *escrow.Manager) *Milestones {
	return &Milestones{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitMilestones, rateBurstMilestones),
		Verifier: verifier,
		Escrow:   manager,
	}
}

// Milestones create
// -----------------

// CreateArguments - arguments for RPC
type CreateArguments struct {
	auth.Authorisation `json:"auth"`
	JobID              uint64 `json:"jobId"`
	Amount             uint64 `json:"amount"`
	Description        string `json:"description"`
}

// CreateReply - result from RPC
type CreateReply struct {
	MilestoneID uint64          `json:"milestoneId"`
	Custody     account.Address `json:"custody"`
}

// Create - fund a milestone from the caller's approved token balance
func (milestones *Milestones) Create(arguments *CreateArguments, reply *CreateReply) error {

	if err := ratelimit.Limit(milestones.Limiter); nil != err {
		return err
	}

	caller, err := milestones.Verifier.Verify("Milestones.Create", arguments)
	if nil != err {
		return err
	}

	milestones.Log.Infof("Milestones.Create: job: %d  client: %s  amount: %d", arguments.JobID, caller, arguments.Amount)

	id, err := milestones.Escrow.Create(caller, arguments.JobID, arguments.Amount, arguments.Description)
	if nil != err {
		return err
	}

	reply.MilestoneID = id
	reply.Custody = milestones.Escrow.Custody()
	return nil
}

// Milestones release
// ------------------

// ReleaseArguments - arguments for RPC
type ReleaseArguments struct {
	auth.Authorisation `json:"auth"`
	MilestoneID        uint64 `json:"milestoneId"`
}

// ReleaseReply - result from RPC
type ReleaseReply struct {
	Milestone *escrow.Milestone `json:"milestone"`
}

// Release - pay a milestone to the job's selected freelancer
func (milestones *Milestones) Release(arguments *ReleaseArguments, reply *ReleaseReply) error {

	if err := ratelimit.Limit(milestones.Limiter); nil != err {
		return err
	}

	caller, err := milestones.Verifier.Verify("Milestones.Release", arguments)
	if nil != err {
		return err
	}

	milestones.Log.Infof("Milestones.Release: %d  client: %s", arguments.MilestoneID, caller)

	if err := milestones.Escrow.Release(caller, arguments.MilestoneID); nil != err {
		return err
	}

	m, err := milestones.Escrow.Get(arguments.MilestoneID)
	if nil != err {
		return err
	}
	reply.Milestone = m
	return nil
}

// Milestones queries
// ------------------

// ListArguments - arguments for RPC
type ListArguments struct {
	JobID uint64 `json:"jobId"`
}

// ListReply - result from RPC
type ListReply struct {
	Milestones []*escrow.Milestone `json:"milestones"`
}

// List - milestones of a job in creation order
func (milestones *Milestones) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.Limit(milestones.Limiter); nil != err {
		return err
	}

	list, err := milestones.Escrow.List(arguments.JobID)
	if nil != err {
		return err
	}

	reply.Milestones = list
	return nil
}

// GetArguments - arguments for RPC
type GetArguments struct {
	MilestoneID uint64 `json:"milestoneId"`
}

// GetReply - result from RPC
type GetReply struct {
	Milestone *escrow.Milestone `json:"milestone"`
}

// Get - fetch one milestone
func (milestones *Milestones) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(milestones.Limiter); nil != err {
		return err
	}

	m, err := milestones.Escrow.Get(arguments.MilestoneID)
	if nil != err {
		return err
	}

	reply.Milestone = m
	return nil
}

// EscrowedArguments - arguments for RPC
type EscrowedArguments struct {
	Client account.Address `json:"client"`
}

// EscrowedReply - result from RPC
type EscrowedReply struct {
	Client  account.Address `json:"client"`
	Amount  uint64          `json:"amount"`
	Custody account.Address `json:"custody"`
}

// Escrowed - unreleased funding held for a client
func (milestones *Milestones) Escrowed(arguments *EscrowedArguments, reply *EscrowedReply) error {

	if err := ratelimit.Limit(milestones.Limiter); nil != err {
		return err
	}

	reply.Client = arguments.Client
	reply.Amount = milestones.Escrow.Escrowed(arguments.Client)
	reply.Custody = milestones.Escrow.Custody()
	return nil
}
