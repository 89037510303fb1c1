// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package escrow - milestone funding and release
//
// Funds for a milestone are pulled from the job's client into the
// custody account when the milestone is created and pushed to the
// job's selected freelancer when it is released.  No other operation
// moves custody funds.
package escrow

import (
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/job"
	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/storage"
	"github.com/bitmark-inc/freelanced/util"
)

// CounterName - counter key for milestone ids
const CounterName = "milestone"

// Custody - the account holding escrowed tokens
//
// derived from a fixed tag so no key controls it
var Custody = custodyAddress()

func custodyAddress() account.Address {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte("freelanced escrow custody"))
	digest := h.Sum(nil)
	a, _ := account.FromBytes(digest[len(digest)-account.AddressLength:])
	return a
}

// Manager - the escrow/payment ledger
type Manager struct {
	log    *logger.L
	ledger *ledger.Ledger
	jobs   *job.Manager
	token  Token
}

// New - create the escrow ledger
func New(l *ledger.Ledger, jobs *job.Manager, token Token) *Manager {
	return &Manager{
		log:    logger.New("escrow"),
		ledger: l,
		jobs:   jobs,
		token:  token,
	}
}

// Custody - the custody account
func (m *Manager) Custody() account.Address {
	return Custody
}

// Create - fund a new milestone for an open job
//
// the token pull and the milestone record commit together
func (m *Manager) Create(caller account.Address, jobID uint64, amount uint64, description string) (uint64, error) {
	if err := util.CheckFieldLengths(description); nil != err {
		return 0, err
	}

	var id uint64
	err := m.ledger.Execute("createMilestone", func(tx *ledger.Tx) error {
		j, err := m.jobs.Lookup(tx, jobID)
		if nil != err {
			return err
		}
		if j.Client != caller {
			return fault.NotClient
		}
		if !j.Open {
			return fault.JobNotOpen
		}
		if 0 == amount {
			return fault.ZeroAmount
		}

		err = tokenError(m.token.TransferFrom(tx, Custody, caller, Custody, amount))
		if nil != err {
			return err
		}

		escrowed, _ := tx.GetN(storage.Pool.Escrowed, caller.Bytes())
		if escrowed+amount < escrowed {
			return fault.AmountOverflow
		}
		tx.PutN(storage.Pool.Escrowed, caller.Bytes(), escrowed+amount)

		id = tx.Next(CounterName)
		milestone := &Milestone{
			ID:          id,
			JobID:       jobID,
			Description: description,
			Amount:      amount,
		}
		put(tx, milestone)
		tx.Put(storage.Pool.JobMilestones, jobMilestoneKey(jobID, id), nil)

		tx.Emit("MilestoneCreated",
			ledger.Arg("milestoneId", id),
			ledger.Arg("jobId", jobID),
			ledger.Arg("amount", amount),
			ledger.Arg("description", description),
		)
		return nil
	})
	if nil != err {
		return 0, err
	}

	m.log.Infof("milestone: %d for job: %d funded with: %d", id, jobID, amount)
	return id, nil
}

// Release - pay a milestone to the job's selected freelancer
func (m *Manager) Release(caller account.Address, id uint64) error {
	var milestone *Milestone
	var freelancer account.Address
	err := m.ledger.Execute("releaseMilestone", func(tx *ledger.Tx) error {
		var err error
		milestone, err = m.Lookup(tx, id)
		if nil != err {
			return err
		}
		j, err := m.jobs.Lookup(tx, milestone.JobID)
		if nil != err {
			return err
		}
		if j.Client != caller {
			return fault.NotClient
		}
		if !j.Open {
			return fault.JobNotOpen
		}
		if milestone.Released {
			return fault.AlreadyReleased
		}
		if !j.HasFreelancer() {
			return fault.NoFreelancerSelected
		}
		freelancer = j.Freelancer

		escrowed, _ := tx.GetN(storage.Pool.Escrowed, j.Client.Bytes())
		if escrowed < milestone.Amount {
			m.log.Criticalf("milestone: %d escrowed: %d below amount: %d", id, escrowed, milestone.Amount)
			return fault.TransferFailed
		}

		err = tokenError(m.token.Transfer(tx, Custody, freelancer, milestone.Amount))
		if nil != err {
			return err
		}

		tx.PutN(storage.Pool.Escrowed, j.Client.Bytes(), escrowed-milestone.Amount)
		milestone.Released = true
		put(tx, milestone)

		tx.Emit("MilestoneReleased",
			ledger.Arg("milestoneId", id),
			ledger.Arg("jobId", milestone.JobID),
			ledger.Arg("freelancer", freelancer),
			ledger.Arg("amount", milestone.Amount),
		)
		return nil
	})
	if nil != err {
		return err
	}

	m.log.Infof("milestone: %d released: %d to: %s", id, milestone.Amount, freelancer)
	return nil
}

// List - milestones of a job in creation order, empty if none
func (m *Manager) List(jobID uint64) ([]*Milestone, error) {
	milestones := make([]*Milestone, 0, 8)
	err := m.ledger.View(func(tx *ledger.Tx) error {
		cursor := tx.PrefixCursor(storage.Pool.JobMilestones, ledger.ID(jobID))
		return cursor.Map(func(key []byte, value []byte) error {
			milestone, err := m.Lookup(tx, ledger.FromID(key[8:]))
			if nil != err {
				return err
			}
			milestones = append(milestones, milestone)
			return nil
		})
	})
	if nil != err {
		return nil, err
	}
	return milestones, nil
}

// Get - fetch one milestone
func (m *Manager) Get(id uint64) (*Milestone, error) {
	var milestone *Milestone
	err := m.ledger.View(func(tx *ledger.Tx) error {
		ms, err := m.Lookup(tx, id)
		milestone = ms
		return err
	})
	return milestone, err
}

// Escrowed - total unreleased milestone funding of a client
func (m *Manager) Escrowed(client account.Address) uint64 {
	var n uint64
	_ = m.ledger.View(func(tx *ledger.Tx) error {
		n, _ = tx.GetN(storage.Pool.Escrowed, client.Bytes())
		return nil
	})
	return n
}

// Count - number of milestones ever created
func (m *Manager) Count() uint64 {
	return m.ledger.Counter(CounterName)
}

// Lookup - fetch a milestone inside a running transaction
func (m *Manager) Lookup(tx *ledger.Tx, id uint64) (*Milestone, error) {
	record := tx.Get(storage.Pool.Milestones, ledger.ID(id))
	if nil == record {
		return nil, fault.UnknownMilestone
	}
	milestone, err := unpack(id, record)
	if nil != err {
		logger.Panicf("escrow: corrupt milestone record: %d  error: %s", id, err)
	}
	return milestone, nil
}

// token failures other than resource shortages surface as TransferFailed
func tokenError(err error) error {
	if nil == err || fault.IsErrResource(err) {
		return err
	}
	return fault.TransferFailed
}

func put(tx *ledger.Tx, milestone *Milestone) {
	tx.Put(storage.Pool.Milestones, ledger.ID(milestone.ID), milestone.pack())
}

func jobMilestoneKey(jobID uint64, id uint64) []byte {
	return append(ledger.ID(jobID), ledger.ID(id)...)
}
