// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package job - the job ledger
//
// A job is Open from creation until its client closes it; Closed is
// terminal.  Ids come from the "job" counter and start at zero.
package job

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/identity"
	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/storage"
	"github.com/bitmark-inc/freelanced/util"
)

// CounterName - counter key for job ids
const CounterName = "job"

// Manager - the job ledger
type Manager struct {
	log    *logger.L
	ledger *ledger.Ledger
	users  *identity.Registry
}

// New - create a job ledger that checks roles with users
func New(l *ledger.Ledger, users *identity.Registry) *Manager {
	return &Manager{
		log:    logger.New("job"),
		ledger: l,
		users:  users,
	}
}

// Create - post a new open job owned by caller
func (m *Manager) Create(caller account.Address, title string, description string, payment uint64, experience string) (uint64, error) {
	if err := util.CheckFieldLengths(title, description, experience); nil != err {
		return 0, err
	}

	var id uint64
	err := m.ledger.Execute("createJob", func(tx *ledger.Tx) error {
		user, err := m.users.Lookup(tx, caller)
		if nil != err {
			return err
		}
		if user.Role.IsFreelancer() {
			return fault.FreelancersCannotPost
		}

		id = tx.Next(CounterName)
		job := &Job{
			ID:          id,
			Client:      caller,
			Title:       title,
			Description: description,
			Payment:     payment,
			Experience:  experience,
			Open:        true,
		}
		put(tx, job)
		tx.Put(storage.Pool.OpenJobs, ledger.ID(id), nil)

		tx.Emit("JobCreated",
			ledger.Arg("jobId", id),
			ledger.Arg("title", title),
		)
		return nil
	})
	if nil != err {
		return 0, err
	}

	m.log.Infof("job: %d created by: %s", id, caller)
	return id, nil
}

// Edit - overwrite the mutable fields of an open job
func (m *Manager) Edit(caller account.Address, id uint64, title string, description string, payment uint64, experience string) error {
	if err := util.CheckFieldLengths(title, description, experience); nil != err {
		return err
	}

	return m.ledger.Execute("editJob", func(tx *ledger.Tx) error {
		job, err := m.Lookup(tx, id)
		if nil != err {
			return err
		}
		if job.Client != caller {
			return fault.NotClient
		}
		if !job.Open {
			return fault.JobNotOpen
		}

		job.Title = title
		job.Description = description
		job.Payment = payment
		job.Experience = experience
		put(tx, job)

		tx.Emit("JobEdited",
			ledger.Arg("jobId", id),
			ledger.Arg("title", title),
		)
		return nil
	})
}

// Close - close an open job, closing twice fails
func (m *Manager) Close(caller account.Address, id uint64) error {
	err := m.ledger.Execute("closeJob", func(tx *ledger.Tx) error {
		job, err := m.Lookup(tx, id)
		if nil != err {
			return err
		}
		if job.Client != caller {
			return fault.NotClient
		}
		if !job.Open {
			return fault.AlreadyClosed
		}

		job.Open = false
		put(tx, job)
		tx.Delete(storage.Pool.OpenJobs, ledger.ID(id))

		tx.Emit("JobClosed",
			ledger.Arg("jobId", id),
		)
		return nil
	})
	if nil == err {
		m.log.Infof("job: %d closed", id)
	}
	return err
}

// Apply - add caller to the applicant list
//
// applying again adds a second entry
func (m *Manager) Apply(caller account.Address, id uint64) error {
	return m.ledger.Execute("applyToJob", func(tx *ledger.Tx) error {
		job, err := m.Lookup(tx, id)
		if nil != err {
			return err
		}
		user, err := m.users.Lookup(tx, caller)
		if nil != err {
			return err
		}
		if !user.Role.IsFreelancer() {
			return fault.NotFreelancer
		}
		if !job.Open {
			return fault.JobNotOpen
		}

		job.Applicants = append(job.Applicants, caller)
		put(tx, job)

		tx.Emit("JobApplied",
			ledger.Arg("jobId", id),
			ledger.Arg("applicant", caller),
		)
		return nil
	})
}

// Select - choose one of the current applicants
//
// the applicant list is cleared
func (m *Manager) Select(caller account.Address, id uint64, freelancer account.Address) error {
	err := m.ledger.Execute("selectFreelancer", func(tx *ledger.Tx) error {
		job, err := m.Lookup(tx, id)
		if nil != err {
			return err
		}
		if job.Client != caller {
			return fault.NotClient
		}
		if !job.Open {
			return fault.JobNotOpen
		}
		if !job.HasApplicant(freelancer) {
			return fault.NotAnApplicant
		}

		job.Freelancer = freelancer
		job.Applicants = nil
		put(tx, job)

		tx.Emit("FreelancerSelected",
			ledger.Arg("jobId", id),
			ledger.Arg("freelancer", freelancer),
		)
		return nil
	})
	if nil == err {
		m.log.Infof("job: %d selected: %s", id, freelancer)
	}
	return err
}

// View - fetch one job
func (m *Manager) View(id uint64) (*Job, error) {
	var job *Job
	err := m.ledger.View(func(tx *ledger.Tx) error {
		j, err := m.Lookup(tx, id)
		job = j
		return err
	})
	return job, err
}

// Open - every open job in ascending id order
func (m *Manager) Open() ([]*Job, error) {
	jobs := make([]*Job, 0, 16)
	err := m.ledger.View(func(tx *ledger.Tx) error {
		return tx.Cursor(storage.Pool.OpenJobs).Map(func(key []byte, value []byte) error {
			job, err := m.Lookup(tx, ledger.FromID(key))
			if nil != err {
				return err
			}
			jobs = append(jobs, job)
			return nil
		})
	})
	if nil != err {
		return nil, err
	}
	return jobs, nil
}

// Applications - current applicants of a job
func (m *Manager) Applications(id uint64) ([]account.Address, error) {
	job, err := m.View(id)
	if nil != err {
		return nil, err
	}
	return job.Applicants, nil
}

// Count - number of jobs ever created, also the next id
func (m *Manager) Count() uint64 {
	return m.ledger.Counter(CounterName)
}

// Lookup - fetch a job inside a running transaction
func (m *Manager) Lookup(tx *ledger.Tx, id uint64) (*Job, error) {
	record := tx.Get(storage.Pool.Jobs, ledger.ID(id))
	if nil == record {
		return nil, fault.UnknownJob
	}
	job, err := unpack(id, record)
	if nil != err {
		logger.Panicf("job: corrupt record: %d  error: %s", id, err)
	}
	return job, nil
}

func put(tx *ledger.Tx, job *Job) {
	tx.Put(storage.Pool.Jobs, ledger.ID(job.ID), job.pack())
}
