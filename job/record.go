// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package job

import (
	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/util"
)

// Job - a posted job
//
// Freelancer is the zero address until one is selected
type Job struct {
	ID          uint64            `json:"id"`
	Client      account.Address   `json:"client"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Payment     uint64            `json:"payment"`
	Experience  string            `json:"experience"`
	Open        bool              `json:"open"`
	Freelancer  account.Address   `json:"freelancer"`
	Applicants  []account.Address `json:"applicants"`
}

// HasApplicant - true if a is in the current applicant list
func (job *Job) HasApplicant(a account.Address) bool {
	for _, applicant := range job.Applicants {
		if applicant == a {
			return true
		}
	}
	return false
}

// HasFreelancer - true once a freelancer is selected
func (job *Job) HasFreelancer() bool {
	return !job.Freelancer.IsZero()
}

func (job *Job) pack() util.Packed {
	p := util.Packed{}.
		AppendBytes(job.Client.Bytes()).
		AppendString(job.Title).
		AppendString(job.Description).
		AppendUint64(job.Payment).
		AppendString(job.Experience).
		AppendBool(job.Open).
		AppendBytes(job.Freelancer.Bytes()).
		AppendUint64(uint64(len(job.Applicants)))
	for _, a := range job.Applicants {
		p = p.AppendBytes(a.Bytes())
	}
	return p
}

func unpack(id uint64, record []byte) (*Job, error) {
	u := util.NewUnpacker(record)

	job := &Job{
		ID: id,
	}

	client, err := account.FromBytes(u.Bytes())
	if nil != err && nil == u.Error() {
		return nil, err
	}
	job.Client = client
	job.Title = u.String()
	job.Description = u.String()
	job.Payment = u.Uint64()
	job.Experience = u.String()
	job.Open = u.Bool()

	freelancer, err := account.FromBytes(u.Bytes())
	if nil != err && nil == u.Error() {
		return nil, err
	}
	job.Freelancer = freelancer

	n := u.Uint64()
	job.Applicants = make([]account.Address, 0, 4)
	for i := uint64(0); i < n && nil == u.Error(); i += 1 {
		a, err := account.FromBytes(u.Bytes())
		if nil != err && nil == u.Error() {
			return nil, err
		}
		job.Applicants = append(job.Applicants, a)
	}

	if err := u.Error(); nil != err {
		return nil, err
	}
	return job, nil
}
