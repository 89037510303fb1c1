// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package escrow

import (
	"github.com/bitmark-inc/freelanced/util"
)

// Milestone - an escrowed payment for part of a job
type Milestone struct {
	ID          uint64 `json:"id"`
	JobID       uint64 `json:"jobId"`
	Description string `json:"description"`
	Amount      uint64 `json:"amount"`
	Released    bool   `json:"released"`
}

func (m *Milestone) pack() util.Packed {
	return util.Packed{}.
		AppendUint64(m.JobID).
		AppendString(m.Description).
		AppendUint64(m.Amount).
		AppendBool(m.Released)
}

func unpack(id uint64, record []byte) (*Milestone, error) {
	u := util.NewUnpacker(record)
	m := &Milestone{
		ID:          id,
		JobID:       u.Uint64(),
		Description: u.String(),
		Amount:      u.Uint64(),
		Released:    u.Bool(),
	}
	if err := u.Error(); nil != err {
		return nil, err
	}
	return m, nil
}
