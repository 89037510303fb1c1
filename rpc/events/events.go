// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package events

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/rpc/ratelimit"
)

const (
	rateLimitEvents = 200
	rateBurstEvents = 200
)

// Events - type for the RPC
type Events struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  *ledger.Ledger
}

// New - create the events service
func New(log *logger.L, l *ledger.Ledger) *Events {
	return &Events{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitEvents, rateBurstEvents),
		Ledger:  l,
	}
}

// ListArguments - arguments for RPC
type ListArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// ListReply - result from RPC
type ListReply struct {
	Events    []ledger.Event `json:"events"`
	NextStart uint64         `json:"nextStart,string"`
}

// List - committed events in sequence order
//
// NextStart is the sequence to pass to continue the listing
func (events *Events) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.LimitN(events.Limiter, arguments.Count, ledger.MaximumEventCount); nil != err {
		return err
	}

	list, err := events.Ledger.Events(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Events = list
	reply.NextStart = arguments.Start
	if n := len(list); n > 0 {
		reply.NextStart = list[n-1].Sequence + 1
	}
	return nil
}
