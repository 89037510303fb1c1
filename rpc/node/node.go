// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/counter"
	"github.com/bitmark-inc/freelanced/escrow"
	"github.com/bitmark-inc/freelanced/job"
	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Ledger  *ledger.Ledger
	Custody account.Address
	counter *counter.Counter
}

// New - create the node service
func New(log *logger.L, l *ledger.Ledger, custody account.Address, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Ledger:  l,
		Custody: custody,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version  string          `json:"version"`
	Uptime   string          `json:"uptime"`
	RPCs     uint64          `json:"rpcs"`
	Counters Counters        `json:"counters"`
	Custody  account.Address `json:"custody"`
}

// Counters - next identifiers of the ledgers
type Counters struct {
	Jobs       uint64 `json:"jobs"`
	Milestones uint64 `json:"milestones"`
	Events     uint64 `json:"events"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	*reply = Details(node)
	return nil
}

// Details - the Info data, shared with the HTTPS details handler
func Details(node *Node) InfoReply {
	return InfoReply{
		Version: node.Version,
		Uptime:  time.Since(node.Start).String(),
		RPCs:    node.counter.Uint64(),
		Counters: Counters{
			Jobs:       node.Ledger.Counter(job.CounterName),
			Milestones: node.Ledger.Counter(escrow.CounterName),
			Events:     node.Ledger.Counter(ledger.EventCounter),
		},
		Custody: node.Custody,
	}
}
