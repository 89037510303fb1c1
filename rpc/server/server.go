// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/counter"
	"github.com/bitmark-inc/freelanced/escrow"
	"github.com/bitmark-inc/freelanced/identity"
	"github.com/bitmark-inc/freelanced/job"
	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/rpc/auth"
	"github.com/bitmark-inc/freelanced/rpc/events"
	"github.com/bitmark-inc/freelanced/rpc/jobs"
	"github.com/bitmark-inc/freelanced/rpc/milestones"
	"github.com/bitmark-inc/freelanced/rpc/node"
	"github.com/bitmark-inc/freelanced/rpc/token"
	"github.com/bitmark-inc/freelanced/rpc/users"
	"github.com/bitmark-inc/freelanced/stablecoin"
)

// Services - the ledgers exposed over RPC
type Services struct {
	Ledger   *ledger.Ledger
	Registry *identity.Registry
	Jobs     *job.Manager
	Escrow   *escrow.Manager
	Token    *stablecoin.Token
	Verifier *auth.Verifier
}

// Create - an RPC server with every service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, services Services) (*rpc.Server, *node.Node) {

	start := time.Now().UTC()

	n := node.New(log, services.Ledger, services.Escrow.Custody(), start, version, rpcCount)

	server := rpc.NewServer()

	_ = server.Register(users.New(log, services.Verifier, services.Registry))
	_ = server.Register(jobs.New(log, services.Verifier, services.Jobs))
	_ = server.Register(milestones.New(log, services.Verifier, services.Escrow))
	_ = server.Register(token.New(log, services.Verifier, services.Token))
	_ = server.Register(events.New(log, services.Ledger))
	_ = server.Register(n)

	return server, n
}
