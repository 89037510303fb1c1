// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/counter"
	"github.com/bitmark-inc/freelanced/escrow"
	"github.com/bitmark-inc/freelanced/identity"
	"github.com/bitmark-inc/freelanced/job"
	"github.com/bitmark-inc/freelanced/ledger/ledgertest"
	"github.com/bitmark-inc/freelanced/rpc/auth"
	"github.com/bitmark-inc/freelanced/rpc/events"
	"github.com/bitmark-inc/freelanced/rpc/jobs"
	"github.com/bitmark-inc/freelanced/rpc/milestones"
	"github.com/bitmark-inc/freelanced/rpc/node"
	"github.com/bitmark-inc/freelanced/rpc/server"
	"github.com/bitmark-inc/freelanced/rpc/token"
	"github.com/bitmark-inc/freelanced/rpc/users"
	"github.com/bitmark-inc/freelanced/stablecoin"
	"github.com/bitmark-inc/freelanced/util"
)

func TestMain(m *testing.M) {
	ledgertest.Main(m)
}

type fixture struct {
	t          *testing.T
	client     *rpc.Client
	minter     *account.PrivateKey
	employer   *account.PrivateKey
	freelancer *account.PrivateKey
	custody    account.Address
}

func setup(t *testing.T) (*fixture, func()) {
	l, teardown := ledgertest.Setup(t, nil)

	minter, _ := account.NewPrivateKey()
	employer, _ := account.NewPrivateKey()
	freelancer, _ := account.NewPrivateKey()

	registry := identity.New(l)
	jobManager := job.New(l, registry)
	coin := stablecoin.New(l, minter.Address())
	coin.Reserve(escrow.Custody)
	escrowManager := escrow.New(l, jobManager, coin)

	count := counter.Counter(0)
	s, _ := server.Create(logger.New("test"), "1.0", &count, server.Services{
		Ledger:   l,
		Registry: registry,
		Jobs:     jobManager,
		Escrow:   escrowManager,
		Token:    coin,
		Verifier: auth.NewVerifier(auth.DefaultWindow),
	})

	serverConn, clientConn := net.Pipe()
	go s.ServeCodec(jsonrpc.NewServerCodec(serverConn))
	client := jsonrpc.NewClient(clientConn)

	f := &fixture{
		t:          t,
		client:     client,
		minter:     minter,
		employer:   employer,
		freelancer: freelancer,
		custody:    escrowManager.Custody(),
	}
	return f, func() {
		client.Close()
		teardown()
	}
}

// sign and send a state changing call
func (f *fixture) signed(key *account.PrivateKey, method string, arguments auth.Signed, reply interface{}) error {
	if err := auth.Sign(key, method, arguments, time.Now()); nil != err {
		f.t.Fatalf("sign error: %s", err)
	}
	return f.client.Call(method, arguments, reply)
}

func TestFullFlow(t *testing.T) {
	f, teardown := setup(t)
	defer teardown()

	var registered users.RegisterReply
	err := f.signed(f.employer, "Users.Register", &users.RegisterArguments{Name: "Acme", Contact: "acme@example.com", Role: identity.Client}, &registered)
	assert.Nil(t, err, "register client")
	assert.Equal(t, f.employer.Address(), registered.Account, "client account")

	err = f.signed(f.freelancer, "Users.Register", &users.RegisterArguments{Name: "Dev", Contact: "dev@example.com", Role: identity.Freelancer}, &registered)
	assert.Nil(t, err, "register freelancer")

	var profile users.GetReply
	err = f.client.Call("Users.Get", &users.GetArguments{Account: f.freelancer.Address()}, &profile)
	assert.Nil(t, err, "get user")
	assert.Equal(t, "Dev", profile.User.Name, "user name")
	assert.Equal(t, identity.Freelancer, profile.User.Role, "user role")

	var balance token.BalanceReply
	err = f.signed(f.minter, "Token.Mint", &token.TransferArguments{To: f.employer.Address(), Amount: 1000}, &balance)
	assert.Nil(t, err, "mint")
	assert.Equal(t, uint64(1000), balance.Balance, "minted balance")

	var allowance token.AllowanceReply
	err = f.signed(f.employer, "Token.Approve", &token.ApproveArguments{Spender: f.custody, Amount: 600}, &allowance)
	assert.Nil(t, err, "approve")

	var created jobs.JobIDReply
	err = f.signed(f.employer, "Jobs.Create", &jobs.CreateArguments{Title: "Site", Description: "Build it", Payment: 500, Experience: "senior"}, &created)
	assert.Nil(t, err, "create job")
	assert.Equal(t, uint64(0), created.JobID, "first job id")

	var affected jobs.JobIDReply
	err = f.signed(f.freelancer, "Jobs.Apply", &jobs.JobIDArguments{JobID: 0}, &affected)
	assert.Nil(t, err, "apply")

	var applications jobs.ApplicationsReply
	err = f.client.Call("Jobs.Applications", &jobs.ViewArguments{JobID: 0}, &applications)
	assert.Nil(t, err, "applications")
	assert.Equal(t, []account.Address{f.freelancer.Address()}, applications.Applicants, "applicants")

	err = f.signed(f.employer, "Jobs.Select", &jobs.SelectArguments{JobID: 0, Freelancer: f.freelancer.Address()}, &affected)
	assert.Nil(t, err, "select")

	var funded milestones.CreateReply
	err = f.signed(f.employer, "Milestones.Create", &milestones.CreateArguments{JobID: 0, Amount: 400, Description: "design"}, &funded)
	assert.Nil(t, err, "fund milestone")
	assert.Equal(t, uint64(0), funded.MilestoneID, "first milestone id")
	assert.Equal(t, f.custody, funded.Custody, "custody")

	var escrowed milestones.EscrowedReply
	err = f.client.Call("Milestones.Escrowed", &milestones.EscrowedArguments{Client: f.employer.Address()}, &escrowed)
	assert.Nil(t, err, "escrowed")
	assert.Equal(t, uint64(400), escrowed.Amount, "escrowed amount")

	var released milestones.ReleaseReply
	err = f.signed(f.employer, "Milestones.Release", &milestones.ReleaseArguments{MilestoneID: 0}, &released)
	assert.Nil(t, err, "release")
	assert.True(t, released.Milestone.Released, "released flag")

	err = f.client.Call("Token.Balance", &token.BalanceArguments{Owner: f.freelancer.Address()}, &balance)
	assert.Nil(t, err, "balance")
	assert.Equal(t, uint64(400), balance.Balance, "freelancer paid")

	var list milestones.ListReply
	err = f.client.Call("Milestones.List", &milestones.ListArguments{JobID: 0}, &list)
	assert.Nil(t, err, "list milestones")
	assert.Equal(t, 1, len(list.Milestones), "milestone count")

	var log events.ListReply
	err = f.client.Call("Events.List", &events.ListArguments{Start: 0, Count: 100}, &log)
	assert.Nil(t, err, "events")
	names := make([]string, len(log.Events))
	for i, e := range log.Events {
		names[i] = e.Name
	}
	assert.Equal(t, []string{
		"UserRegistered",
		"UserRegistered",
		"Transfer",
		"Approval",
		"JobCreated",
		"JobApplied",
		"FreelancerSelected",
		"Transfer",
		"MilestoneCreated",
		"Transfer",
		"MilestoneReleased",
	}, names, "event order")
	assert.Equal(t, uint64(len(names)), log.NextStart, "next start")

	var info node.InfoReply
	err = f.client.Call("Node.Info", &node.InfoArguments{}, &info)
	assert.Nil(t, err, "node info")
	assert.Equal(t, "1.0", info.Version, "version")
	assert.Equal(t, uint64(1), info.Counters.Jobs, "job counter")
	assert.Equal(t, uint64(1), info.Counters.Milestones, "milestone counter")
}

func TestReasonStrings(t *testing.T) {
	f, teardown := setup(t)
	defer teardown()

	var created jobs.JobIDReply
	err := f.signed(f.employer, "Jobs.Create", &jobs.CreateArguments{Title: "x"}, &created)
	assert.EqualError(t, err, "User is not registered.", "unregistered client")

	var registered users.RegisterReply
	err = f.signed(f.freelancer, "Users.Register", &users.RegisterArguments{Name: "Dev", Role: identity.Freelancer}, &registered)
	assert.Nil(t, err, "register freelancer")

	err = f.signed(f.freelancer, "Users.Register", &users.RegisterArguments{Name: "Dev", Role: identity.Freelancer}, &registered)
	assert.EqualError(t, err, "User is already registered.", "second registration")

	err = f.signed(f.freelancer, "Jobs.Create", &jobs.CreateArguments{Title: "x"}, &created)
	assert.EqualError(t, err, "Freelancers cannot post jobs.", "freelancer posting")

	var view jobs.ViewReply
	err = f.client.Call("Jobs.View", &jobs.ViewArguments{JobID: 7}, &view)
	assert.EqualError(t, err, "Job does not exist.", "unknown job")

	var ms milestones.GetReply
	err = f.client.Call("Milestones.Get", &milestones.GetArguments{MilestoneID: 7}, &ms)
	assert.EqualError(t, err, "Invalid milestone ID.", "unknown milestone")

	var balance token.BalanceReply
	err = f.signed(f.employer, "Token.Mint", &token.TransferArguments{To: f.employer.Address(), Amount: 1}, &balance)
	assert.EqualError(t, err, "Only the token minter can mint.", "not minter")

	err = f.signed(f.minter, "Token.Mint", &token.TransferArguments{To: f.custody, Amount: 1}, &balance)
	assert.EqualError(t, err, "Only milestones can move tokens into custody.", "mint to custody")

	tooLong := strings.Repeat("c", util.MaximumFieldLength+1)
	err = f.signed(f.employer, "Users.Register", &users.RegisterArguments{Name: "Acme", Contact: tooLong, Role: identity.Client}, &registered)
	assert.EqualError(t, err, "Field is too long.", "oversize contact")

	var profile users.GetReply
	err = f.client.Call("Users.Get", &users.GetArguments{Account: f.employer.Address()}, &profile)
	assert.EqualError(t, err, "User is not registered.", "oversize registration stored")
}

func TestUnsignedRejected(t *testing.T) {
	f, teardown := setup(t)
	defer teardown()

	// credentials from one call cannot be reused for another
	arguments := users.RegisterArguments{Name: "Dev", Role: identity.Freelancer}
	err := auth.Sign(f.freelancer, "Users.Register", &arguments, time.Now())
	assert.Nil(t, err, "sign")

	arguments.Name = "Mallory"
	var registered users.RegisterReply
	err = f.client.Call("Users.Register", &arguments, &registered)
	assert.EqualError(t, err, "invalid signature", "altered arguments")

	var count jobs.CountReply
	err = f.client.Call("Jobs.Count", &jobs.CountArguments{}, &count)
	assert.Nil(t, err, "count")
	assert.Equal(t, uint64(0), count.Count, "no jobs")
}

func TestEventsInvalidCount(t *testing.T) {
	f, teardown := setup(t)
	defer teardown()

	var log events.ListReply
	err := f.client.Call("Events.List", &events.ListArguments{Start: 0, Count: 0}, &log)
	assert.EqualError(t, err, "invalid count", "zero count")
}
