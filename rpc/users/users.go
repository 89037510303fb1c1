// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package users

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/identity"
	"github.com/bitmark-inc/freelanced/rpc/auth"
	"github.com/bitmark-inc/freelanced/rpc/ratelimit"
)

const (
	rateLimitUsers = 200
	rateBurstUsers = 100
)

// Users - type for the RPC
type Users struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Verifier *auth.Verifier
	Registry *identity.Registry
}

// New - create the users service
func New(log *logger.L, verifier *auth.Verifier, registry *identity.Registry) *Users {
	return &Users{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitUsers, rateBurstUsers),
		Verifier: verifier,
		Registry: registry,
	}
}

// Users register
// --------------

// RegisterArguments - arguments for RPC
type RegisterArguments struct {
	auth.Authorisation `json:"auth"`
	Name               string        `json:"name"`
	Contact            string        `json:"contact"`
	Role               identity.Role `json:"role"`
}

// RegisterReply - result from RPC
type RegisterReply struct {
	Account account.Address `json:"account"`
}

// Register - create the caller's profile
func (users *Users) Register(arguments *RegisterArguments, reply *RegisterReply) error {

	if err := ratelimit.Limit(users.Limiter); nil != err {
		return err
	}

	caller, err := users.Verifier.Verify("Users.Register", arguments)
	if nil != err {
		return err
	}

	users.Log.Infof("Users.Register: %s  name: %q  role: %s", caller, arguments.Name, arguments.Role)

	err = users.Registry.Register(caller, arguments.Name, arguments.Contact, arguments.Role)
	if nil != err {
		return err
	}

	reply.Account = caller
	return nil
}

// Users get
// ---------

// GetArguments - arguments for RPC
type GetArguments struct {
	Account account.Address `json:"account"`
}

// GetReply - result from RPC
type GetReply struct {
	User *identity.User `json:"user"`
}

// Get - fetch a registered profile
func (users *Users) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(users.Limiter); nil != err {
		return err
	}

	user, err := users.Registry.Get(arguments.Account)
	if nil != err {
		return err
	}

	reply.User = user
	return nil
}
