// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - registry of users and their roles
package identity

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/storage"
	"github.com/bitmark-inc/freelanced/util"
)

// User - a registered profile
type User struct {
	Account    account.Address `json:"account"`
	Name       string          `json:"name"`
	Contact    string          `json:"contact"`
	Role       Role            `json:"role"`
	Registered bool            `json:"registered"`
}

// Registry - the identity registry
type Registry struct {
	log    *logger.L
	ledger *ledger.Ledger
}

// New - create a registry on a ledger
func New(l *ledger.Ledger) *Registry {
	return &Registry{
		log:    logger.New("identity"),
		ledger: l,
	}
}

// Register - create the profile for caller
//
// a profile can only be written once
func (r *Registry) Register(caller account.Address, name string, contact string, role Role) error {
	if caller.IsZero() {
		return fault.InvalidAddress
	}
	if Client != role && Freelancer != role {
		return fault.InvalidRole
	}
	if err := util.CheckFieldLengths(name, contact); nil != err {
		return err
	}

	err := r.ledger.Execute("registerUser", func(tx *ledger.Tx) error {
		if tx.Has(storage.Pool.Users, caller.Bytes()) {
			return fault.AlreadyRegistered
		}

		packed := util.Packed{}.
			AppendString(name).
			AppendString(contact).
			AppendUint64(uint64(role))
		tx.Put(storage.Pool.Users, caller.Bytes(), packed)

		tx.Emit("UserRegistered",
			ledger.Arg("account", caller),
			ledger.Arg("name", name),
			ledger.Arg("isFreelancer", role.IsFreelancer()),
		)
		return nil
	})
	if nil != err {
		return err
	}

	r.log.Infof("registered: %s as %s", caller, role)
	return nil
}

// Get - fetch a profile
func (r *Registry) Get(a account.Address) (*User, error) {
	var user *User
	err := r.ledger.View(func(tx *ledger.Tx) error {
		u, err := r.Lookup(tx, a)
		user = u
		return err
	})
	return user, err
}

// Lookup - fetch a profile inside a running transaction
func (r *Registry) Lookup(tx *ledger.Tx, a account.Address) (*User, error) {
	record := tx.Get(storage.Pool.Users, a.Bytes())
	if nil == record {
		return nil, fault.NotRegistered
	}

	u := util.NewUnpacker(record)
	user := &User{
		Account:    a,
		Name:       u.String(),
		Contact:    u.String(),
		Role:       Role(u.Uint64()),
		Registered: true,
	}
	if err := u.Error(); nil != err {
		logger.Panicf("identity: corrupt user record: %s  error: %s", a, err)
	}
	return user, nil
}
