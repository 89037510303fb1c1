// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/identity"
	"github.com/bitmark-inc/freelanced/rpc/users"
)

// RegisterData - profile for the signing account
type RegisterData struct {
	Name       string
	Contact    string
	Freelancer bool
}

// Register - register the signer
func (c *Client) Register(data *RegisterData) (*users.RegisterReply, error) {
	arguments := &users.RegisterArguments{
		Name:    data.Name,
		Contact: data.Contact,
		Role:    identity.RoleFromFlag(data.Freelancer),
	}
	var reply users.RegisterReply
	err := c.signedCall("Users.Register", arguments, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetUser - profile of any account
func (c *Client) GetUser(a account.Address) (*identity.User, error) {
	var reply users.GetReply
	err := c.call("Users.Get", &users.GetArguments{Account: a}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.User, nil
}
