// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/bitmark-inc/freelanced/fault"
)

// Role - the two kinds of registered user
type Role uint8

// the roles
const (
	Client     Role = 0
	Freelancer Role = 1
)

// RoleFromFlag - map the isFreelancer flag to a role
func RoleFromFlag(isFreelancer bool) Role {
	if isFreelancer {
		return Freelancer
	}
	return Client
}

// IsFreelancer - the role as a flag
func (role Role) IsFreelancer() bool {
	return Freelancer == role
}

// String - for the fmt package
func (role Role) String() string {
	switch role {
	case Client:
		return "client"
	case Freelancer:
		return "freelancer"
	default:
		return "unknown"
	}
}

// MarshalText - role as text
func (role Role) MarshalText() ([]byte, error) {
	switch role {
	case Client, Freelancer:
		return []byte(role.String()), nil
	default:
		return nil, fault.InvalidRole
	}
}

// UnmarshalText - text to role
func (role *Role) UnmarshalText(s []byte) error {
	switch string(s) {
	case "client":
		*role = Client
	case "freelancer":
		*role = Freelancer
	default:
		return fault.InvalidRole
	}
	return nil
}
