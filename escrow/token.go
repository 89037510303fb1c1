// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package escrow

import (
	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/ledger"
)

// Token - the fungible token that funds milestones
//
// both calls run inside the milestone's own transaction
type Token interface {
	TransferFrom(tx *ledger.Tx, spender account.Address, from account.Address, to account.Address, amount uint64) error
	Transfer(tx *ledger.Tx, from account.Address, to account.Address, amount uint64) error
}
