// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/freelanced/rpc/events"
	"github.com/bitmark-inc/freelanced/rpc/node"
)

// Events - a page of the event log
func (c *Client) Events(start uint64, count int) (*events.ListReply, error) {
	var reply events.ListReply
	err := c.call("Events.List", &events.ListArguments{Start: start, Count: count}, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// NodeInfo - daemon status
func (c *Client) NodeInfo() (*node.InfoReply, error) {
	var reply node.InfoReply
	err := c.call("Node.Info", &node.InfoArguments{}, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}
