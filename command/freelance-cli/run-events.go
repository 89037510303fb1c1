// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/freelanced/ledger"
	"github.com/bitmark-inc/freelanced/zmqutil"
)

func runEvents(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	start := c.Uint64("start")
	count := c.Int("count")
	if count <= 0 || count > ledger.MaximumEventCount {
		return fmt.Errorf("invalid count: %d", count)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "start: %d\n", start)
		fmt.Fprintf(m.e, "count: %d\n", count)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Events(start, count)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

// subscribe to the publisher and print each event
//
// every message is: event name, 8 byte sequence, JSON event
func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if "" == m.config.Publisher || "" == m.config.PublisherKey {
		return fmt.Errorf("publisher and publisher key must be configured")
	}

	serverPublicKey, err := zmqutil.ReadPublicKeyFile(m.config.PublisherKey)
	if nil != err {
		return err
	}

	filter := c.String("filter")
	limit := c.Int("count")

	if m.verbose {
		fmt.Fprintf(m.e, "publisher: %s\n", m.config.Publisher)
		fmt.Fprintf(m.e, "filter: %q\n", filter)
	}

	socket, err := zmqutil.NewSubscriber(m.config.Publisher, serverPublicKey, filter)
	if nil != err {
		return err
	}
	defer socket.Close()

	for n := 0; 0 == limit || n < limit; n += 1 {
		parts, err := socket.RecvMessageBytes(0)
		if nil != err {
			return err
		}
		if len(parts) < 3 {
			fmt.Fprintf(m.e, "short message: %d parts\n", len(parts))
			continue
		}

		var event ledger.Event
		err = json.Unmarshal(parts[2], &event)
		if nil != err {
			return err
		}
		printJson(m.w, event)
	}
	return nil
}
