// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/freelanced/command/freelance-cli/rpccalls"
)

func runRegister(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.String("name")
	if "" == name {
		return fmt.Errorf("name is required")
	}
	data := &rpccalls.RegisterData{
		Name:       name,
		Contact:    c.String("contact"),
		Freelancer: c.Bool("freelancer"),
	}

	if m.verbose {
		fmt.Fprintf(m.e, "name: %s\n", data.Name)
		fmt.Fprintf(m.e, "contact: %s\n", data.Contact)
		fmt.Fprintf(m.e, "freelancer: %t\n", data.Freelancer)
	}

	client, _, err := connectSigned(c, m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Register(data)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runUser(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	a, err := accountOrDefault(c, m, c.String("account"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	user, err := client.GetUser(a)
	if nil != err {
		return err
	}

	printJson(m.w, user)
	return nil
}

func runNodeInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	info, err := client.NodeInfo()
	if nil != err {
		return err
	}

	printJson(m.w, info)
	return nil
}
