// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/freelanced/account"
	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/rpc/auth"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	signer  *account.PrivateKey
	verbose bool
	handle  io.Writer // if verbose is set output items here
	now     func() time.Time
}

// NewClient - create a RPC connection to a freelanced
func NewClient(connect string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	return newClient(conn, verbose, handle), nil
}

func newClient(conn net.Conn, verbose bool, handle io.Writer) *Client {
	return &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
		now:     time.Now,
	}
}

// SetSigner - key used for state changing calls
func (c *Client) SetSigner(privateKey *account.PrivateKey) {
	c.signer = privateKey
}

// Close - shutdown the freelanced connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}

// sign the arguments then call
func (c *Client) signedCall(method string, arguments auth.Signed, reply interface{}) error {
	if nil == c.signer {
		return fault.NotPrivateKey
	}
	err := auth.Sign(c.signer, method, arguments, c.now())
	if nil != err {
		return err
	}
	return c.call(method, arguments, reply)
}

func (c *Client) call(method string, arguments interface{}, reply interface{}) error {
	c.printJson(method+" request", arguments)
	err := c.client.Call(method, arguments, reply)
	if nil != err {
		return err
	}
	c.printJson(method+" reply", reply)
	return nil
}

func (c *Client) printJson(title string, message interface{}) error {

	if !c.verbose {
		return nil
	}

	prefix := ""
	indent := "  "
	b, err := json.MarshalIndent(message, prefix, indent)
	if nil != err {
		return err
	}

	if "" == title {
		fmt.Fprintf(c.handle, "%s\n", b)
	} else {
		fmt.Fprintf(c.handle, "%s:\n%s\n", title, b)
	}
	return nil
}
