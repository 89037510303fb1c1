// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"math/rand"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/counter"
	"github.com/bitmark-inc/freelanced/fault"
	"github.com/bitmark-inc/freelanced/ledger/ledgertest"
	"github.com/bitmark-inc/freelanced/rpc/certificate"
	"github.com/bitmark-inc/freelanced/rpc/listeners"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

type testHandler struct{}

func (h testHandler) RPC(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("RPC"))
}

func (h testHandler) Details(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Details"))
}

func (h testHandler) Root(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Root"))
}

func (h testHandler) SetAllow(_ map[string][]*net.IPNet) {}

var client = &http.Client{
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	},
}

func TestMain(m *testing.M) {
	ledgertest.Main(m)
}

func tlsConfig(t *testing.T) (*tls.Config, [32]byte) {
	cert, key, err := certgen.NewTLSCertPair("test", time.Now().Add(time.Hour), true, []string{"127.0.0.1"})
	if nil != err {
		t.Fatalf("certgen error: %s", err)
	}
	c, fingerprint, err := certificate.Get(logger.New("test"), "test", string(cert), string(key))
	if nil != err {
		t.Fatalf("certificate error: %s", err)
	}
	return c, fingerprint
}

func randomListen() string {
	return fmt.Sprintf("127.0.0.1:%d", rand.Intn(30000)+30000)
}

func TestNewRPCInvalid(t *testing.T) {
	c, fingerprint := tlsConfig(t)
	count := counter.Counter(0)
	s := rpc.NewServer()

	_, err := listeners.NewRPC(&listeners.RPCConfiguration{MaximumConnections: 0, Listen: []string{randomListen()}}, logger.New("test"), &count, s, c, fingerprint)
	assert.Equal(t, fault.MissingParameters, err, "zero connections")

	_, err = listeners.NewRPC(&listeners.RPCConfiguration{MaximumConnections: 5}, logger.New("test"), &count, s, c, fingerprint)
	assert.Equal(t, fault.MissingParameters, err, "no listen")

	_, err = listeners.NewRPC(&listeners.RPCConfiguration{MaximumConnections: 5, Listen: []string{"localhost:2130"}}, logger.New("test"), &count, s, c, fingerprint)
	assert.Equal(t, fault.InvalidIpAddress, err, "host name")
}

func TestRPCListenerServe(t *testing.T) {
	c, fingerprint := tlsConfig(t)
	count := counter.Counter(0)

	s := rpc.NewServer()
	err := s.Register(Add{})
	assert.Nil(t, err, "register")

	listen := randomListen()
	conf := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{listen},
	}

	r, err := listeners.NewRPC(&conf, logger.New("test"), &count, s, c, fingerprint)
	assert.Nil(t, err, "NewRPC")

	err = r.Serve()
	assert.Nil(t, err, "Serve")
	defer r.Close()

	conn, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if nil != err {
		t.Fatalf("dial error: %s", err)
	}
	first := jsonrpc.NewClient(conn)
	defer first.Close()

	var reply int
	err = first.Call("Add.Add", &AddArg{A: 1, B: 2}, &reply)
	assert.Nil(t, err, "call")
	assert.Equal(t, 3, reply, "wrong result")
	assert.Equal(t, uint64(1), count.Uint64(), "connection counted")

	// limit is one, so a second connection is refused
	conn2, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if nil == err {
		second := jsonrpc.NewClient(conn2)
		err = second.Call("Add.Add", &AddArg{A: 1, B: 2}, &reply)
		second.Close()
	}
	assert.NotNil(t, err, "second connection")
}

func TestNewHTTPSDisabled(t *testing.T) {
	c, _ := tlsConfig(t)
	h, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{}, logger.New("test"), c, testHandler{})
	assert.Nil(t, err, "no listen")
	assert.Nil(t, h, "disabled")
}

func TestNewHTTPSBadAllow(t *testing.T) {
	c, _ := tlsConfig(t)
	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{randomListen()},
		Allow: map[string][]string{
			"details": {"not-a-network"},
		},
	}
	_, err := listeners.NewHTTPS(&conf, logger.New("test"), c, testHandler{})
	assert.NotNil(t, err, "bad allow")
}

func TestHTTPSListenerServe(t *testing.T) {
	c, _ := tlsConfig(t)

	listen := randomListen()
	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
		Allow: map[string][]string{
			"details": {"127.0.0.1/32"},
		},
	}

	h, err := listeners.NewHTTPS(&conf, logger.New("test"), c, testHandler{})
	assert.Nil(t, err, "NewHTTPS")

	err = h.Serve()
	assert.Nil(t, err, "Serve")
	defer h.Close()

	time.Sleep(10 * time.Millisecond)

	for path, expected := range map[string]string{
		"rpc":     "RPC",
		"details": "Details",
		"other":   "Root",
	} {
		resp, err := client.Get("https://" + listen + "/freelanced/" + path)
		if nil != err {
			t.Fatalf("get: %s  error: %s", path, err)
		}
		content, _ := ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, expected, string(content), "wrong response for: "+path)
	}
}
