// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - TLS servers for the JSON RPC services
package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/fault"
)

const minConnectionCount = 1

// Listener - a started set of network listeners
type Listener interface {
	Serve() error
	Close() error
}

// convert each listen address to its network type
//
// "*:PORT" is rewritten in place to "[::]:PORT" on the assumption
// that this will listen on tcp4 and tcp6
func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		if "" == listen {
			log.Errorf("listen[%d] is empty", i)
			return nil, fault.InvalidIpAddress
		}
		if '*' == listen[0] {
			_, port, err := net.SplitHostPort(listen)
			if nil != err {
				return nil, fault.InvalidIpAddress
			}
			addrs[i] = "[::]:" + port
			parsed[i] = "tcp"
			continue
		}

		host, _, err := net.SplitHostPort(listen)
		if nil != err {
			log.Errorf("listen[%d]: %q  error: %s", i, listen, err)
			return nil, fault.InvalidIpAddress
		}
		ip := net.ParseIP(host)
		if nil == ip {
			log.Errorf("listen[%d]: %q  error: %s", i, listen, fault.InvalidIpAddress)
			return nil, fault.InvalidIpAddress
		}
		if nil == ip.To4() || strings.HasPrefix(listen, "[") {
			parsed[i] = "tcp6"
		} else {
			parsed[i] = "tcp4"
		}
	}

	return parsed, nil
}

// close every listener, returning the first error
func closeAll(listeners []net.Listener) error {
	var first error
	for _, l := range listeners {
		if err := l.Close(); nil != err && nil == first {
			first = err
		}
	}
	return first
}
