// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/freelanced/messagebus"
	"github.com/bitmark-inc/freelanced/zmqutil"
)

const (
	broadcasterZapDomain = "broadcaster"
	queueSize            = 1000
)

type broadcaster struct {
	log     *logger.L
	bus     *messagebus.BroadcastQueue
	queue   <-chan messagebus.Message
	socket4 *zmq.Socket
	socket6 *zmq.Socket
}

// initialise the broadcaster
//
// the bus listener is attached here so no event committed after
// Initialise returns can be missed
func (brdc *broadcaster) initialise(log *logger.L, bus *messagebus.BroadcastQueue, privateKey []byte, publicKey []byte, broadcast []string) error {

	brdc.log = log
	brdc.bus = bus

	log.Info("initialising…")

	var err error
	brdc.socket4, brdc.socket6, err = zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	brdc.queue = bus.Chan(queueSize)

	return nil
}

// Run - forward bus messages until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-brdc.queue:
			if !ok {
				break loop
			}
			log.Debugf("sending: %s  sequence: %x", item.Command, firstParameter(item))
			brdc.process(brdc.socket4, item)
			brdc.process(brdc.socket6, item)
		}
	}

	brdc.bus.Release(brdc.queue)

	if nil != brdc.socket4 {
		brdc.socket4.Close()
		brdc.socket4 = nil
	}
	if nil != brdc.socket6 {
		brdc.socket6.Close()
		brdc.socket6 = nil
	}
	log.Info("stopped")
}

// send one message as a multipart frame sequence
func (brdc *broadcaster) process(socket *zmq.Socket, item messagebus.Message) {
	if nil == socket {
		return
	}

	parts := frames(item)
	last := len(parts) - 1
	for i, p := range parts {
		flags := zmq.DONTWAIT
		if i != last {
			flags |= zmq.SNDMORE
		}
		if _, err := socket.SendBytes(p, flags); nil != err {
			brdc.log.Warnf("send: %s  part: %d  error: %s", item.Command, i, err)
			return
		}
	}
}

// the wire frames for a message: command first then each parameter
func frames(item messagebus.Message) [][]byte {
	parts := make([][]byte, 0, 1+len(item.Parameters))
	parts = append(parts, []byte(item.Command))
	return append(parts, item.Parameters...)
}

func firstParameter(item messagebus.Message) []byte {
	if 0 == len(item.Parameters) {
		return nil
	}
	return item.Parameters[0]
}
