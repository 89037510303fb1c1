// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/bitmark-inc/freelanced/background"
)

type relay struct {
	events <-chan string
}

func Example() {
	events := make(chan string, 2)
	events <- "JobCreated"
	events <- "JobClosed"

	r := &relay{
		events: events,
	}

	done := make(chan struct{})
	p := background.Start(background.Processes{r}, done)
	<-done
	p.Stop()

	// Output:
	// JobCreated
	// JobClosed
}

func (r *relay) Run(args interface{}, shutdown <-chan struct{}) {
	done := args.(chan struct{})
	for i := 0; i < 2; i += 1 {
		fmt.Println(<-r.events)
	}
	close(done)
	<-shutdown
}
