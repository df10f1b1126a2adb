// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package mcn_test

import (
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/mcn"
)

type BenchmarkSuite struct{}

var _ = gc.Suite(&BenchmarkSuite{})

func (*BenchmarkSuite) BenchmarkPublishPolled(c *gc.C) {
	hub, err := mcn.NewHub(mcn.HubConfig{Name: "benchmarking"})
	c.Assert(err, jc.ErrorIsNil)
	node, err := hub.Subscribe(nil)
	c.Assert(err, jc.ErrorIsNil)
	defer node.Unsubscribe()

	delivered := 0
	for i := 0; i < c.N; i++ {
		c.Assert(hub.Publish(i), jc.ErrorIsNil)
		if node.Poll() {
			node.Clear()
			delivered++
		}
	}
	c.Check(delivered, gc.Equals, c.N)
}

func (*BenchmarkSuite) BenchmarkPublishHandler(c *gc.C) {
	hub, err := mcn.NewHub(mcn.HubConfig{Name: "benchmarking"})
	c.Assert(err, jc.ErrorIsNil)
	done := make(chan struct{})
	count := 0
	node, err := hub.Subscribe(func(string, interface{}) {
		count++
		if count == c.N {
			close(done)
		}
	})
	c.Assert(err, jc.ErrorIsNil)
	defer node.Unsubscribe()

	for i := 0; i < c.N; i++ {
		c.Assert(hub.Publish(i), jc.ErrorIsNil)
	}
	<-done
}
