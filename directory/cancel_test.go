// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package directory_test

import (
	"context"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/mcn/directory"
)

type CancellerSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&CancellerSuite{})

func (*CancellerSuite) TestNever(c *gc.C) {
	c.Check(directory.Never.Cancelled(), jc.IsFalse)
}

func (*CancellerSuite) TestContextCanceller(c *gc.C) {
	ctx, cancel := context.WithCancel(context.Background())
	canceller := directory.ContextCanceller(ctx)
	c.Check(canceller.Cancelled(), jc.IsFalse)
	cancel()
	c.Check(canceller.Cancelled(), jc.IsTrue)
}

func (*CancellerSuite) TestAnyCanceller(c *gc.C) {
	fired := false
	canceller := directory.AnyCanceller(
		directory.Never,
		directory.CancellerFunc(func() bool { return fired }),
	)
	c.Check(canceller.Cancelled(), jc.IsFalse)
	fired = true
	c.Check(canceller.Cancelled(), jc.IsTrue)
	c.Check(directory.AnyCanceller().Cancelled(), jc.IsFalse)
}
