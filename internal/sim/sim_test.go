// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package sim_test

import (
	"context"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/mcn"
	"github.com/juju/mcn/internal/sim"
)

type SimSuite struct {
	testing.LoggingCleanupSuite

	clock    *testclock.Clock
	registry *mcn.Registry
}

var _ = gc.Suite(&SimSuite{})

func (s *SimSuite) SetUpTest(c *gc.C) {
	s.LoggingCleanupSuite.SetUpTest(c)
	s.clock = testclock.NewClock(time.Time{})
	s.registry = mcn.NewRegistry(mcn.RegistryConfig{Clock: s.clock})
}

func (s *SimSuite) TestValidate(c *gc.C) {
	_, err := sim.Start(context.Background(), sim.Config{Clock: s.clock})
	c.Check(err, gc.ErrorMatches, "nil Registry not valid")
	_, err = sim.Start(context.Background(), sim.Config{Registry: s.registry})
	c.Check(err, gc.ErrorMatches, "nil Clock not valid")
	_, err = sim.Start(context.Background(), sim.Config{
		Registry: s.registry,
		Clock:    s.clock,
		Topics:   []sim.Topic{{Name: "a", RateHz: -1}},
	})
	c.Check(err, jc.Satisfies, errors.IsNotValid)
}

func (s *SimSuite) TestAdvertisesTopics(c *gc.C) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rt, err := sim.Start(ctx, sim.Config{
		Registry: s.registry,
		Clock:    s.clock,
		Topics: []sim.Topic{
			{Name: "sensor_imu", Echo: mcn.TextEcho},
			{Name: "rc_channels", MaxNodes: 1},
		},
	})
	c.Assert(err, jc.ErrorIsNil)
	hubs := rt.Hubs()
	c.Check(hubs, gc.HasLen, 2)
	hubs[0] = nil
	c.Check(rt.Hubs()[0], gc.NotNil)

	imu, err := s.registry.Lookup("sensor_imu")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(imu.CanEcho(), jc.IsTrue)

	rc, err := s.registry.Lookup("rc_channels")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(rc.CanEcho(), jc.IsFalse)
	_, err = rc.Subscribe(nil)
	c.Assert(err, jc.ErrorIsNil)
	_, err = rc.Subscribe(nil)
	c.Check(err, gc.NotNil)

	cancel()
	rt.Wait()
}

func (s *SimSuite) TestDuplicateTopic(c *gc.C) {
	_, err := sim.Start(context.Background(), sim.Config{
		Registry: s.registry,
		Clock:    s.clock,
		Topics:   []sim.Topic{{Name: "a"}, {Name: "a"}},
	})
	c.Check(err, gc.ErrorMatches, `advertising "a": topic "a" already exists`)
}

func (s *SimSuite) TestPublishesAtRate(c *gc.C) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rt, err := sim.Start(ctx, sim.Config{
		Registry: s.registry,
		Clock:    s.clock,
		Topics: []sim.Topic{{
			Name:   "sensor_baro",
			RateHz: 10,
			Fields: map[string]interface{}{"pressure_pa": 101325.0},
		}},
	})
	c.Assert(err, jc.ErrorIsNil)

	hub := rt.Hubs()[0]
	values := make(chan interface{}, 10)
	_, err = hub.Subscribe(func(topic string, data interface{}) {
		values <- data
	})
	c.Assert(err, jc.ErrorIsNil)

	for i := 1; i <= 10; i++ {
		err := s.clock.WaitAdvance(100*time.Millisecond, testing.LongWait, 1)
		c.Assert(err, jc.ErrorIsNil)
		select {
		case data := <-values:
			value := data.(map[string]interface{})
			c.Check(value["seq"], gc.Equals, uint64(i))
			c.Check(value["pressure_pa"], gc.Equals, 101325.0)
			c.Check(value["time"], gc.NotNil)
		case <-time.After(testing.LongWait):
			c.Fatalf("value %d not published", i)
		}
	}

	cancel()
	rt.Wait()
}

func (s *SimSuite) TestStopsWhenTopicRemoved(c *gc.C) {
	rt, err := sim.Start(context.Background(), sim.Config{
		Registry: s.registry,
		Clock:    s.clock,
		Topics:   []sim.Topic{{Name: "sensor_gps", RateHz: 1}},
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(s.registry.Remove("sensor_gps"), jc.ErrorIsNil)

	err = s.clock.WaitAdvance(time.Second, testing.LongWait, 1)
	c.Assert(err, jc.ErrorIsNil)

	done := make(chan struct{})
	go func() {
		rt.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(testing.LongWait):
		c.Fatal("publisher did not stop")
	}
}
