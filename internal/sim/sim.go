// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package sim advertises a set of topics on a registry and publishes
// synthetic values on them at fixed rates.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/mcn"
)

var logger = loggo.GetLogger("mcn.sim")

// Topic describes one simulated topic.
type Topic struct {
	Name     string
	RateHz   float64
	Echo     mcn.EchoFunc
	MaxNodes int
	// Fields are copied into every published value.
	Fields map[string]interface{}
}

// Config is the argument struct for Start.
type Config struct {
	Registry *mcn.Registry
	Clock    clock.Clock
	Topics   []Topic
}

// Validate checks the config values.
func (c Config) Validate() error {
	if c.Registry == nil {
		return errors.NotValidf("nil Registry")
	}
	if c.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	for _, topic := range c.Topics {
		if topic.RateHz < 0 {
			return errors.NotValidf("topic %q rate %v", topic.Name, topic.RateHz)
		}
	}
	return nil
}

// Runtime is a running set of publishers.
type Runtime struct {
	clock clock.Clock
	hubs  []*mcn.Hub
	wg    sync.WaitGroup
}

// Start advertises every topic and starts one publisher per topic with
// a positive rate. Publishers stop when the context is done.
func Start(ctx context.Context, config Config) (*Runtime, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	rt := &Runtime{clock: config.Clock}
	for _, topic := range config.Topics {
		hub, err := config.Registry.AdvertiseWith(mcn.HubConfig{
			Name:     topic.Name,
			Echo:     topic.Echo,
			MaxNodes: topic.MaxNodes,
		})
		if err != nil {
			return nil, errors.Annotatef(err, "advertising %q", topic.Name)
		}
		rt.hubs = append(rt.hubs, hub)
		if topic.RateHz == 0 {
			logger.Debugf("topic %q is never published", topic.Name)
			continue
		}
		interval := time.Duration(float64(time.Second) / topic.RateHz)
		rt.wg.Add(1)
		go rt.publish(ctx, hub, interval, topic.Fields)
	}
	return rt, nil
}

// Hubs returns a copy of the advertised hubs in config order.
func (rt *Runtime) Hubs() []*mcn.Hub {
	result := make([]*mcn.Hub, len(rt.hubs))
	copy(result, rt.hubs)
	return result
}

// Wait blocks until every publisher has stopped.
func (rt *Runtime) Wait() {
	rt.wg.Wait()
}

func (rt *Runtime) publish(ctx context.Context, hub *mcn.Hub, interval time.Duration, fields map[string]interface{}) {
	defer rt.wg.Done()
	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-rt.clock.After(interval):
			seq++
			value := make(map[string]interface{}, len(fields)+2)
			for k, v := range fields {
				value[k] = v
			}
			value["seq"] = seq
			value["time"] = now.UTC().Format(time.RFC3339Nano)
			if err := hub.Publish(value); err != nil {
				logger.Debugf("stopping publisher: %v", err)
				return
			}
		}
	}
}
