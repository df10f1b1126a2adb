// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package directory lists the topics of a pub/sub engine and echoes the
// values published on a single topic.
package directory

import (
	"io"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/mcn"
)

var logger = loggo.GetLogger("mcn.directory")

// Logger represents the logging methods called by the echo session.
type Logger interface {
	Warningf(message string, args ...interface{})
	Debugf(message string, args ...interface{})
	Tracef(message string, args ...interface{})
}

// Topic is the read-only view of a hub used for listing and echoing.
type Topic interface {
	Name() string
	NodeCount() int
	Frequency() float64
	CanEcho() bool
	Echo(w io.Writer) error
}

// Subscription is a handle on one topic's value stream.
type Subscription interface {
	// Poll reports, without blocking, whether a value is waiting.
	Poll() bool
	// Clear marks the waiting value as consumed.
	Clear()
}

// readySignaller is implemented by subscriptions that can tell when the
// next value is published. The echo session uses it to wait for the
// engine's own cadence instead of a fixed period.
type readySignaller interface {
	Ready() <-chan struct{}
}

// Lister provides the current set of topics.
type Lister interface {
	Topics() []Topic
}

// Engine is the pub/sub engine the directory works against.
type Engine interface {
	Lister
	Subscribe(topic Topic) (Subscription, error)
	Unsubscribe(topic Topic, sub Subscription) error
}

// NewRegistryEngine returns an Engine backed by an mcn registry.
func NewRegistryEngine(registry *mcn.Registry) Engine {
	return &registryEngine{registry: registry}
}

type registryEngine struct {
	registry *mcn.Registry
}

// Topics implements Lister.
func (e *registryEngine) Topics() []Topic {
	hubs := e.registry.Hubs()
	topics := make([]Topic, len(hubs))
	for i, hub := range hubs {
		topics[i] = hub
	}
	return topics
}

// Subscribe implements Engine.
func (e *registryEngine) Subscribe(topic Topic) (Subscription, error) {
	hub, ok := topic.(*mcn.Hub)
	if !ok {
		return nil, errors.NotValidf("topic of type %T", topic)
	}
	node, err := hub.Subscribe(nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return node, nil
}

// Unsubscribe implements Engine.
func (e *registryEngine) Unsubscribe(topic Topic, sub Subscription) error {
	hub, ok := topic.(*mcn.Hub)
	if !ok {
		return errors.NotValidf("topic of type %T", topic)
	}
	node, ok := sub.(*mcn.Node)
	if !ok {
		return errors.NotValidf("subscription of type %T", sub)
	}
	return errors.Trace(hub.Unsubscribe(node))
}
