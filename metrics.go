// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package mcn

import "time"

// Metrics represents methods for collecting information about the internal
// state of the hubs.
type Metrics interface {
	// Published is called for each value published on a topic.
	Published(topic string)

	// Subscribed and Unsubscribed track the nodes attached to a topic.
	Subscribed(topic string)
	Unsubscribed(topic string)

	// Enqueued increments the number of values waiting for the handlers of
	// a topic's nodes. This can be used to see if a handler has a backlog
	// of values piling up.
	Enqueued(topic string)

	// Dequeued decrements the pending count once a value leaves a node's
	// queue. This doesn't tell you if the value reached the handler.
	Dequeued(topic string)

	// Consumed reports how long a value sat in a node's queue before the
	// handler was called with it.
	Consumed(topic string, duration time.Duration)
}

type noOpMetrics struct{}

func (noOpMetrics) Published(topic string)                        {}
func (noOpMetrics) Subscribed(topic string)                       {}
func (noOpMetrics) Unsubscribed(topic string)                     {}
func (noOpMetrics) Enqueued(topic string)                         {}
func (noOpMetrics) Dequeued(topic string)                         {}
func (noOpMetrics) Consumed(topic string, duration time.Duration) {}
