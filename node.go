// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package mcn

import (
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/collections/deque"
	"github.com/juju/errors"
)

// Node is a subscription to a single hub. A node can be polled for new
// values, and when created with a handler it also has the handler called
// for every value in publish order.
type Node struct {
	id  int
	hub *Hub

	logger  Logger
	metrics Metrics
	clock   clock.Clock

	handler Handler

	mutex   sync.Mutex
	renewal bool
	stopped bool
	ready   chan struct{}
	pending *deque.Deque
	closed  chan struct{}
	data    chan struct{}
	done    chan struct{}
}

func newNode(hub *Hub, id int, handler Handler) *Node {
	// A closed channel is used to provide an immediate route through a select
	// call in the loop function.
	closed := make(chan struct{})
	close(closed)
	node := &Node{
		id:      id,
		hub:     hub,
		logger:  hub.logger,
		metrics: hub.metrics,
		clock:   hub.clock,
		handler: handler,
		ready:   make(chan struct{}, 1),
		pending: deque.New(),
		closed:  closed,
		data:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	if handler != nil {
		go node.loop()
	}
	node.logger.Tracef("created node %d on %q", id, hub.name)
	return node
}

// ID returns the node's index on its hub.
func (n *Node) ID() int {
	return n.id
}

// Topic returns the name of the hub the node is attached to.
func (n *Node) Topic() string {
	return n.hub.name
}

// Poll reports whether a value has been published since the last Clear
// or Copy. It never blocks.
func (n *Node) Poll() bool {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return n.renewal
}

// Clear marks the latest value as consumed.
func (n *Node) Clear() {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.renewal = false
}

// Copy returns the hub's latest value and marks it as consumed.
func (n *Node) Copy() (interface{}, error) {
	data, ok := n.hub.Data()
	if !ok {
		return nil, errors.Errorf("topic %q has not been published", n.hub.name)
	}
	n.Clear()
	return data, nil
}

// Ready returns a channel that receives after a value is published. The
// channel holds at most one signal, so a burst of publishes between reads
// is seen as one.
func (n *Node) Ready() <-chan struct{} {
	return n.ready
}

// Unsubscribe detaches the node from its hub.
func (n *Node) Unsubscribe() error {
	return errors.Trace(n.hub.Unsubscribe(n))
}

func (n *Node) notify(now time.Time, data interface{}) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.stopped {
		return
	}
	n.renewal = true
	select {
	case n.ready <- struct{}{}:
	default:
	}

	if n.handler == nil {
		return
	}
	n.pending.PushBack(&message{now: now, data: data})
	if n.pending.Len() == 1 {
		select {
		case n.data <- struct{}{}:
		default:
		}
	}
	// Notify the metrics that we're enqueuing a new item onto the node.
	n.metrics.Enqueued(n.hub.name)
}

func (n *Node) close() {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.stopped {
		return
	}
	for _, ok := n.pending.PopFront(); ok; _, ok = n.pending.PopFront() {
		n.metrics.Dequeued(n.hub.name)
	}
	n.stopped = true
	close(n.done)
}

func (n *Node) loop() {
	var next <-chan struct{}
	for {
		select {
		case <-n.done:
			return
		case <-n.data:
			// Has new data been pushed on?
		case <-next:
			// If there was already data, next is a closed channel.
			// otherwise it is nil so won't pass through.
		}
		msg, empty := n.popOne()
		if empty {
			next = nil
		} else {
			next = n.closed
		}
		if msg == nil {
			continue
		}
		n.logger.Tracef("exec handler for node %d on %q", n.id, n.hub.name)
		n.handler(n.hub.name, msg.data)

		// Consumed tells how long the message waited on the pending list,
		// which shows the backlog a slow handler builds up.
		n.metrics.Consumed(n.hub.name, n.clock.Now().Sub(msg.now))
	}
}

func (n *Node) popOne() (*message, bool) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.stopped {
		return nil, true
	}
	val, ok := n.pending.PopFront()
	if !ok {
		// nothing to do
		return nil, true
	}
	n.metrics.Dequeued(n.hub.name)

	empty := n.pending.Len() == 0
	return val.(*message), empty
}

type message struct {
	data interface{}
	now  time.Time
}
