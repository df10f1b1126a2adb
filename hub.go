// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package mcn

import (
	"io"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
)

// DefaultFrequencyWindow is the period over which a hub counts publishes
// to estimate its publish frequency.
const DefaultFrequencyWindow = time.Second

// HubConfig is the argument struct for NewHub.
type HubConfig struct {
	// Name is the topic name. It must be unique within a registry.
	Name string

	// Echo formats the latest value for display. If it is nil the hub
	// cannot be echoed.
	Echo EchoFunc

	// MaxNodes limits the number of nodes attached at the same time.
	// Zero means no limit.
	MaxNodes int

	// FrequencyWindow defaults to DefaultFrequencyWindow.
	FrequencyWindow time.Duration

	Clock   clock.Clock
	Metrics Metrics
	Logger  Logger
}

// Validate checks the config values.
func (c HubConfig) Validate() error {
	if c.Name == "" {
		return errors.NotValidf("empty topic name")
	}
	if c.MaxNodes < 0 {
		return errors.NotValidf("negative MaxNodes %d", c.MaxNodes)
	}
	if c.FrequencyWindow < 0 {
		return errors.NotValidf("negative FrequencyWindow %v", c.FrequencyWindow)
	}
	return nil
}

// Hub is a named topic. It keeps the most recently published value and
// tells each attached node when a new one arrives.
type Hub struct {
	name     string
	echo     EchoFunc
	maxNodes int
	window   time.Duration

	clock   clock.Clock
	metrics Metrics
	logger  Logger

	mutex     sync.Mutex
	nodes     []*Node
	idx       int
	data      interface{}
	published bool
	closed    bool

	windowStart time.Time
	windowCount int
	freq        float64
}

// NewHub returns a new Hub. Hubs are normally created through
// Registry.Advertise so that they can be found by name.
func NewHub(config HubConfig) (*Hub, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if config.FrequencyWindow == 0 {
		config.FrequencyWindow = DefaultFrequencyWindow
	}
	if config.Clock == nil {
		config.Clock = clock.WallClock
	}
	if config.Metrics == nil {
		config.Metrics = noOpMetrics{}
	}
	if config.Logger == nil {
		config.Logger = loggo.GetLogger("mcn.hub")
	}
	return &Hub{
		name:        config.Name,
		echo:        config.Echo,
		maxNodes:    config.MaxNodes,
		window:      config.FrequencyWindow,
		clock:       config.Clock,
		metrics:     config.Metrics,
		logger:      config.Logger,
		windowStart: config.Clock.Now(),
	}, nil
}

// Name returns the topic name.
func (h *Hub) Name() string {
	return h.name
}

// Publish stores data as the latest value and marks it as new for every
// attached node. Nodes created with a handler get the value queued for
// their handler.
func (h *Hub) Publish(data interface{}) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.closed {
		return errors.Errorf("publish on removed topic %q", h.name)
	}

	now := h.clock.Now()
	h.roll(now)
	h.windowCount++
	h.data = data
	h.published = true

	for _, node := range h.nodes {
		node.notify(now, data)
	}
	h.metrics.Published(h.name)
	h.logger.Tracef("publish %q to %d nodes", h.name, len(h.nodes))
	return nil
}

// Subscribe attaches a new node to the hub. The node only sees values
// published after this call. If handler is not nil it is called for
// every published value from the node's own goroutine.
func (h *Hub) Subscribe(handler Handler) (*Node, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.closed {
		return nil, errors.Errorf("subscribe to removed topic %q", h.name)
	}
	if h.maxNodes > 0 && len(h.nodes) >= h.maxNodes {
		return nil, errors.Errorf("topic %q already has %d nodes", h.name, h.maxNodes)
	}

	node := newNode(h, h.idx, handler)
	h.idx++
	h.nodes = append(h.nodes, node)
	h.metrics.Subscribed(h.name)
	return node, nil
}

// Unsubscribe detaches the node from the hub. Pending handler calls for
// the node are dropped.
func (h *Hub) Unsubscribe(node *Node) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for i, n := range h.nodes {
		if n == node {
			n.close()
			h.nodes = append(h.nodes[0:i], h.nodes[i+1:]...)
			h.metrics.Unsubscribed(h.name)
			return nil
		}
	}
	return errors.NotFoundf("node on topic %q", h.name)
}

// close detaches every node and refuses further use of the hub.
func (h *Hub) close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, n := range h.nodes {
		n.close()
		h.metrics.Unsubscribed(h.name)
	}
	h.nodes = nil
	h.closed = true
}

// Data returns the latest published value. The boolean is false if
// nothing has been published yet.
func (h *Hub) Data() (interface{}, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.data, h.published
}

// NodeCount returns the number of attached nodes.
func (h *Hub) NodeCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.nodes)
}

// Frequency returns the publish rate in Hz measured over the last
// complete window.
func (h *Hub) Frequency() float64 {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.roll(h.clock.Now())
	return h.freq
}

func (h *Hub) roll(now time.Time) {
	elapsed := now.Sub(h.windowStart)
	if elapsed < h.window {
		return
	}
	h.freq = float64(h.windowCount) / elapsed.Seconds()
	h.windowCount = 0
	h.windowStart = now
}

// CanEcho reports whether the hub was advertised with an EchoFunc.
func (h *Hub) CanEcho() bool {
	return h.echo != nil
}

// Echo writes the latest value to w using the hub's EchoFunc.
func (h *Hub) Echo(w io.Writer) error {
	if h.echo == nil {
		return errors.NotSupportedf("echo for topic %q", h.name)
	}
	data, ok := h.Data()
	if !ok {
		return errors.Errorf("topic %q has not been published", h.name)
	}
	return errors.Annotatef(h.echo(w, data), "echo %q", h.name)
}
