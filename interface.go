// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package mcn

import "io"

// Logger represents the logging methods called by the hubs and nodes.
// A loggo.Logger satisfies it.
type Logger interface {
	Errorf(message string, args ...interface{})
	Warningf(message string, args ...interface{})
	Infof(message string, args ...interface{})
	Debugf(message string, args ...interface{})
	Tracef(message string, args ...interface{})
}

// EchoFunc formats the latest value published on a hub and writes it to w.
// A hub advertised without an EchoFunc cannot be echoed.
type EchoFunc func(w io.Writer, data interface{}) error

// Handler is called by a node, in publish order, for every value
// published on the hub the node is attached to.
type Handler func(topic string, data interface{})
