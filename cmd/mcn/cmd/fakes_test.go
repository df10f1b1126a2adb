// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package cmd_test

import (
	"fmt"
	"io"

	"github.com/juju/errors"

	"github.com/juju/mcn/directory"
)

type fakeTopic struct {
	name    string
	nodes   int
	freq    float64
	canEcho bool
	echoed  int
}

func (t *fakeTopic) Name() string       { return t.name }
func (t *fakeTopic) NodeCount() int     { return t.nodes }
func (t *fakeTopic) Frequency() float64 { return t.freq }
func (t *fakeTopic) CanEcho() bool      { return t.canEcho }

func (t *fakeTopic) Echo(w io.Writer) error {
	t.echoed++
	_, err := fmt.Fprintf(w, "%s #%d\n", t.name, t.echoed)
	return err
}

// readySub always has a new value.
type readySub struct{}

func (readySub) Poll() bool { return true }
func (readySub) Clear()     {}

type fakeEngine struct {
	topics       []*fakeTopic
	subscribed   int
	unsubscribed int
}

func (e *fakeEngine) Topics() []directory.Topic {
	topics := make([]directory.Topic, len(e.topics))
	for i, t := range e.topics {
		topics[i] = t
	}
	return topics
}

func (e *fakeEngine) Subscribe(directory.Topic) (directory.Subscription, error) {
	e.subscribed++
	return readySub{}, nil
}

func (e *fakeEngine) Unsubscribe(directory.Topic, directory.Subscription) error {
	e.unsubscribed++
	return nil
}

type fakeWatcher struct {
	cancelled bool
	closed    int
	closeErr  error
}

func (w *fakeWatcher) Cancelled() bool { return w.cancelled }

func (w *fakeWatcher) Output(out io.Writer) io.Writer {
	return prefixWriter{out}
}

func (w *fakeWatcher) Close() error {
	w.closed++
	return w.closeErr
}

type prefixWriter struct {
	out io.Writer
}

func (p prefixWriter) Write(b []byte) (int, error) {
	if _, err := fmt.Fprintf(p.out, "> %s", b); err != nil {
		return 0, errors.Trace(err)
	}
	return len(b), nil
}
