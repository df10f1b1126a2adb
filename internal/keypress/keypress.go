// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package keypress watches an input stream for any key and reports it
// as a cancellation.
package keypress

import (
	"bytes"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"golang.org/x/term"
)

var logger = loggo.GetLogger("mcn.keypress")

// Watcher records whether a key has been pressed.
type Watcher struct {
	pressed atomic.Bool

	mu          sync.Mutex
	restore     func() error
	restoreLogs func() error
	raw         bool
}

// Watch starts watching in. When in is a terminal it is switched to raw
// mode so single keys are seen without a newline, and log output to
// stderr is rewritten for raw mode. Close restores both.
func Watch(in *os.File) (*Watcher, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		logger.Debugf("input is not a terminal, watching lines")
		return newWatcher(in), nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Annotate(err, "switching terminal to raw mode")
	}
	w := newWatcher(in)
	w.raw = true
	w.restore = func() error {
		return term.Restore(fd, state)
	}
	w.redirectLogs(os.Stderr)
	return w, nil
}

func newWatcher(in io.Reader) *Watcher {
	w := &Watcher{}
	go w.loop(in)
	return w
}

func (w *Watcher) loop(in io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			w.pressed.Store(true)
		}
		if err != nil {
			if err != io.EOF {
				logger.Debugf("input closed: %v", err)
			}
			return
		}
	}
}

// Cancelled reports whether any key has been pressed.
func (w *Watcher) Cancelled() bool {
	return w.pressed.Load()
}

// Output wraps out so that line endings render correctly while the
// terminal is in raw mode.
func (w *Watcher) Output(out io.Writer) io.Writer {
	if !w.raw {
		return out
	}
	return &crlfWriter{out: out}
}

// redirectLogs sends the default log writer's output through a
// crlfWriter on stderr until Close. Without a default writer there is
// nothing to redirect.
func (w *Watcher) redirectLogs(stderr io.Writer) {
	writer := loggo.NewSimpleWriter(&crlfWriter{out: stderr}, loggo.DefaultFormatter)
	previous, err := loggo.ReplaceDefaultWriter(writer)
	if err != nil {
		logger.Debugf("not redirecting log output: %v", err)
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.restoreLogs = func() error {
		_, err := loggo.ReplaceDefaultWriter(previous)
		return err
	}
}

// Close restores the log writer and the terminal. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var logErr error
	if w.restoreLogs != nil {
		logErr = w.restoreLogs()
		w.restoreLogs = nil
	}
	if w.restore != nil {
		restore := w.restore
		w.restore = nil
		if err := restore(); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Annotate(logErr, "restoring log output")
}

// crlfWriter turns "\n" into "\r\n".
type crlfWriter struct {
	out io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	converted := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	if _, err := c.out.Write(converted); err != nil {
		return 0, err
	}
	return len(p), nil
}
