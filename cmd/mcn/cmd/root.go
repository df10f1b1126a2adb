// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package cmd holds the mcn command line.
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/spf13/cobra"

	"github.com/juju/mcn/directory"
)

var logger = loggo.GetLogger("mcn.cmd")

// Watcher is an extra source of cancellation for echo sessions, such as
// a key press on the controlling terminal.
type Watcher interface {
	directory.Canceller

	// Output wraps the writer echoed values go to.
	Output(io.Writer) io.Writer

	Close() error
}

// Options configures the command tree returned by New.
type Options struct {
	Engine directory.Engine
	Clock  clock.Clock

	// Count and Period are the defaults for -c and -p.
	Count  uint32
	Period time.Duration

	// Cancel stops echo sessions, typically on a signal.
	Cancel directory.Canceller

	// Watch is called once per echo session.
	Watch func() (Watcher, error)

	// Prepare runs before list or echo do any work.
	Prepare func() error
}

type command struct {
	opts    Options
	count   lenientUint32
	period  lenientUint32
	logSpec string
}

// New returns the root mcn command.
func New(opts Options) *cobra.Command {
	if opts.Clock == nil {
		opts.Clock = clock.WallClock
	}
	if opts.Cancel == nil {
		opts.Cancel = directory.Never
	}
	if opts.Watch == nil {
		opts.Watch = func() (Watcher, error) { return nopWatcher{}, nil }
	}
	c := &command{
		opts:   opts,
		count:  lenientUint32{value: opts.Count},
		period: lenientUint32{value: uint32(opts.Period / time.Millisecond)},
	}

	root := &cobra.Command{
		Use:   "mcn [flags] <list|echo> [topic]",
		Short: "Inspect message center topics",
		Long: `mcn lists the topics advertised on the message center with their
subscriber counts and publish rates, and echoes values published on a
single topic until the count is reached or a key is pressed.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              rootArgs,
		PersistentPreRunE: c.configureLogging,
		RunE: func(*cobra.Command, []string) error {
			return usageErrorf("missing action")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	flags := root.PersistentFlags()
	flags.VarP(&c.count, "cnt", "c", "number of values to echo")
	flags.VarP(&c.period, "period", "p", "wait in milliseconds between polls when no value is ready")
	flags.StringVar(&c.logSpec, "log", "", "logging configuration, e.g. \"<root>=DEBUG\"")

	root.AddCommand(c.listCommand(), c.echoCommand())
	return root
}

func rootArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf("unknown action %q", args[0])
	}
	return nil
}

func (c *command) configureLogging(*cobra.Command, []string) error {
	if c.logSpec == "" {
		return nil
	}
	if err := loggo.ConfigureLoggers(c.logSpec); err != nil {
		return usageErrorf("invalid --log value: %v", err)
	}
	return nil
}

func (c *command) prepare() error {
	if c.opts.Prepare == nil {
		return nil
	}
	return errors.Annotate(c.opts.Prepare(), "preparing")
}

// Run executes root with args and returns the process exit code. Errors
// are written to the root command's error stream.
func Run(root *cobra.Command, args []string) int {
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	stderr := root.ErrOrStderr()
	fmt.Fprintf(stderr, "ERROR %v\n", err)
	if IsUsageError(err) {
		if cmd == nil {
			cmd = root
		}
		fmt.Fprint(stderr, cmd.UsageString())
		return 2
	}
	logger.Debugf("command failed: %s", errors.ErrorStack(err))
	return 1
}

type nopWatcher struct{}

func (nopWatcher) Cancelled() bool              { return false }
func (nopWatcher) Output(w io.Writer) io.Writer { return w }
func (nopWatcher) Close() error                 { return nil }
