// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package cmd

import (
	"time"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/juju/mcn/directory"
)

func (c *command) echoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "echo <topic>",
		Short: "Echo values published on a topic",
		Long: `Echo subscribes to the topic and writes every newly published value
until --cnt values have been written or any key is pressed.`,
		Args: func(_ *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return usageErrorf("no topic specified")
			case 1:
				return nil
			}
			return usageErrorf("unrecognized arguments: %q", args[1:])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.echo(cmd, args[0])
		},
	}
}

func (c *command) echo(cmd *cobra.Command, topic string) (err error) {
	if err := c.prepare(); err != nil {
		return errors.Trace(err)
	}
	watcher, err := c.opts.Watch()
	if err != nil {
		return errors.Annotate(err, "watching for key presses")
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = errors.Trace(closeErr)
		}
	}()

	result, err := directory.Echo(c.opts.Engine, topic, directory.EchoConfig{
		Count:     c.count.value,
		Period:    time.Duration(c.period.value) * time.Millisecond,
		Output:    watcher.Output(cmd.OutOrStdout()),
		Canceller: directory.AnyCanceller(c.opts.Cancel, watcher),
		Clock:     c.opts.Clock,
	})
	if err != nil {
		return errors.Trace(err)
	}
	logger.Debugf("echo %q %v after %d values", topic, result.Reason, result.Delivered)
	return nil
}
