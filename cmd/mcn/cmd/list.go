// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package cmd

import (
	"regexp"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/juju/mcn"
	"github.com/juju/mcn/directory"
)

func (c *command) listCommand() *cobra.Command {
	var match string
	list := &cobra.Command{
		Use:   "list",
		Short: "List advertised topics",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unrecognized arguments: %q", args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if match != "" {
				if _, err := regexp.Compile(match); err != nil {
					return usageErrorf("invalid --match value: %v", err)
				}
			}
			if err := c.prepare(); err != nil {
				return errors.Trace(err)
			}
			topics := directory.Snapshot(c.opts.Engine)
			if match != "" {
				topics = directory.Filter(topics, mcn.MatchRegex(match))
			}
			return errors.Trace(directory.WriteTopics(cmd.OutOrStdout(), topics))
		},
	}
	list.Flags().StringVar(&match, "match", "", "only list topics whose name matches this regular expression")
	return list
}
