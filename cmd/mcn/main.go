// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/mcn"
	"github.com/juju/mcn/cmd/mcn/cmd"
	"github.com/juju/mcn/directory"
	"github.com/juju/mcn/internal/config"
	"github.com/juju/mcn/internal/keypress"
	"github.com/juju/mcn/internal/sim"
)

var logger = loggo.GetLogger("mcn")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("MCN_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		return 1
	}
	if err := loggo.ConfigureLoggers(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR invalid logging config: %v\n", err)
		return 1
	}

	topics, err := simTopics(cfg.Topics)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		return 1
	}
	registry := mcn.NewRegistry(mcn.RegistryConfig{Clock: clock.WallClock})
	simCtx, stopSim := context.WithCancel(ctx)
	publishers, err := sim.Start(simCtx, sim.Config{
		Registry: registry,
		Clock:    clock.WallClock,
		Topics:   topics,
	})
	if err != nil {
		stopSim()
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		return 1
	}
	defer func() {
		stopSim()
		publishers.Wait()
	}()

	root := cmd.New(cmd.Options{
		Engine: directory.NewRegistryEngine(registry),
		Clock:  clock.WallClock,
		Count:  cfg.Echo.Count,
		Period: cfg.Echo.Period(),
		Cancel: directory.ContextCanceller(ctx),
		Watch: func() (cmd.Watcher, error) {
			w, err := keypress.Watch(os.Stdin)
			if err != nil {
				return nil, errors.Trace(err)
			}
			return w, nil
		},
		Prepare: func() error {
			select {
			case <-clock.WallClock.After(cfg.Sim.Warmup()):
				return nil
			case <-ctx.Done():
				return errors.Trace(ctx.Err())
			}
		},
	})
	return cmd.Run(root, args)
}

func simTopics(configs []config.TopicConfig) ([]sim.Topic, error) {
	topics := make([]sim.Topic, len(configs))
	for i, tc := range configs {
		echo, err := mcn.EchoFormat(tc.Echo)
		if err != nil {
			return nil, errors.Annotatef(err, "topic %q", tc.Name)
		}
		topics[i] = sim.Topic{
			Name:     tc.Name,
			RateHz:   tc.RateHz,
			Echo:     echo,
			MaxNodes: tc.MaxNodes,
			Fields:   tc.Fields,
		}
	}
	logger.Debugf("simulating %d topics", len(topics))
	return topics, nil
}
