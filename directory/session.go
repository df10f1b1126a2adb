// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package directory

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
)

// Unbounded as EchoConfig.Count echoes until the session is cancelled.
const Unbounded uint32 = math.MaxUint32

// DefaultMinPeriod bounds the wait between polls when no period is set.
const DefaultMinPeriod = 10 * time.Millisecond

// EchoConfig is the argument struct for Echo.
type EchoConfig struct {
	// Count is the number of values to echo. Zero echoes nothing.
	Count uint32

	// Period is the wait after every poll, whether or not a value was
	// delivered. Zero polls again at once after a delivery and otherwise
	// waits for the next publish on the topic, but never longer than
	// MinPeriod.
	Period time.Duration

	// MinPeriod defaults to DefaultMinPeriod.
	MinPeriod time.Duration

	// Output receives the echoed values. Defaults to io.Discard.
	Output io.Writer

	// Canceller defaults to Never.
	Canceller Canceller

	Clock  clock.Clock
	Logger Logger
}

func (c EchoConfig) withDefaults() EchoConfig {
	if c.MinPeriod <= 0 {
		c.MinPeriod = DefaultMinPeriod
	}
	if c.Output == nil {
		c.Output = io.Discard
	}
	if c.Canceller == nil {
		c.Canceller = Never
	}
	if c.Clock == nil {
		c.Clock = clock.WallClock
	}
	if c.Logger == nil {
		c.Logger = logger
	}
	return c
}

// StopReason tells why an echo session ended.
type StopReason int

const (
	// Exhausted means Count values were echoed.
	Exhausted StopReason = iota
	// Cancelled means the canceller fired.
	Cancelled
)

func (r StopReason) String() string {
	switch r {
	case Exhausted:
		return "exhausted"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("StopReason(%d)", int(r))
}

// EchoResult describes a finished echo session.
type EchoResult struct {
	Delivered uint64
	Reason    StopReason
}

type subscribeError struct {
	topic string
	err   error
}

func (e *subscribeError) Error() string {
	return fmt.Sprintf("subscribe to topic %q failed: %v", e.topic, e.err)
}

// IsSubscribeFailed reports whether the error came from the engine
// refusing the echo subscription.
func IsSubscribeFailed(err error) bool {
	_, ok := errors.Cause(err).(*subscribeError)
	return ok
}

// Echo subscribes to the named topic and writes each published value
// through the topic's echo function until Count values were written or
// the canceller fires. The subscription is always released before Echo
// returns.
//
// A topic missing from the engine gives a NotFound error, a topic
// without an echo function gives a NotSupported error, and in both
// cases no subscription is attempted.
func Echo(engine Engine, name string, config EchoConfig) (EchoResult, error) {
	config = config.withDefaults()

	topic, err := Find(Snapshot(engine), name)
	if err != nil {
		return EchoResult{}, errors.Trace(err)
	}
	if !topic.CanEcho() {
		return EchoResult{}, errors.NotSupportedf("echo for topic %q", name)
	}

	sub, err := engine.Subscribe(topic)
	if err == nil && sub == nil {
		err = errors.New("no subscription")
	}
	if err != nil {
		return EchoResult{}, errors.Trace(&subscribeError{topic: name, err: err})
	}
	config.Logger.Debugf("subscribed to %q", name)
	defer func() {
		if err := engine.Unsubscribe(topic, sub); err != nil {
			config.Logger.Warningf("unsubscribe from %q: %v", name, err)
			return
		}
		config.Logger.Debugf("unsubscribed from %q", name)
	}()

	s := &session{
		topic:  topic,
		sub:    sub,
		config: config,
	}
	return s.run()
}

type session struct {
	topic  Topic
	sub    Subscription
	config EchoConfig
}

func (s *session) run() (EchoResult, error) {
	var result EchoResult
	remaining := s.config.Count
	for remaining > 0 {
		// A pending cancel wins over a pending value.
		if s.config.Canceller.Cancelled() {
			result.Reason = Cancelled
			return result, nil
		}
		if s.sub.Poll() {
			if err := s.topic.Echo(s.config.Output); err != nil {
				return result, errors.Trace(err)
			}
			s.sub.Clear()
			result.Delivered++
			if remaining != Unbounded {
				remaining--
			}
			s.config.Logger.Tracef("delivered %d from %q", result.Delivered, s.topic.Name())
			if remaining == 0 {
				break
			}
			// Without a period the next value is polled for at once.
			if s.config.Period <= 0 {
				continue
			}
		}
		s.wait()
	}
	result.Reason = Exhausted
	return result, nil
}

func (s *session) wait() {
	if s.config.Period > 0 {
		<-s.config.Clock.After(s.config.Period)
		return
	}
	timeout := s.config.Clock.After(s.config.MinPeriod)
	if r, ok := s.sub.(readySignaller); ok {
		select {
		case <-r.Ready():
		case <-timeout:
		}
		return
	}
	<-timeout
}
