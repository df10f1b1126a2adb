// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package mcn

import (
	"fmt"
	"regexp"
)

// TopicMatcher defines the Match method that is used to select hubs by
// topic name.
type TopicMatcher interface {
	Match(topic string) bool
}

// Topic is a TopicMatcher for a single topic name.
type Topic string

// Match implements TopicMatcher. One topic matches another if they
// are equal.
func (t Topic) Match(topic string) bool {
	return string(t) == topic
}

type regexMatcher struct {
	match *regexp.Regexp
}

// MatchRegex expects a valid regular expression. If the expression
// passed in is not valid, the function panics. The expected use of this
// is to be able to do something like:
//
//	registry.Select(mcn.MatchRegex("^sensor_.*"))
func MatchRegex(expression string) TopicMatcher {
	matcher, err := regexp.Compile(expression)
	if err != nil {
		panic(fmt.Sprintf("expression must be a valid regular expression: %v", err))
	}
	return &regexMatcher{matcher}
}

// Match implements TopicMatcher.
func (m *regexMatcher) Match(topic string) bool {
	return m.match.MatchString(topic)
}

type allMatcher struct{}

// Match implements TopicMatcher. All topics match for the allMatcher.
func (*allMatcher) Match(topic string) bool {
	return true
}

// MatchAll is a topic matcher that matches all topics.
var MatchAll TopicMatcher = (*allMatcher)(nil)
