// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package directory

import (
	"github.com/juju/errors"

	"github.com/juju/mcn"
)

// Snapshot returns the topics known to the lister at the time of the
// call. The topics themselves are shared, not copied, so their
// statistics keep moving after the snapshot is taken.
func Snapshot(lister Lister) []Topic {
	return lister.Topics()
}

// Find returns the topic with exactly the given name.
func Find(topics []Topic, name string) (Topic, error) {
	for _, topic := range topics {
		if topic.Name() == name {
			return topic, nil
		}
	}
	return nil, errors.NotFoundf("topic %q", name)
}

// Filter returns the topics whose name matches, keeping their order.
func Filter(topics []Topic, matcher mcn.TopicMatcher) []Topic {
	var result []Topic
	for _, topic := range topics {
		if matcher.Match(topic.Name()) {
			result = append(result, topic)
		}
	}
	return result
}
