// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package mcn

import (
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
)

// RegistryConfig is the argument struct for NewRegistry. The values are
// used for every hub advertised on the registry unless the HubConfig
// passed to AdvertiseWith sets its own.
type RegistryConfig struct {
	Clock           clock.Clock
	Metrics         Metrics
	Logger          Logger
	FrequencyWindow time.Duration
}

// Registry is the set of advertised hubs, kept in advertise order.
type Registry struct {
	config RegistryConfig

	mutex sync.Mutex
	hubs  []*Hub
}

// NewRegistry returns an empty Registry.
func NewRegistry(config RegistryConfig) *Registry {
	if config.Clock == nil {
		config.Clock = clock.WallClock
	}
	if config.Metrics == nil {
		config.Metrics = noOpMetrics{}
	}
	if config.Logger == nil {
		config.Logger = loggo.GetLogger("mcn.registry")
	}
	return &Registry{config: config}
}

// Advertise creates and registers a hub for the topic. A nil echo
// function means the topic cannot be echoed.
func (r *Registry) Advertise(name string, echo EchoFunc) (*Hub, error) {
	hub, err := r.AdvertiseWith(HubConfig{Name: name, Echo: echo})
	return hub, errors.Trace(err)
}

// AdvertiseWith creates and registers a hub from the full config.
func (r *Registry) AdvertiseWith(config HubConfig) (*Hub, error) {
	if config.Clock == nil {
		config.Clock = r.config.Clock
	}
	if config.Metrics == nil {
		config.Metrics = r.config.Metrics
	}
	if config.Logger == nil {
		config.Logger = r.config.Logger
	}
	if config.FrequencyWindow == 0 {
		config.FrequencyWindow = r.config.FrequencyWindow
	}
	hub, err := NewHub(config)
	if err != nil {
		return nil, errors.Trace(err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.find(config.Name) != nil {
		return nil, errors.AlreadyExistsf("topic %q", config.Name)
	}
	r.hubs = append(r.hubs, hub)
	r.config.Logger.Debugf("advertised topic %q", config.Name)
	return hub, nil
}

// Remove unregisters the topic and detaches all of its nodes.
func (r *Registry) Remove(name string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, hub := range r.hubs {
		if hub.name == name {
			hub.close()
			r.hubs = append(r.hubs[0:i], r.hubs[i+1:]...)
			r.config.Logger.Debugf("removed topic %q", name)
			return nil
		}
	}
	return errors.NotFoundf("topic %q", name)
}

// Lookup returns the hub for the topic.
func (r *Registry) Lookup(name string) (*Hub, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if hub := r.find(name); hub != nil {
		return hub, nil
	}
	return nil, errors.NotFoundf("topic %q", name)
}

func (r *Registry) find(name string) *Hub {
	for _, hub := range r.hubs {
		if hub.name == name {
			return hub
		}
	}
	return nil
}

// Hubs returns the registered hubs in advertise order. The slice is a
// copy; hubs advertised or removed later are not reflected in it.
func (r *Registry) Hubs() []*Hub {
	return r.Select(MatchAll)
}

// Select returns the registered hubs whose topic matches, in advertise
// order.
func (r *Registry) Select(matcher TopicMatcher) []*Hub {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	result := make([]*Hub, 0, len(r.hubs))
	for _, hub := range r.hubs {
		if matcher.Match(hub.name) {
			result = append(result, hub)
		}
	}
	return result
}
