package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ashdown-labs/larkhub-core/internal/channel"
)

// Info carries human-readable service metadata supplied by the adapter
// at discovery time.
type Info struct {
	Vendor string   `json:"vendor,omitempty"`
	Model  string   `json:"model,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Service is a named grouping of channels belonging to one physical or
// logical device, or to a gateway subsystem. The service exclusively
// owns its channels: they are created through AddChannel and torn down
// when the service deregisters.
//
// A service's channel collection is synchronized independently of every
// other service, so adapters mutating their own service never contend
// with unrelated adapters.
type Service struct {
	id   string
	name string
	info Info

	mu       sync.RWMutex
	channels map[string]*channel.Channel
	tags     map[string]struct{}
	reg      *Registry
}

// NewService creates an unregistered service. An empty id is replaced
// with a generated one. Location and other free-form labels go into
// info.Tags; they participate in selector matching once registered.
func NewService(id, name string, info Info) (*Service, error) {
	if err := channel.ValidateName(name); err != nil {
		return nil, err
	}
	if id == "" {
		id = channel.GenerateID()
	}

	s := &Service{
		id:       id,
		name:     name,
		info:     info,
		channels: make(map[string]*channel.Channel),
		tags:     make(map[string]struct{}, len(info.Tags)),
	}
	for _, t := range info.Tags {
		if t != "" {
			s.tags[t] = struct{}{}
		}
	}
	return s, nil
}

// ID returns the service's stable identifier.
func (s *Service) ID() string { return s.id }

// Name returns the service's human-readable name.
func (s *Service) Name() string { return s.name }

// Metadata returns the vendor/model metadata supplied at creation.
func (s *Service) Metadata() Info { return s.info }

// Tags returns a sorted snapshot of the service's current tags.
func (s *Service) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedTags(s.tags)
}

// AddChannel registers a new channel under the service and publishes it
// to the registry atomically: the channel is either fully indexed and
// visible to Find, or not present at all.
//
// Fails with ErrNotRegistered if the service has not been registered,
// taxonomy.ErrUnknownKind if the channel's kind is not in the taxonomy
// set, and ErrChannelExists on id collision. On any failure the registry
// is left unchanged.
func (s *Service) AddChannel(ctx context.Context, c *channel.Channel) error {
	reg := s.registry()
	if reg == nil {
		return fmt.Errorf("%w: service %q", ErrNotRegistered, s.id)
	}
	if err := reg.kinds.Validate(c.Kind()); err != nil {
		return err
	}
	if err := c.BindService(s.id); err != nil {
		return err
	}

	// Persisted channel tags are loaded before touching any lock; the
	// store may perform I/O.
	tags, err := reg.loadTags(ctx, c.ID())
	if err != nil {
		return err
	}

	s.mu.Lock()
	if _, dup := s.channels[c.ID()]; dup {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q in service %q", ErrChannelExists, c.ID(), s.id)
	}
	s.channels[c.ID()] = c
	s.mu.Unlock()

	// Publish to the cross-service index. The channel only becomes
	// queryable here; on failure the local insert is rolled back.
	if err := reg.publish(c, s, tags); err != nil {
		s.mu.Lock()
		delete(s.channels, c.ID())
		s.mu.Unlock()
		return err
	}
	return nil
}

// RemoveChannel deregisters and tears down one channel. Subsequent
// invocations on the id fail with ErrChannelGone. Removal is
// synchronous with respect to the index: once RemoveChannel returns, no
// Find call started afterwards observes the channel.
func (s *Service) RemoveChannel(ctx context.Context, id string) error {
	reg := s.registry()
	if reg == nil {
		return fmt.Errorf("%w: service %q", ErrNotRegistered, s.id)
	}

	s.mu.Lock()
	if _, ok := s.channels[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrChannelGone, id)
	}
	delete(s.channels, id)
	s.mu.Unlock()

	reg.retract(id)
	_ = ctx
	return nil
}

// Teardown removes all owned channels. The registry's Deregister calls
// this as part of the cascade; adapters may also call it directly before
// re-registering a refreshed channel set.
func (s *Service) Teardown(ctx context.Context) error {
	reg := s.registry()
	if reg == nil {
		return fmt.Errorf("%w: service %q", ErrNotRegistered, s.id)
	}

	s.mu.Lock()
	ids := make([]string, 0, len(s.channels))
	for id := range s.channels {
		ids = append(ids, id)
	}
	s.channels = make(map[string]*channel.Channel)
	s.mu.Unlock()

	reg.retractAll(ids)
	_ = ctx
	return nil
}

// Channel returns an owned channel by id.
func (s *Service) Channel(id string) (*channel.Channel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.channels[id]
	return c, ok
}

// Channels returns a snapshot of the owned channels, sorted by id.
func (s *Service) Channels() []*channel.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*channel.Channel, 0, len(s.channels))
	for _, c := range s.channels {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// ChannelCount returns the number of owned channels.
func (s *Service) ChannelCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.channels)
}

// AddTags labels the service with the given tags and persists them.
func (s *Service) AddTags(ctx context.Context, tags ...string) error {
	s.mu.Lock()
	for _, t := range tags {
		if t != "" {
			s.tags[t] = struct{}{}
		}
	}
	snapshot := sortedTags(s.tags)
	s.mu.Unlock()

	if reg := s.registry(); reg != nil {
		return reg.saveTags(ctx, s.id, snapshot)
	}
	return nil
}

// RemoveTags removes the given tags from the service and persists the
// remainder.
func (s *Service) RemoveTags(ctx context.Context, tags ...string) error {
	s.mu.Lock()
	for _, t := range tags {
		delete(s.tags, t)
	}
	snapshot := sortedTags(s.tags)
	s.mu.Unlock()

	if reg := s.registry(); reg != nil {
		return reg.saveTags(ctx, s.id, snapshot)
	}
	return nil
}

// hasTags reports whether the service carries every tag in want.
func (s *Service) hasTags(want []string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range want {
		if _, ok := s.tags[t]; !ok {
			return false
		}
	}
	return true
}

// registry returns the owning registry, or nil before registration.
func (s *Service) registry() *Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg
}

// attach and detach are called by the registry under its own lock but
// never while holding this service's lock.
func (s *Service) attach(reg *Registry, persisted []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg = reg
	for _, t := range persisted {
		if t != "" {
			s.tags[t] = struct{}{}
		}
	}
}

func (s *Service) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg = nil
}

func sortedTags(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
