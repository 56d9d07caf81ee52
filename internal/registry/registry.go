package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ashdown-labs/larkhub-core/internal/channel"
	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// Logger is the minimal logging interface the registry depends on.
// Satisfied by infrastructure/logging.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Handle is an immutable snapshot of one indexed channel, returned by
// Find. It carries enough metadata to decide what to invoke; the
// invocation itself goes through Registry.Read and Registry.Write by
// channel id, so a handle held across a teardown degrades to
// ErrChannelGone rather than touching a dead channel.
type Handle struct {
	ChannelID string
	ServiceID string
	Name      string
	Kind      taxonomy.Kind
	Role      channel.Role
	Tags      []string
}

// entry is one indexed channel. Tags live here rather than on the
// channel so that tag mutation stays under the registry's lock.
type entry struct {
	ch   *channel.Channel
	svc  *Service
	tags map[string]struct{}
}

// Stats summarizes the registry contents for diagnostics.
type Stats struct {
	TotalServices int
	TotalChannels int
	ByKind        map[taxonomy.Kind]int
	ByRole        map[channel.Role]int
}

// Registry is the process-wide index of services and their channels.
// Services register and deregister as adapters discover and lose
// devices; consumers locate channels through Find and invoke them by
// id. All methods are safe for concurrent use.
//
// Lock ordering: the registry lock is always acquired before any
// service lock, never the other way around. Channel invocations run
// outside both.
type Registry struct {
	kinds *taxonomy.Set

	mu       sync.RWMutex
	services map[string]*Service
	channels map[string]*entry
	closed   bool

	store  TagStore
	logger Logger
}

// New creates an empty registry validating channel kinds against the
// given taxonomy set.
func New(kinds *taxonomy.Set) *Registry {
	return &Registry{
		kinds:    kinds,
		services: make(map[string]*Service),
		channels: make(map[string]*entry),
		logger:   noopLogger{},
	}
}

// SetLogger installs a logger. Must be called before concurrent use.
func (r *Registry) SetLogger(l Logger) {
	if l != nil {
		r.logger = l
	}
}

// SetTagStore installs a persistence backend for service and channel
// tags. Must be called before concurrent use. Without a store, tags
// live only in memory.
func (r *Registry) SetTagStore(store TagStore) {
	r.store = store
}

// Kinds returns the taxonomy set the registry validates against.
func (r *Registry) Kinds() *taxonomy.Set { return r.kinds }

// Register adds a service to the registry. The service arrives with no
// indexed channels; the adapter adds them afterwards via AddChannel.
// Persisted tags for the service id are restored from the tag store.
func (r *Registry) Register(ctx context.Context, svc *Service) error {
	if svc == nil {
		return fmt.Errorf("registry: nil service")
	}
	persisted, err := r.loadTags(ctx, svc.ID())
	if err != nil {
		return err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	if _, dup := r.services[svc.ID()]; dup {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrServiceExists, svc.ID())
	}
	r.services[svc.ID()] = svc
	r.mu.Unlock()

	svc.attach(r, persisted)
	r.logger.Info("service registered", "service_id", svc.ID(), "name", svc.Name())
	return nil
}

// Deregister removes a service and cascades teardown over all of its
// channels. The removal is atomic with respect to Find: a snapshot
// taken after Deregister returns contains none of the service's
// channels. In-flight invocations on those channels run to completion;
// later ones fail with ErrChannelGone.
func (r *Registry) Deregister(ctx context.Context, serviceID string) error {
	r.mu.Lock()
	svc, ok := r.services[serviceID]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrServiceNotFound, serviceID)
	}
	delete(r.services, serviceID)

	removed := 0
	for id, e := range r.channels {
		if e.svc == svc {
			delete(r.channels, id)
			removed++
		}
	}
	r.mu.Unlock()

	// Clear the service's local collection after the index no longer
	// references it. Lock order stays registry before service.
	svc.mu.Lock()
	svc.channels = make(map[string]*channel.Channel)
	svc.reg = nil
	svc.mu.Unlock()

	r.logger.Info("service deregistered",
		"service_id", serviceID, "channels_removed", removed)
	return nil
}

// Service returns a registered service by id.
func (r *Registry) Service(id string) (*Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[id]
	return svc, ok
}

// Find evaluates the selector against a consistent snapshot of the
// index and returns matching handles sorted by channel id. A channel
// registered mid-call either appears in the result or not; a handle is
// never half-populated.
func (r *Registry) Find(sel Selector) []Handle {
	r.mu.RLock()
	out := make([]Handle, 0)
	for _, e := range r.channels {
		if !sel.matches(e) {
			continue
		}
		out = append(out, Handle{
			ChannelID: e.ch.ID(),
			ServiceID: e.svc.ID(),
			Name:      e.ch.Name(),
			Kind:      e.ch.Kind(),
			Role:      e.ch.Role(),
			Tags:      sortedTags(e.tags),
		})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ChannelID < out[j].ChannelID })
	return out
}

// Read invokes the getter channel with the given id. The invocation
// runs outside the registry lock, so slow adapters never block Find or
// registration. Returns ErrChannelGone if the id is not indexed.
func (r *Registry) Read(ctx context.Context, channelID string) (taxonomy.Value, error) {
	r.mu.RLock()
	e, ok := r.channels[channelID]
	r.mu.RUnlock()
	if !ok {
		return taxonomy.Value{}, fmt.Errorf("%w: %q", ErrChannelGone, channelID)
	}
	return e.ch.Read(ctx)
}

// Write invokes the setter channel with the given id. Like Read, the
// invocation runs outside the registry lock.
func (r *Registry) Write(ctx context.Context, channelID string, v taxonomy.Value) error {
	r.mu.RLock()
	e, ok := r.channels[channelID]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrChannelGone, channelID)
	}
	return e.ch.Write(ctx, v)
}

// AddTags labels every channel matching the selector with the given
// tags, persisting each channel's full tag set. Returns the number of
// channels touched.
func (r *Registry) AddTags(ctx context.Context, sel Selector, tags ...string) (int, error) {
	touched := r.mutateTags(sel, func(set map[string]struct{}) {
		for _, t := range tags {
			if t != "" {
				set[t] = struct{}{}
			}
		}
	})
	return len(touched), r.persistTags(ctx, touched)
}

// RemoveTags strips the given tags from every channel matching the
// selector. Returns the number of channels touched.
func (r *Registry) RemoveTags(ctx context.Context, sel Selector, tags ...string) (int, error) {
	touched := r.mutateTags(sel, func(set map[string]struct{}) {
		for _, t := range tags {
			delete(set, t)
		}
	})
	return len(touched), r.persistTags(ctx, touched)
}

type tagSnapshot struct {
	channelID string
	tags      []string
}

func (r *Registry) mutateTags(sel Selector, apply func(map[string]struct{})) []tagSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	var touched []tagSnapshot
	for id, e := range r.channels {
		if !sel.matches(e) {
			continue
		}
		apply(e.tags)
		touched = append(touched, tagSnapshot{channelID: id, tags: sortedTags(e.tags)})
	}
	return touched
}

func (r *Registry) persistTags(ctx context.Context, touched []tagSnapshot) error {
	if r.store == nil {
		return nil
	}
	for _, t := range touched {
		if err := r.store.Save(ctx, t.channelID, t.tags); err != nil {
			return fmt.Errorf("registry: persist tags for %q: %w", t.channelID, err)
		}
	}
	return nil
}

// ServiceCount returns the number of registered services.
func (r *Registry) ServiceCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.services)
}

// ChannelCount returns the number of indexed channels.
func (r *Registry) ChannelCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// Statistics returns a summary of the registry contents.
func (r *Registry) Statistics() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := Stats{
		TotalServices: len(r.services),
		TotalChannels: len(r.channels),
		ByKind:        make(map[taxonomy.Kind]int),
		ByRole:        make(map[channel.Role]int),
	}
	for _, e := range r.channels {
		st.ByKind[e.ch.Kind()]++
		st.ByRole[e.ch.Role()]++
	}
	return st
}

// Close deregisters every remaining service and rejects further
// registration. Invocations against the drained index fail with
// ErrChannelGone.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	ids := make([]string, 0, len(r.services))
	for id := range r.services {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		if err := r.Deregister(ctx, id); err != nil {
			r.logger.Warn("deregister during close", "service_id", id, "error", err)
		}
	}
	r.logger.Info("registry closed", "services_drained", len(ids))
	return nil
}

// publish indexes a channel under its owning service. Called by
// Service.AddChannel without the service lock held.
func (r *Registry) publish(c *channel.Channel, svc *Service, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if _, ok := r.services[svc.ID()]; !ok {
		return fmt.Errorf("%w: %q", ErrServiceNotFound, svc.ID())
	}
	if _, dup := r.channels[c.ID()]; dup {
		return fmt.Errorf("%w: %q", ErrChannelExists, c.ID())
	}

	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t != "" {
			set[t] = struct{}{}
		}
	}
	r.channels[c.ID()] = &entry{ch: c, svc: svc, tags: set}

	r.logger.Debug("channel published",
		"channel_id", c.ID(), "service_id", svc.ID(),
		"kind", string(c.Kind()), "role", string(c.Role()))
	return nil
}

// retract removes one channel from the index.
func (r *Registry) retract(channelID string) {
	r.mu.Lock()
	delete(r.channels, channelID)
	r.mu.Unlock()
	r.logger.Debug("channel retracted", "channel_id", channelID)
}

// retractAll removes a batch of channels under one write lock so that
// no snapshot observes a partial teardown.
func (r *Registry) retractAll(channelIDs []string) {
	r.mu.Lock()
	for _, id := range channelIDs {
		delete(r.channels, id)
	}
	r.mu.Unlock()
}

// loadTags reads persisted tags for an owner, tolerating a missing
// store.
func (r *Registry) loadTags(ctx context.Context, ownerID string) ([]string, error) {
	if r.store == nil {
		return nil, nil
	}
	tags, err := r.store.Load(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("registry: load tags for %q: %w", ownerID, err)
	}
	return tags, nil
}

// saveTags persists an owner's full tag set, tolerating a missing
// store.
func (r *Registry) saveTags(ctx context.Context, ownerID string, tags []string) error {
	if r.store == nil {
		return nil
	}
	if err := r.store.Save(ctx, ownerID, tags); err != nil {
		return fmt.Errorf("registry: persist tags for %q: %w", ownerID, err)
	}
	return nil
}
