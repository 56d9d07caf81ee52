package registry

import (
	"github.com/ashdown-labs/larkhub-core/internal/channel"
	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// Selector narrows a Find query over the registered channels.
//
// A zero Selector matches everything; each With* call returns a copy
// that is at least as restrictive. Tag restrictions mean "has all the
// listed tags". Two selectors can be combined with And; combining
// contradictory exact restrictions (two different ids, two different
// kinds) yields a selector that matches nothing rather than an error.
//
// Matching is structural: kind-tag equality and role equality only.
// There is no partial or fuzzy kind matching: a query for temperature
// never returns a threshold_temperature channel.
type Selector struct {
	id          string
	serviceID   string
	kind        taxonomy.Kind
	role        channel.Role
	tags        []string
	serviceTags []string
	conflict    bool
}

// NewSelector creates a selector matching every channel.
func NewSelector() Selector {
	return Selector{}
}

// WithID restricts to the channel with the given id.
func (s Selector) WithID(id string) Selector {
	if s.id != "" && s.id != id {
		s.conflict = true
		return s
	}
	s.id = id
	return s
}

// WithService restricts to channels owned by the given service.
func (s Selector) WithService(serviceID string) Selector {
	if s.serviceID != "" && s.serviceID != serviceID {
		s.conflict = true
		return s
	}
	s.serviceID = serviceID
	return s
}

// WithKind restricts to channels of the given kind.
func (s Selector) WithKind(kind taxonomy.Kind) Selector {
	if s.kind != "" && s.kind != kind {
		s.conflict = true
		return s
	}
	s.kind = kind
	return s
}

// WithRole restricts to channels exposing the given role.
func (s Selector) WithRole(role channel.Role) Selector {
	if s.role != "" && s.role != role {
		s.conflict = true
		return s
	}
	s.role = role
	return s
}

// WithTags restricts to channels carrying all the given tags.
func (s Selector) WithTags(tags ...string) Selector {
	s.tags = mergeTags(s.tags, tags)
	return s
}

// WithServiceTags restricts to channels whose owning service carries all
// the given tags.
func (s Selector) WithServiceTags(tags ...string) Selector {
	s.serviceTags = mergeTags(s.serviceTags, tags)
	return s
}

// And combines two selectors into one accepting only channels accepted
// by both.
func (s Selector) And(other Selector) Selector {
	out := s
	if other.id != "" {
		out = out.WithID(other.id)
	}
	if other.serviceID != "" {
		out = out.WithService(other.serviceID)
	}
	if other.kind != "" {
		out = out.WithKind(other.kind)
	}
	if other.role != "" {
		out = out.WithRole(other.role)
	}
	out = out.WithTags(other.tags...)
	out = out.WithServiceTags(other.serviceTags...)
	if other.conflict {
		out.conflict = true
	}
	return out
}

// matches evaluates the selector against one index entry.
// Caller holds the registry lock; service tags take the service's own
// read lock (lock order: registry before service).
func (s Selector) matches(e *entry) bool {
	if s.conflict {
		return false
	}
	if s.id != "" && s.id != e.ch.ID() {
		return false
	}
	if s.serviceID != "" && s.serviceID != e.svc.ID() {
		return false
	}
	if s.kind != "" && s.kind != e.ch.Kind() {
		return false
	}
	if s.role != "" && s.role != e.ch.Role() {
		return false
	}
	for _, tag := range s.tags {
		if _, ok := e.tags[tag]; !ok {
			return false
		}
	}
	if len(s.serviceTags) > 0 && !e.svc.hasTags(s.serviceTags) {
		return false
	}
	return true
}

// mergeTags appends the unique tags of add to base, preserving order.
func mergeTags(base, add []string) []string {
	if len(add) == 0 {
		return base
	}
	seen := make(map[string]struct{}, len(base))
	for _, t := range base {
		seen[t] = struct{}{}
	}
	out := append([]string(nil), base...)
	for _, t := range add {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
