package channel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// Role identifies which operation a channel exposes. A channel exposes
// exactly one role; a device needing both directions is two channels.
type Role string

// Role constants.
const (
	RoleGetter Role = "getter"
	RoleSetter Role = "setter"
)

const maxNameLength = 100

// Channel is the atomic unit of addressable device capability.
//
// It binds identity (stable id, human-readable name), a declared taxonomy
// kind, exactly one of {Getter, Setter}, and one adapter-supplied
// Mechanism. The service back-reference is weak: the owning Service can
// be looked up by id, but the Channel never reaches back into it.
//
// Invariant, enforced at construction: the operation descriptor's kind
// equals the channel's declared kind. Kind and role never change after
// creation, and ids are not recycled within a process lifetime.
type Channel struct {
	id   string
	name string
	kind taxonomy.Kind
	role Role

	getter *Getter
	setter *Setter
	mech   Mechanism

	// serviceID is stamped once when the owning service adopts the
	// channel. Guarded because adapters may build channels on one
	// goroutine and register them on another.
	serviceID string
	bindMu    sync.Mutex
}

// GenerateID creates a new unique channel or service id.
func GenerateID() string {
	return uuid.New().String()
}

// NewGetterChannel creates a read-role channel of the given kind.
//
// An empty id is replaced with a generated one. The descriptor's kind
// must equal kind, otherwise construction fails with ErrKindMismatch and
// no channel is created.
func NewGetterChannel(id, name string, kind taxonomy.Kind, g *Getter, mech Mechanism) (*Channel, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil getter descriptor", ErrKindMismatch)
	}
	if g.Kind() != kind {
		return nil, fmt.Errorf("%w: channel declares %q, getter carries %q",
			ErrKindMismatch, kind, g.Kind())
	}
	base, err := newChannel(id, name, kind, mech)
	if err != nil {
		return nil, err
	}
	base.role = RoleGetter
	base.getter = g
	return base, nil
}

// NewSetterChannel creates a write-role channel of the given kind.
//
// Mirror of NewGetterChannel; the same kind-match invariant applies.
func NewSetterChannel(id, name string, kind taxonomy.Kind, s *Setter, mech Mechanism) (*Channel, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil setter descriptor", ErrKindMismatch)
	}
	if s.Kind() != kind {
		return nil, fmt.Errorf("%w: channel declares %q, setter carries %q",
			ErrKindMismatch, kind, s.Kind())
	}
	base, err := newChannel(id, name, kind, mech)
	if err != nil {
		return nil, err
	}
	base.role = RoleSetter
	base.setter = s
	return base, nil
}

// newChannel validates the shared fields of both constructors.
func newChannel(id, name string, kind taxonomy.Kind, mech Mechanism) (*Channel, error) {
	if err := taxonomy.ValidateTag(kind); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if mech == nil {
		return nil, ErrNilMechanism
	}
	if id == "" {
		id = GenerateID()
	}
	return &Channel{id: id, name: name, kind: kind, mech: mech}, nil
}

// ValidateName checks that a channel name is non-empty and within limits.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	return nil
}

// ID returns the channel's stable identifier.
func (c *Channel) ID() string { return c.id }

// Name returns the channel's human-readable name.
func (c *Channel) Name() string { return c.name }

// Kind returns the declared taxonomy kind.
func (c *Channel) Kind() taxonomy.Kind { return c.kind }

// Role returns which of {getter, setter} the channel exposes.
func (c *Channel) Role() Role { return c.role }

// Getter returns the getter descriptor, or nil for setter channels.
func (c *Channel) Getter() *Getter { return c.getter }

// Setter returns the setter descriptor, or nil for getter channels.
func (c *Channel) Setter() *Setter { return c.setter }

// Info describes the transport behaviour of the channel's mechanism.
func (c *Channel) Info() MechanismInfo { return c.mech.Info() }

// ServiceID returns the owning service's id, or "" if not yet adopted.
func (c *Channel) ServiceID() string {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()
	return c.serviceID
}

// BindService stamps the owning service's id onto the channel. Called by
// the registry when a service adopts the channel; rebinding to a
// different service fails with ErrAlreadyBound.
func (c *Channel) BindService(serviceID string) error {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()

	if c.serviceID != "" && c.serviceID != serviceID {
		return fmt.Errorf("%w: bound to %q", ErrAlreadyBound, c.serviceID)
	}
	c.serviceID = serviceID
	return nil
}

// Read invokes the getter path. The call may block on device I/O;
// callers apply their own deadline through ctx.
func (c *Channel) Read(ctx context.Context) (taxonomy.Value, error) {
	if c.role != RoleGetter {
		return taxonomy.Value{}, fmt.Errorf("%w: read on %s channel %q", ErrWrongRole, c.role, c.id)
	}
	return c.getter.Read(ctx, c.mech)
}

// Write invokes the setter path. The call may block on device I/O;
// callers apply their own deadline through ctx.
func (c *Channel) Write(ctx context.Context, v taxonomy.Value) error {
	if c.role != RoleSetter {
		return fmt.Errorf("%w: write on %s channel %q", ErrWrongRole, c.role, c.id)
	}
	return c.setter.Write(ctx, c.mech, v)
}
