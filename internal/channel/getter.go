package channel

import (
	"context"
	"fmt"
	"time"

	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// Getter describes a read-capable operation on a channel: the kind of
// value it produces, an optional constraint the produced value must
// satisfy, and an optional polling hint for poll-style mechanisms.
//
// A Getter is immutable once constructed. Inconsistent descriptors are
// rejected at construction, never at use.
type Getter struct {
	kind    taxonomy.Kind
	expects *taxonomy.Range
	poll    time.Duration
}

// NewGetter creates a getter descriptor for the given kind.
//
// expects may be nil (no constraint). A non-nil constraint whose kind
// differs from the getter's kind fails with ErrKindMismatch. A negative
// poll hint fails with ErrInvalidInterval; zero means "no hint".
func NewGetter(kind taxonomy.Kind, expects *taxonomy.Range, poll time.Duration) (*Getter, error) {
	if err := taxonomy.ValidateTag(kind); err != nil {
		return nil, err
	}
	if expects != nil && expects.Kind() != kind {
		return nil, fmt.Errorf("%w: getter kind %q, constraint kind %q",
			ErrKindMismatch, kind, expects.Kind())
	}
	if poll < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, poll)
	}
	return &Getter{kind: kind, expects: expects, poll: poll}, nil
}

// Kind returns the kind of value the getter produces.
func (g *Getter) Kind() taxonomy.Kind { return g.kind }

// Expects returns the declared value constraint, or nil if unconstrained.
func (g *Getter) Expects() *taxonomy.Range { return g.expects }

// PollInterval returns the polling hint, or zero if none was declared.
func (g *Getter) PollInterval() time.Duration { return g.poll }

// Read obtains a value through the mechanism and validates it against
// the descriptor.
//
// Adapters may misreport; this validation is the safety net. A value of
// the wrong kind is an adapter fault (ErrAdapter), a value of the right
// kind outside the constraint is ErrOutOfRange. Transport failures are
// normalised through AdapterError. Reads are side-effect-free and safe
// to retry.
func (g *Getter) Read(ctx context.Context, mech Mechanism) (taxonomy.Value, error) {
	v, err := mech.Read(ctx)
	if err != nil {
		return taxonomy.Value{}, AdapterError(err)
	}
	if v.Kind() != g.kind {
		return taxonomy.Value{}, fmt.Errorf("%w: reported kind %q, declared %q",
			ErrAdapter, v.Kind(), g.kind)
	}
	if g.expects != nil && !g.expects.Contains(v) {
		return taxonomy.Value{}, fmt.Errorf("%w: %s not in %s", ErrOutOfRange, v, g.expects)
	}
	return v, nil
}
