package channel

import (
	"context"
	"fmt"

	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// Setter describes a write-capable operation on a channel: the kind of
// value it accepts, an optional constraint written values must satisfy,
// and whether writes are idempotent. Idempotence is documentation the
// adapter provides for retrying layers; the core itself never retries.
//
// A Setter is immutable once constructed.
type Setter struct {
	kind       taxonomy.Kind
	accepts    *taxonomy.Range
	idempotent bool
}

// NewSetter creates a setter descriptor for the given kind.
//
// accepts may be nil (no constraint). A non-nil constraint whose kind
// differs from the setter's kind fails with ErrKindMismatch.
func NewSetter(kind taxonomy.Kind, accepts *taxonomy.Range, idempotent bool) (*Setter, error) {
	if err := taxonomy.ValidateTag(kind); err != nil {
		return nil, err
	}
	if accepts != nil && accepts.Kind() != kind {
		return nil, fmt.Errorf("%w: setter kind %q, constraint kind %q",
			ErrKindMismatch, kind, accepts.Kind())
	}
	return &Setter{kind: kind, accepts: accepts, idempotent: idempotent}, nil
}

// Kind returns the kind of value the setter accepts.
func (s *Setter) Kind() taxonomy.Kind { return s.kind }

// Accepts returns the declared value constraint, or nil if unconstrained.
func (s *Setter) Accepts() *taxonomy.Range { return s.accepts }

// Idempotent reports whether the adapter documents writes as idempotent.
func (s *Setter) Idempotent() bool { return s.idempotent }

// Write validates the value against the descriptor, then delivers it
// through the mechanism.
//
// Validation happens first: a value of the wrong kind or outside the
// declared constraint fails with ErrInvalidValue and the mechanism is
// never invoked, so no out-of-contract value ever reaches a device.
// Transport failures are normalised through AdapterError.
func (s *Setter) Write(ctx context.Context, mech Mechanism, v taxonomy.Value) error {
	if v.Kind() != s.kind {
		return fmt.Errorf("%w: kind %q, setter accepts %q", ErrInvalidValue, v.Kind(), s.kind)
	}
	if s.accepts != nil && !s.accepts.Contains(v) {
		return fmt.Errorf("%w: %s not in %s", ErrInvalidValue, v, s.accepts)
	}
	if err := mech.Write(ctx, v); err != nil {
		return AdapterError(err)
	}
	return nil
}
