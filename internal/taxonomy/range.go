package taxonomy

import "fmt"

// rangeOp identifies the comparison shape of a Range.
type rangeOp uint8

const (
	opLeq rangeOp = iota
	opGeq
	opBetweenEq
	opOutOfStrict
	opEq
)

// Range is a constraint over values of one kind.
//
// A Range is built through one of the New* constructors, which reject
// internally inconsistent constraints (mixed kinds, empty intervals,
// bounds on unordered kinds) so that a Range held by a getter or setter
// descriptor is always usable. Ranges are immutable.
type Range struct {
	op rangeOp
	lo Value // bound for Geq/Eq, lower bound for intervals
	hi Value // bound for Leq, upper bound for intervals
}

// NewLeq accepts any value v such that v <= max.
func NewLeq(max Value) (*Range, error) {
	if err := requireOrdered(max); err != nil {
		return nil, err
	}
	return &Range{op: opLeq, hi: max}, nil
}

// NewGeq accepts any value v such that v >= min.
func NewGeq(min Value) (*Range, error) {
	if err := requireOrdered(min); err != nil {
		return nil, err
	}
	return &Range{op: opGeq, lo: min}, nil
}

// NewBetweenEq accepts any value v such that min <= v <= max.
// An interval with max < min is empty and fails construction.
func NewBetweenEq(min, max Value) (*Range, error) {
	if err := requireInterval(min, max); err != nil {
		return nil, err
	}
	return &Range{op: opBetweenEq, lo: min, hi: max}, nil
}

// NewOutOfStrict accepts any value v such that v < min or max < v.
func NewOutOfStrict(min, max Value) (*Range, error) {
	if err := requireInterval(min, max); err != nil {
		return nil, err
	}
	return &Range{op: opOutOfStrict, lo: min, hi: max}, nil
}

// NewEq accepts only values equal to want. Unlike the interval
// constructors, Eq works for unordered kinds (colour, markers).
func NewEq(want Value) (*Range, error) {
	if want.IsZero() {
		return nil, fmt.Errorf("%w: zero value", ErrInvalidRange)
	}
	return &Range{op: opEq, lo: want}, nil
}

// Kind returns the kind of value the range constrains.
func (r *Range) Kind() Kind {
	if r.op == opLeq {
		return r.hi.kind
	}
	return r.lo.kind
}

// Contains reports whether the value is accepted by the range.
// A value of a different kind is never accepted.
func (r *Range) Contains(v Value) bool {
	if v.Kind() != r.Kind() {
		return false
	}
	switch r.op {
	case opLeq:
		c, err := v.Compare(r.hi)
		return err == nil && c <= 0
	case opGeq:
		c, err := v.Compare(r.lo)
		return err == nil && c >= 0
	case opBetweenEq:
		lo, err := v.Compare(r.lo)
		if err != nil || lo < 0 {
			return false
		}
		hi, err := v.Compare(r.hi)
		return err == nil && hi <= 0
	case opOutOfStrict:
		lo, err := v.Compare(r.lo)
		if err != nil {
			return false
		}
		if lo < 0 {
			return true
		}
		hi, err := v.Compare(r.hi)
		return err == nil && hi > 0
	case opEq:
		return v.Equal(r.lo)
	}
	return false
}

// String renders the range for logs and error messages.
func (r *Range) String() string {
	switch r.op {
	case opLeq:
		return fmt.Sprintf("<= %s", r.hi)
	case opGeq:
		return fmt.Sprintf(">= %s", r.lo)
	case opBetweenEq:
		return fmt.Sprintf("[%s, %s]", r.lo, r.hi)
	case opOutOfStrict:
		return fmt.Sprintf("outside (%s, %s)", r.lo, r.hi)
	case opEq:
		return fmt.Sprintf("== %s", r.lo)
	}
	return "<invalid range>"
}

// requireOrdered rejects bounds that cannot participate in an ordered
// comparison (zero values, unordered kinds).
func requireOrdered(v Value) error {
	if v.IsZero() {
		return fmt.Errorf("%w: zero bound", ErrInvalidRange)
	}
	if _, err := v.Compare(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return nil
}

// requireInterval rejects mixed-kind or empty intervals.
func requireInterval(min, max Value) error {
	if err := requireOrdered(min); err != nil {
		return err
	}
	if min.Kind() != max.Kind() {
		return fmt.Errorf("%w: bounds mix kinds %q and %q", ErrInvalidRange, min.Kind(), max.Kind())
	}
	c, err := min.Compare(max)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if c > 0 {
		return fmt.Errorf("%w: empty interval (min > max)", ErrInvalidRange)
	}
	return nil
}
