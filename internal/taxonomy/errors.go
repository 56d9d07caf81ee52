package taxonomy

import "errors"

// Domain errors for the taxonomy package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, taxonomy.ErrUnknownKind) {
//	    // handle unrecognised kind
//	}
var (
	// ErrUnknownKind is returned when a kind tag is not in the recognised set.
	ErrUnknownKind = errors.New("taxonomy: unknown kind")

	// ErrDuplicateKind is returned when registering a kind tag that collides
	// with an existing one.
	ErrDuplicateKind = errors.New("taxonomy: duplicate kind")

	// ErrInvalidKind is returned when a kind tag is empty or malformed.
	ErrInvalidKind = errors.New("taxonomy: invalid kind")

	// ErrKindConflict is returned when two values of different kinds are
	// compared against each other.
	ErrKindConflict = errors.New("taxonomy: kind conflict")

	// ErrNotOrdered is returned when an ordered comparison is attempted on
	// a kind whose values have no defined ordering (e.g. colour).
	ErrNotOrdered = errors.New("taxonomy: kind has no ordering")

	// ErrInvalidRange is returned when a range constraint is internally
	// inconsistent (mixed kinds, or an empty interval).
	ErrInvalidRange = errors.New("taxonomy: invalid range")
)
