package channel

import "errors"

// Domain errors for the channel package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, channel.ErrOutOfRange) {
//	    // adapter returned a value outside the declared constraint
//	}
var (
	// ErrKindMismatch is returned when a channel's declared kind and its
	// operation descriptor's kind differ at construction time.
	ErrKindMismatch = errors.New("channel: kind mismatch")

	// ErrOutOfRange is returned when a getter's mechanism reports a value
	// outside the declared constraint.
	ErrOutOfRange = errors.New("channel: value out of range")

	// ErrInvalidValue is returned when a value written to a setter violates
	// the declared constraint. The mechanism is never invoked.
	ErrInvalidValue = errors.New("channel: invalid value")

	// ErrAdapter is returned when the device adapter fails to perform the
	// transport read/write, including encode/decode failures. Retryable.
	ErrAdapter = errors.New("channel: adapter failure")

	// ErrTimeout is returned when the adapter reports a timeout. Retryable.
	ErrTimeout = errors.New("channel: adapter timeout")

	// ErrWrongRole is returned when a read is invoked on a setter channel
	// or a write on a getter channel.
	ErrWrongRole = errors.New("channel: wrong role")

	// ErrNilMechanism is returned when a channel is constructed without a
	// mechanism instance.
	ErrNilMechanism = errors.New("channel: nil mechanism")

	// ErrInvalidName is returned when a channel name is empty or too long.
	ErrInvalidName = errors.New("channel: invalid name")

	// ErrInvalidInterval is returned when a getter's polling hint is negative.
	ErrInvalidInterval = errors.New("channel: invalid poll interval")

	// ErrAlreadyBound is returned when binding a channel to a service it
	// does not already belong to after a first binding.
	ErrAlreadyBound = errors.New("channel: already bound to a service")
)
