package registry

import "errors"

// Domain errors for the registry package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, registry.ErrChannelGone) {
//	    // terminal: no retry on this channel id can succeed
//	}
var (
	// ErrChannelGone is returned when invoking or removing a channel id
	// that is not (or no longer) in the registry. Terminal for that id.
	ErrChannelGone = errors.New("registry: channel gone")

	// ErrChannelExists is returned when adding a channel whose id is
	// already registered.
	ErrChannelExists = errors.New("registry: channel already exists")

	// ErrServiceNotFound is returned when a service id does not exist.
	ErrServiceNotFound = errors.New("registry: service not found")

	// ErrServiceExists is returned when registering a service with an id
	// that already exists.
	ErrServiceExists = errors.New("registry: service already exists")

	// ErrNotRegistered is returned when adding channels to a service that
	// has not been registered with a registry.
	ErrNotRegistered = errors.New("registry: service not registered")

	// ErrClosed is returned when operating on a registry after Close.
	ErrClosed = errors.New("registry: closed")
)
