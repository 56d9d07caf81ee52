package channel

import (
	"context"
	"errors"
	"fmt"

	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// ReadStyle describes how a mechanism obtains values from its device.
type ReadStyle string

// ReadStyle constants.
const (
	// ReadNone means the mechanism does not support reads.
	ReadNone ReadStyle = "none"

	// ReadPoll means each Read performs an on-demand query to the device.
	ReadPoll ReadStyle = "poll"

	// ReadPush means the device notifies on change and Read returns the
	// last pushed value.
	ReadPush ReadStyle = "push"

	// ReadHybrid means the mechanism caches pushes but can also query.
	ReadHybrid ReadStyle = "hybrid"
)

// WriteStyle describes how a mechanism delivers values to its device.
type WriteStyle string

// WriteStyle constants.
const (
	// WriteNone means the mechanism does not support writes.
	WriteNone WriteStyle = "none"

	// WriteFireAndForget means Write returns once the value is handed to
	// the transport, without device confirmation.
	WriteFireAndForget WriteStyle = "fire_and_forget"

	// WriteAcknowledged means Write waits for device confirmation.
	WriteAcknowledged WriteStyle = "acknowledged"
)

// MechanismInfo describes a mechanism's transport behaviour. It is
// metadata only; the registry and matcher never dispatch on it.
type MechanismInfo struct {
	Transport  string     `json:"transport"`
	ReadStyle  ReadStyle  `json:"read_style"`
	WriteStyle WriteStyle `json:"write_style"`
}

// Mechanism is the capability device adapters implement to perform the
// actual transport I/O for one channel. The mechanism owns the mapping
// between the gateway's typed values and the device's native encoding;
// any encode/decode failure must surface as an adapter error (wrap with
// AdapterError), never as a type mismatch.
//
// A mechanism instance belongs to exactly one channel. Both operations
// may block on device I/O; callers apply their own timeout through ctx.
// Abandoning an in-flight call must never leave the channel in a state
// where a later reader observes a partial write.
type Mechanism interface {
	// Read obtains the current value from the device.
	Read(ctx context.Context) (taxonomy.Value, error)

	// Write delivers a value to the device.
	Write(ctx context.Context, v taxonomy.Value) error

	// Info describes the transport behaviour of this mechanism.
	Info() MechanismInfo
}

// AdapterError wraps a device or transport failure so it surfaces in the
// channel error taxonomy as retryable. Context deadline expiry and
// errors already tagged ErrTimeout are reported as timeouts; everything
// else becomes ErrAdapter. A nil err returns nil.
func AdapterError(err error) error {
	if err == nil {
		return nil
	}
	// Caller-initiated abandonment is not an adapter fault.
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		if errors.Is(err, ErrTimeout) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, ErrAdapter) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrAdapter, err)
}
