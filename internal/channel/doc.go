// Package channel defines the unit of addressable device capability in
// Larkhub Core.
//
// A Channel binds together one role (getter or setter), one taxonomy
// kind, one adapter-supplied Mechanism, and identity metadata. It is the
// atomic thing application code discovers through the registry and
// invokes. A device that both reads and writes the same quantity is
// modelled as two channels.
//
// The single most important correctness check in the system lives here:
// a channel can only be constructed when its operation descriptor's kind
// equals the channel's declared kind. Every downstream consumer trusts
// Channel.Kind() without re-validating, so no construction path is
// allowed to violate it.
//
// # Key Types
//
//   - Mechanism: adapter-implemented transport capability (read/write)
//   - Getter / Setter: immutable, constraint-carrying operation descriptors
//   - Channel: identity + kind + role + mechanism, constructed via
//     NewGetterChannel / NewSetterChannel
//
// # Invocation path
//
// Channel.Read and Channel.Write always go through the descriptor's
// validated path: setter constraints are checked before the mechanism is
// ever invoked (ErrInvalidValue), getter results are checked after the
// mechanism returns (ErrOutOfRange). Transport failures surface as
// ErrAdapter or ErrTimeout, both retryable by the caller.
package channel
