// Package taxonomy defines the semantic vocabulary of Larkhub Core.
//
// Every channel in the system carries data of exactly one Kind, a tag
// identifying what the data means (temperature, open/closed, colour, and
// so on) independently of which device produced it or which protocol
// carried it. The rest of the gateway trusts these tags blindly: the
// matcher routes by kind, the rules engine compares by kind, and the
// client API renders by kind. Nothing downstream re-validates.
//
// # Key Types
//
//   - Kind: the semantic tag itself
//   - Set: the process-scoped collection of recognised kinds, growable
//     at startup by adapter packages
//   - Value: a typed datum tagged with its Kind
//   - Range: a value constraint (Leq, Geq, BetweenEq, OutOfStrict, Eq)
//
// # Usage
//
//	kinds := taxonomy.NewSet()
//	if err := kinds.Register("pollen_count"); err != nil {
//	    return err
//	}
//
//	v := taxonomy.Temperature(21.5)
//	r, _ := taxonomy.NewBetweenEq(taxonomy.Temperature(15), taxonomy.Temperature(30))
//	ok := r.Contains(v) // true
//
// # Thread Safety
//
// Set is safe for concurrent use. Value and Range are immutable after
// construction and freely shareable.
package taxonomy
