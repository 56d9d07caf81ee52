package taxonomy

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// Kind identifies the semantic type of data a channel carries.
// Matching is by tag identity, never by structural shape: two kinds are
// the same if and only if their tags are equal.
type Kind string

// Built-in kinds. Adapter packages may grow the set at startup through
// Set.Register; the built-ins are always present.
const (
	// KindReady indicates a service has finished initialising.
	KindReady Kind = "ready"

	// KindOnOff carries a binary on/off state (lights, switches, sockets).
	KindOnOff Kind = "on_off"

	// KindOpenClosed carries a binary open/closed state (doors, windows).
	KindOpenClosed Kind = "open_closed"

	// KindDoorLocked carries a binary locked/unlocked state.
	KindDoorLocked Kind = "door_locked"

	// KindMotionDetected carries a binary motion/no-motion state.
	KindMotionDetected Kind = "motion_detected"

	// KindCurrentTime carries an absolute wall-clock timestamp.
	KindCurrentTime Kind = "current_time"

	// KindCurrentTimeOfDay carries a duration since local midnight.
	KindCurrentTimeOfDay Kind = "current_time_of_day"

	// KindRemainingTime carries a countdown duration (timers, ovens).
	KindRemainingTime Kind = "remaining_time"

	// KindTemperature carries a temperature reading in degrees Celsius.
	KindTemperature Kind = "temperature"

	// KindThresholdTemperature carries a temperature setpoint in degrees
	// Celsius (thermostats).
	KindThresholdTemperature Kind = "threshold_temperature"

	// KindHumidity carries relative humidity as a percentage.
	KindHumidity Kind = "humidity"

	// KindLuminosity carries a light level in lux.
	KindLuminosity Kind = "luminosity"

	// KindColor carries an RGB colour.
	KindColor Kind = "color"
)

// BuiltinKinds returns all kinds known without any extension registration.
func BuiltinKinds() []Kind {
	return []Kind{
		KindReady, KindOnOff, KindOpenClosed, KindDoorLocked,
		KindMotionDetected, KindCurrentTime, KindCurrentTimeOfDay,
		KindRemainingTime, KindTemperature, KindThresholdTemperature,
		KindHumidity, KindLuminosity, KindColor,
	}
}

// Kind tags follow the same convention as the built-ins: lowercase
// alphanumeric segments separated by underscores.
const kindPattern = `^[a-z0-9]+(?:_[a-z0-9]+)*$`

const maxKindLength = 64

var kindRegex = regexp.MustCompile(kindPattern)

// ValidateTag checks that a kind tag is well-formed. It does not check
// membership in any Set.
func ValidateTag(k Kind) error {
	if k == "" {
		return fmt.Errorf("%w: tag cannot be empty", ErrInvalidKind)
	}
	if len(k) > maxKindLength {
		return fmt.Errorf("%w: tag exceeds %d characters", ErrInvalidKind, maxKindLength)
	}
	if !kindRegex.MatchString(string(k)) {
		return fmt.Errorf("%w: %q must be lowercase alphanumeric with underscores", ErrInvalidKind, k)
	}
	return nil
}

// Set is the process-scoped collection of recognised kinds.
//
// A Set is created once at gateway startup, pre-seeded with the built-in
// kinds, and passed by reference to the registry and to adapter packages.
// Adapters that introduce new data semantics call Register before
// publishing any channel of that kind.
//
// All methods are safe for concurrent use.
type Set struct {
	mu    sync.RWMutex
	kinds map[Kind]struct{}
}

// NewSet creates a Set containing the built-in kinds.
func NewSet() *Set {
	builtins := BuiltinKinds()
	s := &Set{kinds: make(map[Kind]struct{}, len(builtins))}
	for _, k := range builtins {
		s.kinds[k] = struct{}{}
	}
	return s
}

// Register adds a new kind tag to the set.
// Returns ErrInvalidKind for a malformed tag and ErrDuplicateKind if the
// tag collides with an existing one (built-in or registered).
func (s *Set) Register(k Kind) error {
	if err := ValidateTag(k); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.kinds[k]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, k)
	}
	s.kinds[k] = struct{}{}
	return nil
}

// Known reports whether the kind tag is in the set.
func (s *Set) Known(k Kind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.kinds[k]
	return ok
}

// Validate returns ErrUnknownKind if the kind tag is not in the set.
func (s *Set) Validate(k Kind) error {
	if !s.Known(k) {
		return fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return nil
}

// Kinds returns a sorted snapshot of all kinds in the set.
func (s *Set) Kinds() []Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kinds := make([]Kind, 0, len(s.kinds))
	for k := range s.kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Len returns the number of kinds in the set.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.kinds)
}
