package taxonomy

import (
	"fmt"
	"time"
)

// Color is an RGB colour payload.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// payloadClass identifies which payload field of a Value is populated.
type payloadClass uint8

const (
	classUnit payloadClass = iota // no payload (e.g. ready)
	classBool
	classFloat
	classTime
	classDuration
	classColor
)

// Value is a typed datum tagged with its Kind.
//
// A Value is immutable. The payload representation is hidden; callers use
// the As* accessors, which report whether the value actually carries that
// payload shape. Equality and ordering never cross kinds: comparing a
// temperature against a humidity is an ErrKindConflict, not a coercion.
type Value struct {
	kind  Kind
	class payloadClass

	b bool
	f float64
	t time.Time
	d time.Duration
	c Color
}

// Generic constructors, used directly for extension kinds and by the
// built-in helpers below.

// Bool creates a boolean value of the given kind.
func Bool(kind Kind, v bool) Value {
	return Value{kind: kind, class: classBool, b: v}
}

// Number creates a numeric value of the given kind.
func Number(kind Kind, v float64) Value {
	return Value{kind: kind, class: classFloat, f: v}
}

// Timestamp creates an absolute-time value of the given kind.
func Timestamp(kind Kind, t time.Time) Value {
	return Value{kind: kind, class: classTime, t: t}
}

// Span creates a duration value of the given kind.
func Span(kind Kind, d time.Duration) Value {
	return Value{kind: kind, class: classDuration, d: d}
}

// Unit creates a payload-free value of the given kind.
func Unit(kind Kind) Value {
	return Value{kind: kind, class: classUnit}
}

// RGB creates a colour value of the given kind.
func RGB(kind Kind, c Color) Value {
	return Value{kind: kind, class: classColor, c: c}
}

// Built-in kind constructors.

// Ready creates the payload-free readiness marker.
func Ready() Value { return Unit(KindReady) }

// OnOff creates an on/off value. true means on.
func OnOff(on bool) Value { return Bool(KindOnOff, on) }

// OpenClosed creates an open/closed value. true means open.
func OpenClosed(open bool) Value { return Bool(KindOpenClosed, open) }

// DoorLocked creates a locked/unlocked value. true means locked.
func DoorLocked(locked bool) Value { return Bool(KindDoorLocked, locked) }

// MotionDetected creates a motion value. true means motion seen.
func MotionDetected(detected bool) Value { return Bool(KindMotionDetected, detected) }

// CurrentTime creates an absolute wall-clock value.
func CurrentTime(t time.Time) Value { return Timestamp(KindCurrentTime, t) }

// TimeOfDay creates a duration-since-local-midnight value.
func TimeOfDay(sinceMidnight time.Duration) Value {
	return Span(KindCurrentTimeOfDay, sinceMidnight)
}

// RemainingTime creates a countdown value.
func RemainingTime(d time.Duration) Value { return Span(KindRemainingTime, d) }

// Temperature creates a temperature value in degrees Celsius.
func Temperature(celsius float64) Value { return Number(KindTemperature, celsius) }

// ThresholdTemperature creates a temperature setpoint in degrees Celsius.
func ThresholdTemperature(celsius float64) Value {
	return Number(KindThresholdTemperature, celsius)
}

// Humidity creates a relative humidity value as a percentage.
func Humidity(percent float64) Value { return Number(KindHumidity, percent) }

// Luminosity creates a light level value in lux.
func Luminosity(lux float64) Value { return Number(KindLuminosity, lux) }

// ColorValue creates an RGB colour value of the built-in colour kind.
func ColorValue(c Color) Value { return RGB(KindColor, c) }

// Kind returns the semantic tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether the value is the uninitialised zero Value.
func (v Value) IsZero() bool { return v.kind == "" }

// AsBool returns the boolean payload, if the value carries one.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.class == classBool
}

// AsNumber returns the numeric payload, if the value carries one.
func (v Value) AsNumber() (float64, bool) {
	return v.f, v.class == classFloat
}

// AsTime returns the timestamp payload, if the value carries one.
func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.class == classTime
}

// AsDuration returns the duration payload, if the value carries one.
func (v Value) AsDuration() (time.Duration, bool) {
	return v.d, v.class == classDuration
}

// AsColor returns the colour payload, if the value carries one.
func (v Value) AsColor() (Color, bool) {
	return v.c, v.class == classColor
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.class != other.class {
		return false
	}
	switch v.class {
	case classUnit:
		return true
	case classBool:
		return v.b == other.b
	case classFloat:
		return v.f == other.f
	case classTime:
		return v.t.Equal(other.t)
	case classDuration:
		return v.d == other.d
	case classColor:
		return v.c == other.c
	}
	return false
}

// Compare orders two values of the same kind.
// Returns -1, 0, or 1. Values of different kinds fail with
// ErrKindConflict; kinds without a defined ordering (colour, payload-free
// markers) fail with ErrNotOrdered. Booleans order false before true.
func (v Value) Compare(other Value) (int, error) {
	if v.kind != other.kind {
		return 0, fmt.Errorf("%w: %q vs %q", ErrKindConflict, v.kind, other.kind)
	}
	if v.class != other.class {
		// Same tag but different payload shapes; an adapter misreported.
		return 0, fmt.Errorf("%w: %q carries mixed payload shapes", ErrKindConflict, v.kind)
	}

	switch v.class {
	case classBool:
		return cmpBool(v.b, other.b), nil
	case classFloat:
		return cmpFloat(v.f, other.f), nil
	case classTime:
		switch {
		case v.t.Before(other.t):
			return -1, nil
		case v.t.After(other.t):
			return 1, nil
		default:
			return 0, nil
		}
	case classDuration:
		return cmpFloat(float64(v.d), float64(other.d)), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrNotOrdered, v.kind)
	}
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.class {
	case classUnit:
		return string(v.kind)
	case classBool:
		return fmt.Sprintf("%s=%t", v.kind, v.b)
	case classFloat:
		return fmt.Sprintf("%s=%g", v.kind, v.f)
	case classTime:
		return fmt.Sprintf("%s=%s", v.kind, v.t.Format(time.RFC3339))
	case classDuration:
		return fmt.Sprintf("%s=%s", v.kind, v.d)
	case classColor:
		return fmt.Sprintf("%s=#%02x%02x%02x", v.kind, v.c.R, v.c.G, v.c.B)
	}
	return string(v.kind)
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
