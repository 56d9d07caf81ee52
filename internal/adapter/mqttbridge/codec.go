package mqttbridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// wireValue is the JSON envelope exchanged with bridged devices.
// Exactly one payload field is set; which one depends on the channel
// kind's payload shape.
type wireValue struct {
	Kind       string     `json:"kind"`
	Bool       *bool      `json:"bool,omitempty"`
	Number     *float64   `json:"number,omitempty"`
	Time       *time.Time `json:"time,omitempty"`
	DurationMS *int64     `json:"duration_ms,omitempty"`
	Color      *wireColor `json:"color,omitempty"`
}

type wireColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// EncodeValue serializes a value into the bridge wire format.
func EncodeValue(v taxonomy.Value) ([]byte, error) {
	if v.IsZero() {
		return nil, fmt.Errorf("mqttbridge: cannot encode zero value")
	}

	w := wireValue{Kind: string(v.Kind())}
	switch {
	case hasBool(v):
		b, _ := v.AsBool()
		w.Bool = &b
	case hasNumber(v):
		n, _ := v.AsNumber()
		w.Number = &n
	case hasTime(v):
		t, _ := v.AsTime()
		utc := t.UTC()
		w.Time = &utc
	case hasDuration(v):
		d, _ := v.AsDuration()
		ms := d.Milliseconds()
		w.DurationMS = &ms
	case hasColor(v):
		c, _ := v.AsColor()
		w.Color = &wireColor{R: c.R, G: c.G, B: c.B}
	default:
		// Unit-shaped kinds carry no payload field.
	}

	return json.Marshal(w)
}

// DecodeValue parses a bridge wire payload into a typed value. The
// payload field present determines the value shape; a payload with no
// typed field decodes as a unit value of the declared kind.
func DecodeValue(payload []byte) (taxonomy.Value, error) {
	var w wireValue
	if err := json.Unmarshal(payload, &w); err != nil {
		return taxonomy.Value{}, fmt.Errorf("mqttbridge: decode payload: %w", err)
	}
	if w.Kind == "" {
		return taxonomy.Value{}, fmt.Errorf("mqttbridge: payload missing kind")
	}

	kind := taxonomy.Kind(w.Kind)
	switch {
	case w.Bool != nil:
		return taxonomy.Bool(kind, *w.Bool), nil
	case w.Number != nil:
		return taxonomy.Number(kind, *w.Number), nil
	case w.Time != nil:
		return taxonomy.Timestamp(kind, *w.Time), nil
	case w.DurationMS != nil:
		return taxonomy.Span(kind, time.Duration(*w.DurationMS)*time.Millisecond), nil
	case w.Color != nil:
		return taxonomy.RGB(kind, taxonomy.Color{R: w.Color.R, G: w.Color.G, B: w.Color.B}), nil
	default:
		return taxonomy.Unit(kind), nil
	}
}

func hasBool(v taxonomy.Value) bool {
	_, ok := v.AsBool()
	return ok
}

func hasNumber(v taxonomy.Value) bool {
	_, ok := v.AsNumber()
	return ok
}

func hasTime(v taxonomy.Value) bool {
	_, ok := v.AsTime()
	return ok
}

func hasDuration(v taxonomy.Value) bool {
	_, ok := v.AsDuration()
	return ok
}

func hasColor(v taxonomy.Value) bool {
	_, ok := v.AsColor()
	return ok
}
