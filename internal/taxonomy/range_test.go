package taxonomy

import (
	"errors"
	"testing"
	"time"
)

func TestRangeConstruction(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*Range, error)
		wantErr error
	}{
		{
			name:    "leq temperature",
			build:   func() (*Range, error) { return NewLeq(Temperature(30)) },
			wantErr: nil,
		},
		{
			name:    "geq humidity",
			build:   func() (*Range, error) { return NewGeq(Humidity(10)) },
			wantErr: nil,
		},
		{
			name:    "between valid",
			build:   func() (*Range, error) { return NewBetweenEq(Temperature(15), Temperature(30)) },
			wantErr: nil,
		},
		{
			name:    "between single point",
			build:   func() (*Range, error) { return NewBetweenEq(Temperature(20), Temperature(20)) },
			wantErr: nil,
		},
		{
			name:    "between empty interval",
			build:   func() (*Range, error) { return NewBetweenEq(Temperature(30), Temperature(15)) },
			wantErr: ErrInvalidRange,
		},
		{
			name:    "between mixed kinds",
			build:   func() (*Range, error) { return NewBetweenEq(Temperature(15), Humidity(30)) },
			wantErr: ErrInvalidRange,
		},
		{
			name:    "leq on unordered kind",
			build:   func() (*Range, error) { return NewLeq(ColorValue(Color{})) },
			wantErr: ErrInvalidRange,
		},
		{
			name:    "leq on zero value",
			build:   func() (*Range, error) { return NewLeq(Value{}) },
			wantErr: ErrInvalidRange,
		},
		{
			name:    "eq on color",
			build:   func() (*Range, error) { return NewEq(ColorValue(Color{R: 255})) },
			wantErr: nil,
		},
		{
			name:    "eq on zero value",
			build:   func() (*Range, error) { return NewEq(Value{}) },
			wantErr: ErrInvalidRange,
		},
		{
			name:    "out_of_strict valid",
			build:   func() (*Range, error) { return NewOutOfStrict(Temperature(0), Temperature(40)) },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.build()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if r == nil {
				t.Fatal("range is nil without error")
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	between, err := NewBetweenEq(Temperature(15), Temperature(30))
	if err != nil {
		t.Fatalf("NewBetweenEq() = %v", err)
	}
	leq, err := NewLeq(TimeOfDay(12 * time.Hour))
	if err != nil {
		t.Fatalf("NewLeq() = %v", err)
	}
	geq, err := NewGeq(Luminosity(100))
	if err != nil {
		t.Fatalf("NewGeq() = %v", err)
	}
	outside, err := NewOutOfStrict(Temperature(0), Temperature(40))
	if err != nil {
		t.Fatalf("NewOutOfStrict() = %v", err)
	}
	eqColor, err := NewEq(ColorValue(Color{R: 255}))
	if err != nil {
		t.Fatalf("NewEq() = %v", err)
	}

	tests := []struct {
		name string
		r    *Range
		v    Value
		want bool
	}{
		{"between inside", between, Temperature(21.5), true},
		{"between at lower bound", between, Temperature(15), true},
		{"between at upper bound", between, Temperature(30), true},
		{"between below", between, Temperature(14.9), false},
		{"between above", between, Temperature(30.1), false},
		{"between wrong kind", between, Humidity(20), false},
		{"leq inside", leq, TimeOfDay(8 * time.Hour), true},
		{"leq outside", leq, TimeOfDay(13 * time.Hour), false},
		{"geq inside", geq, Luminosity(250), true},
		{"geq outside", geq, Luminosity(50), false},
		{"out_of_strict below", outside, Temperature(-5), true},
		{"out_of_strict above", outside, Temperature(45), true},
		{"out_of_strict within", outside, Temperature(20), false},
		{"out_of_strict at bound", outside, Temperature(0), false},
		{"eq color match", eqColor, ColorValue(Color{R: 255}), true},
		{"eq color mismatch", eqColor, ColorValue(Color{R: 254}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.v); got != tt.want {
				t.Errorf("Contains(%s) = %t, want %t", tt.v, got, tt.want)
			}
		})
	}
}

func TestRangeKind(t *testing.T) {
	r, err := NewLeq(Temperature(30))
	if err != nil {
		t.Fatalf("NewLeq() = %v", err)
	}
	if got := r.Kind(); got != KindTemperature {
		t.Errorf("Kind() = %q, want %q", got, KindTemperature)
	}

	r, err = NewGeq(Humidity(10))
	if err != nil {
		t.Fatalf("NewGeq() = %v", err)
	}
	if got := r.Kind(); got != KindHumidity {
		t.Errorf("Kind() = %q, want %q", got, KindHumidity)
	}
}
