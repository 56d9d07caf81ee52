package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

func TestNewSetter(t *testing.T) {
	tests := []struct {
		name    string
		kind    taxonomy.Kind
		accepts *taxonomy.Range
		wantErr error
	}{
		{
			name:    "unconstrained",
			kind:    taxonomy.KindOnOff,
			accepts: nil,
			wantErr: nil,
		},
		{
			name:    "with matching constraint",
			kind:    taxonomy.KindThresholdTemperature,
			accepts: thresholdRange(t, 5, 30),
			wantErr: nil,
		},
		{
			name:    "constraint kind differs",
			kind:    taxonomy.KindOnOff,
			accepts: thresholdRange(t, 5, 30),
			wantErr: ErrKindMismatch,
		},
		{
			name:    "malformed kind tag",
			kind:    "",
			accepts: nil,
			wantErr: taxonomy.ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSetter(tt.kind, tt.accepts, false)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewSetter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSetter() = %v", err)
			}
			if s.Kind() != tt.kind {
				t.Errorf("Kind() = %q, want %q", s.Kind(), tt.kind)
			}
		})
	}
}

func thresholdRange(t *testing.T, min, max float64) *taxonomy.Range {
	t.Helper()
	r, err := taxonomy.NewBetweenEq(
		taxonomy.ThresholdTemperature(min),
		taxonomy.ThresholdTemperature(max),
	)
	if err != nil {
		t.Fatalf("NewBetweenEq() = %v", err)
	}
	return r
}

func TestSetterWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("valid value reaches the mechanism", func(t *testing.T) {
		mech := &stubMechanism{}
		s := mustSetter(t, taxonomy.KindThresholdTemperature, thresholdRange(t, 5, 30))

		if err := s.Write(ctx, mech, taxonomy.ThresholdTemperature(21)); err != nil {
			t.Fatalf("Write() = %v", err)
		}
		if _, writes := mech.counts(); writes != 1 {
			t.Errorf("mechanism writes = %d, want 1", writes)
		}
		if !mech.last.Equal(taxonomy.ThresholdTemperature(21)) {
			t.Errorf("mechanism received %s, want threshold_temperature=21", mech.last)
		}
	})

	t.Run("out-of-constraint value never reaches the mechanism", func(t *testing.T) {
		mech := &stubMechanism{}
		s := mustSetter(t, taxonomy.KindThresholdTemperature, thresholdRange(t, 5, 30))

		err := s.Write(ctx, mech, taxonomy.ThresholdTemperature(95))
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("Write() = %v, want ErrInvalidValue", err)
		}
		if _, writes := mech.counts(); writes != 0 {
			t.Errorf("mechanism writes = %d, want 0", writes)
		}
	})

	t.Run("wrong-kind value never reaches the mechanism", func(t *testing.T) {
		mech := &stubMechanism{}
		s := mustSetter(t, taxonomy.KindOnOff, nil)

		err := s.Write(ctx, mech, taxonomy.Temperature(21))
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("Write() = %v, want ErrInvalidValue", err)
		}
		if _, writes := mech.counts(); writes != 0 {
			t.Errorf("mechanism writes = %d, want 0", writes)
		}
	})

	t.Run("transport failure wrapped as adapter error", func(t *testing.T) {
		mech := &stubMechanism{writeErr: errors.New("device offline")}
		s := mustSetter(t, taxonomy.KindOnOff, nil)

		if err := s.Write(ctx, mech, taxonomy.OnOff(true)); !errors.Is(err, ErrAdapter) {
			t.Errorf("Write() = %v, want ErrAdapter", err)
		}
	})

	t.Run("adapter timeout reported as timeout", func(t *testing.T) {
		mech := &stubMechanism{writeErr: ErrTimeout}
		s := mustSetter(t, taxonomy.KindOnOff, nil)

		err := s.Write(ctx, mech, taxonomy.OnOff(true))
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("Write() = %v, want ErrTimeout", err)
		}
	})
}

func TestAdapterError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"plain error becomes adapter error", errors.New("boom"), ErrAdapter},
		{"deadline becomes timeout", context.DeadlineExceeded, ErrTimeout},
		{"tagged timeout stays timeout", ErrTimeout, ErrTimeout},
		{"tagged adapter error not double wrapped", ErrAdapter, ErrAdapter},
		{"cancellation passes through", context.Canceled, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdapterError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Errorf("AdapterError(nil) = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("AdapterError() = %v, want %v", got, tt.want)
			}
		})
	}
}
