package taxonomy

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestNewSetContainsBuiltins(t *testing.T) {
	s := NewSet()

	for _, k := range BuiltinKinds() {
		if !s.Known(k) {
			t.Errorf("Known(%q) = false, want true", k)
		}
	}
	if got, want := s.Len(), len(BuiltinKinds()); got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestSetRegister(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		wantErr error
	}{
		{
			name:    "valid new kind",
			kind:    "pollen_count",
			wantErr: nil,
		},
		{
			name:    "valid single segment",
			kind:    "vibration",
			wantErr: nil,
		},
		{
			name:    "collision with built-in",
			kind:    KindTemperature,
			wantErr: ErrDuplicateKind,
		},
		{
			name:    "empty tag",
			kind:    "",
			wantErr: ErrInvalidKind,
		},
		{
			name:    "uppercase tag",
			kind:    "PollenCount",
			wantErr: ErrInvalidKind,
		},
		{
			name:    "tag with spaces",
			kind:    "pollen count",
			wantErr: ErrInvalidKind,
		},
		{
			name:    "tag too long",
			kind:    Kind(strings.Repeat("a", maxKindLength+1)),
			wantErr: ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet()
			err := s.Register(tt.kind)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Register(%q) = %v, want nil", tt.kind, err)
				}
				if !s.Known(tt.kind) {
					t.Errorf("Known(%q) = false after Register", tt.kind)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register(%q) = %v, want %v", tt.kind, err, tt.wantErr)
			}
		})
	}
}

func TestSetRegisterTwice(t *testing.T) {
	s := NewSet()

	if err := s.Register("pollen_count"); err != nil {
		t.Fatalf("first Register() = %v", err)
	}
	if err := s.Register("pollen_count"); !errors.Is(err, ErrDuplicateKind) {
		t.Errorf("second Register() = %v, want ErrDuplicateKind", err)
	}
}

func TestSetValidate(t *testing.T) {
	s := NewSet()

	if err := s.Validate(KindOnOff); err != nil {
		t.Errorf("Validate(KindOnOff) = %v, want nil", err)
	}
	if err := s.Validate("made_up"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Validate(made_up) = %v, want ErrUnknownKind", err)
	}
}

func TestSetKindsSorted(t *testing.T) {
	s := NewSet()
	if err := s.Register("aardvark_count"); err != nil {
		t.Fatalf("Register() = %v", err)
	}

	kinds := s.Kinds()
	if len(kinds) != len(BuiltinKinds())+1 {
		t.Fatalf("Kinds() returned %d entries, want %d", len(kinds), len(BuiltinKinds())+1)
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Fatalf("Kinds() not sorted: %q before %q", kinds[i-1], kinds[i])
		}
	}
}

// Adapters register extension kinds from their own startup goroutines.
func TestSetConcurrentRegister(t *testing.T) {
	s := NewSet()

	var wg sync.WaitGroup
	const workers = 16
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			kind := Kind(fmt.Sprintf("extension_%d", n))
			if err := s.Register(kind); err != nil {
				t.Errorf("Register(%q) = %v", kind, err)
			}
			_ = s.Known(kind)
			_ = s.Kinds()
		}(i)
	}
	wg.Wait()

	if got, want := s.Len(), len(BuiltinKinds())+workers; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}
