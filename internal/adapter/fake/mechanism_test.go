package fake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

func TestMechanismReadWrite(t *testing.T) {
	m := New()
	ctx := context.Background()

	if _, err := m.Read(ctx); !errors.Is(err, ErrNoValue) {
		t.Fatalf("Read before SetValue error = %v, want ErrNoValue", err)
	}

	m.SetValue(taxonomy.Temperature(21))
	v, err := m.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n, _ := v.AsNumber(); n != 21 {
		t.Fatalf("Read = %v, want 21", n)
	}

	if err := m.Write(ctx, taxonomy.Temperature(23)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, err = m.Read(ctx)
	if err != nil {
		t.Fatalf("Read after Write: %v", err)
	}
	if n, _ := v.AsNumber(); n != 23 {
		t.Fatalf("Read after Write = %v, want 23", n)
	}

	if m.Reads() != 3 || m.Writes() != 1 {
		t.Fatalf("counters = %d/%d, want 3/1", m.Reads(), m.Writes())
	}
	if last, ok := m.LastWritten(); !ok || !last.Equal(taxonomy.Temperature(23)) {
		t.Fatalf("LastWritten = %v/%v", last, ok)
	}
}

func TestMechanismScriptedFailures(t *testing.T) {
	m := New()
	ctx := context.Background()
	boom := errors.New("boom")

	m.SetValue(taxonomy.OnOff(true))
	m.FailReads(boom)
	if _, err := m.Read(ctx); !errors.Is(err, boom) {
		t.Fatalf("Read error = %v, want boom", err)
	}
	m.FailReads(nil)
	if _, err := m.Read(ctx); err != nil {
		t.Fatalf("Read after clearing failure: %v", err)
	}

	m.FailWrites(boom)
	if err := m.Write(ctx, taxonomy.OnOff(false)); !errors.Is(err, boom) {
		t.Fatalf("Write error = %v, want boom", err)
	}
	// A failed write must not change the stored value.
	v, err := m.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if on, _ := v.AsBool(); !on {
		t.Fatal("failed write mutated stored value")
	}
}

func TestMechanismDelayHonoursContext(t *testing.T) {
	m := New()
	m.SetValue(taxonomy.OnOff(true))
	m.SetDelay(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := m.Read(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Read error = %v, want DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("Read blocked %v past cancellation", elapsed)
	}
}
