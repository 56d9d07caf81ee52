package fake

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ashdown-labs/larkhub-core/internal/channel"
	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// ErrNoValue is returned by Read before any value has been set.
var ErrNoValue = errors.New("fake: no value set")

// Mechanism is a scriptable channel transport. The zero value is not
// usable; construct with New.
type Mechanism struct {
	mu        sync.Mutex
	value     taxonomy.Value
	hasValue  bool
	readErr   error
	writeErr  error
	delay     time.Duration
	reads     int
	writes    int
	lastWrite taxonomy.Value
	wroteOnce bool
}

// New returns an empty mechanism. Reads fail with ErrNoValue until
// SetValue or a Write supplies one.
func New() *Mechanism {
	return &Mechanism{}
}

// SetValue scripts the value the next reads return.
func (m *Mechanism) SetValue(v taxonomy.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = v
	m.hasValue = true
}

// FailReads makes every subsequent Read return err. Pass nil to clear.
func (m *Mechanism) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FailWrites makes every subsequent Write return err. Pass nil to
// clear.
func (m *Mechanism) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// SetDelay makes every invocation sleep for d before completing,
// honouring context cancellation.
func (m *Mechanism) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Reads returns the number of Read invocations so far.
func (m *Mechanism) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Writes returns the number of Write invocations so far.
func (m *Mechanism) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// LastWritten returns the most recently written value.
func (m *Mechanism) LastWritten() (taxonomy.Value, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastWrite, m.wroteOnce
}

// Read returns the scripted value.
func (m *Mechanism) Read(ctx context.Context) (taxonomy.Value, error) {
	m.mu.Lock()
	m.reads++
	v, ok := m.value, m.hasValue
	err := m.readErr
	delay := m.delay
	m.mu.Unlock()

	if err2 := wait(ctx, delay); err2 != nil {
		return taxonomy.Value{}, err2
	}
	if err != nil {
		return taxonomy.Value{}, err
	}
	if !ok {
		return taxonomy.Value{}, ErrNoValue
	}
	return v, nil
}

// Write stores the value so subsequent reads reflect it.
func (m *Mechanism) Write(ctx context.Context, v taxonomy.Value) error {
	m.mu.Lock()
	m.writes++
	err := m.writeErr
	delay := m.delay
	m.mu.Unlock()

	if err2 := wait(ctx, delay); err2 != nil {
		return err2
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.value = v
	m.hasValue = true
	m.lastWrite = v
	m.wroteOnce = true
	m.mu.Unlock()
	return nil
}

// Info describes the mechanism as a polling, acknowledged transport.
func (m *Mechanism) Info() channel.MechanismInfo {
	return channel.MechanismInfo{
		Transport:  "fake",
		ReadStyle:  channel.ReadPoll,
		WriteStyle: channel.WriteAcknowledged,
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
