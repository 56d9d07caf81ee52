package clock

import (
	"context"
	"time"

	"github.com/ashdown-labs/larkhub-core/internal/channel"
	"github.com/ashdown-labs/larkhub-core/internal/registry"
	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// Stable ids so selectors and persisted tags survive restarts.
const (
	ServiceID          = "larkhub-clock"
	AbsoluteChannelID  = "larkhub-clock-absolute"
	TimeOfDayChannelID = "larkhub-clock-timeofday"
)

// Adapter owns the clock service. The time source is injectable for
// tests; production callers pass nil and get time.Now.
type Adapter struct {
	now func() time.Time
	svc *registry.Service
}

// New creates an adapter reading from the given time source.
func New(now func() time.Time) *Adapter {
	if now == nil {
		now = time.Now
	}
	return &Adapter{now: now}
}

// Install registers the clock service and its two getter channels:
// absolute wall-clock time and duration since local midnight.
func (a *Adapter) Install(ctx context.Context, reg *registry.Registry) error {
	svc, err := registry.NewService(ServiceID, "Gateway Clock", registry.Info{
		Vendor: "larkhub",
		Model:  "clock",
		Tags:   []string{"builtin"},
	})
	if err != nil {
		return err
	}
	if err := reg.Register(ctx, svc); err != nil {
		return err
	}

	absolute, err := buildChannel(AbsoluteChannelID, "current time",
		taxonomy.KindCurrentTime, &mechanism{now: a.now, timeOfDay: false})
	if err != nil {
		return err
	}
	if err := svc.AddChannel(ctx, absolute); err != nil {
		return err
	}

	timeOfDay, err := buildChannel(TimeOfDayChannelID, "time of day",
		taxonomy.KindCurrentTimeOfDay, &mechanism{now: a.now, timeOfDay: true})
	if err != nil {
		return err
	}
	if err := svc.AddChannel(ctx, timeOfDay); err != nil {
		return err
	}

	a.svc = svc
	return nil
}

// Uninstall deregisters the clock service.
func (a *Adapter) Uninstall(ctx context.Context, reg *registry.Registry) error {
	if a.svc == nil {
		return nil
	}
	err := reg.Deregister(ctx, a.svc.ID())
	a.svc = nil
	return err
}

func buildChannel(id, name string, kind taxonomy.Kind, mech channel.Mechanism) (*channel.Channel, error) {
	g, err := channel.NewGetter(kind, nil, time.Second)
	if err != nil {
		return nil, err
	}
	return channel.NewGetterChannel(id, name, kind, g, mech)
}

// mechanism answers reads from the time source. Writes are rejected at
// the channel layer; the mechanism never sees one.
type mechanism struct {
	now       func() time.Time
	timeOfDay bool
}

func (m *mechanism) Read(_ context.Context) (taxonomy.Value, error) {
	t := m.now()
	if m.timeOfDay {
		return taxonomy.TimeOfDay(sinceMidnight(t)), nil
	}
	return taxonomy.CurrentTime(t), nil
}

func (m *mechanism) Write(_ context.Context, _ taxonomy.Value) error {
	return channel.ErrWrongRole
}

func (m *mechanism) Info() channel.MechanismInfo {
	return channel.MechanismInfo{
		Transport:  "clock",
		ReadStyle:  channel.ReadPoll,
		WriteStyle: channel.WriteNone,
	}
}

// sinceMidnight returns the duration since local midnight, using the
// timestamp's own location.
func sinceMidnight(t time.Time) time.Duration {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return t.Sub(midnight)
}
