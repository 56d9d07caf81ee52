package mqttbridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ashdown-labs/larkhub-core/internal/channel"
	"github.com/ashdown-labs/larkhub-core/internal/registry"
	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// Bridge installs bridged devices into the registry and owns their
// broker subscriptions.
type Bridge struct {
	broker Broker
	reg    *registry.Registry
	qos    byte
	logger registry.Logger

	mu         sync.Mutex
	serviceIDs []string
	mechanisms []*Mechanism
}

// New creates a bridge publishing and subscribing at the given QoS.
func New(broker Broker, reg *registry.Registry, qos byte) *Bridge {
	return &Bridge{
		broker: broker,
		reg:    reg,
		qos:    qos,
		logger: noopLogger{},
	}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// SetLogger installs a logger. Must be called before Install.
func (b *Bridge) SetLogger(l registry.Logger) {
	if l != nil {
		b.logger = l
	}
}

// Install registers one service per declared device and one channel per
// declared channel. A failure rolls back the device being installed and
// stops; devices installed earlier stay registered.
func (b *Bridge) Install(ctx context.Context, defs *DevicesFile) error {
	for _, def := range defs.Devices {
		if err := b.installDevice(ctx, def); err != nil {
			return fmt.Errorf("mqttbridge: installing device %q: %w", def.ID, err)
		}
		b.logger.Info("bridged device installed",
			"device_id", def.ID, "channels", len(def.Channels))
	}
	return nil
}

func (b *Bridge) installDevice(ctx context.Context, def DeviceDef) error {
	svc, err := registry.NewService(def.ID, def.Name, registry.Info{
		Vendor: def.Vendor,
		Model:  def.Model,
		Tags:   def.Tags,
	})
	if err != nil {
		return err
	}
	if err := b.reg.Register(ctx, svc); err != nil {
		return err
	}

	var installed []*Mechanism
	rollback := func() {
		for _, m := range installed {
			_ = m.close()
		}
		_ = b.reg.Deregister(ctx, svc.ID())
	}

	for _, chDef := range def.Channels {
		mech, err := newMechanism(b.broker, def.ID, chDef.Slug, b.qos)
		if err != nil {
			rollback()
			return err
		}

		c, err := buildBridgedChannel(def.ID, chDef, mech)
		if err != nil {
			_ = mech.close()
			rollback()
			return err
		}
		if err := svc.AddChannel(ctx, c); err != nil {
			_ = mech.close()
			rollback()
			return err
		}
		installed = append(installed, mech)
	}

	b.mu.Lock()
	b.serviceIDs = append(b.serviceIDs, svc.ID())
	b.mechanisms = append(b.mechanisms, installed...)
	b.mu.Unlock()
	return nil
}

// buildBridgedChannel constructs the typed channel for one definition.
// Channel ids are deterministic (device id plus slug) so selectors and
// persisted tags survive restarts.
func buildBridgedChannel(deviceID string, def ChannelDef, mech channel.Mechanism) (*channel.Channel, error) {
	kind := taxonomy.Kind(def.Kind)
	id := deviceID + "." + def.Slug
	name := def.Slug

	rng, err := def.rangeFor()
	if err != nil {
		return nil, err
	}

	if def.Role == "setter" {
		s, err := channel.NewSetter(kind, rng, def.Idempotent)
		if err != nil {
			return nil, err
		}
		return channel.NewSetterChannel(id, name, kind, s, mech)
	}

	// Push transport: the poll interval only hints how stale a cached
	// reading may be, it does not drive a poller.
	g, err := channel.NewGetter(kind, rng, time.Minute)
	if err != nil {
		return nil, err
	}
	return channel.NewGetterChannel(id, name, kind, g, mech)
}

// Close deregisters all installed devices and drops their broker
// subscriptions.
func (b *Bridge) Close(ctx context.Context) error {
	b.mu.Lock()
	services := b.serviceIDs
	mechanisms := b.mechanisms
	b.serviceIDs = nil
	b.mechanisms = nil
	b.mu.Unlock()

	var firstErr error
	for _, id := range services {
		if err := b.reg.Deregister(ctx, id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, m := range mechanisms {
		if err := m.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
