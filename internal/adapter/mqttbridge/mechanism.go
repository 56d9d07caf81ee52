package mqttbridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/ashdown-labs/larkhub-core/internal/channel"
	"github.com/ashdown-labs/larkhub-core/internal/infrastructure/mqtt"
	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// Broker is the slice of the MQTT client the bridge needs. Satisfied
// by *mqtt.Client; tests substitute an in-memory implementation.
type Broker interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
}

// Mechanism is the transport for one bridged channel. It caches the
// device's latest state message and publishes commands.
//
// The cache makes reads local: the device pushes state changes, the
// gateway never polls it. A mechanism whose device has not reported
// since subscription answers reads with an adapter error.
type Mechanism struct {
	broker   Broker
	stateT   string
	commandT string
	qos      byte

	mu    sync.RWMutex
	last  taxonomy.Value
	seen  bool
	unsub bool
}

// newMechanism subscribes to the channel's state topic and returns the
// mechanism. The caller unsubscribes via close when tearing down.
func newMechanism(broker Broker, deviceID, slug string, qos byte) (*Mechanism, error) {
	topics := mqtt.Topics{}
	m := &Mechanism{
		broker:   broker,
		stateT:   topics.DeviceState(deviceID, slug),
		commandT: topics.DeviceCommand(deviceID, slug),
		qos:      qos,
	}
	if err := broker.Subscribe(m.stateT, qos, m.onState); err != nil {
		return nil, fmt.Errorf("mqttbridge: subscribe %s: %w", m.stateT, err)
	}
	return m, nil
}

// onState caches the most recent decodable state message. Malformed
// payloads are dropped; the previous reading stays valid.
func (m *Mechanism) onState(_ string, payload []byte) error {
	v, err := DecodeValue(payload)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.last = v
	m.seen = true
	m.mu.Unlock()
	return nil
}

// Read returns the cached state.
func (m *Mechanism) Read(_ context.Context) (taxonomy.Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.seen {
		return taxonomy.Value{}, fmt.Errorf("mqttbridge: no reading yet on %s", m.stateT)
	}
	return m.last, nil
}

// Write publishes the value to the command topic. Delivery is
// fire-and-forget beyond the broker handoff; the device reports the
// resulting state back on the state topic.
func (m *Mechanism) Write(_ context.Context, v taxonomy.Value) error {
	payload, err := EncodeValue(v)
	if err != nil {
		return err
	}
	if err := m.broker.Publish(m.commandT, payload, m.qos, false); err != nil {
		return fmt.Errorf("mqttbridge: publish %s: %w", m.commandT, err)
	}
	return nil
}

// Info describes the bridge as push-read, fire-and-forget-write.
func (m *Mechanism) Info() channel.MechanismInfo {
	return channel.MechanismInfo{
		Transport:  "mqtt",
		ReadStyle:  channel.ReadPush,
		WriteStyle: channel.WriteFireAndForget,
	}
}

// close drops the state subscription.
func (m *Mechanism) close() error {
	m.mu.Lock()
	if m.unsub {
		m.mu.Unlock()
		return nil
	}
	m.unsub = true
	m.mu.Unlock()
	return m.broker.Unsubscribe(m.stateT)
}
