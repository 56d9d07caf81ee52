package mqtt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ashdown-labs/larkhub-core/internal/infrastructure/config"
)

// testConfig returns a valid MQTT configuration for testing.
func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "larkhub-test",
			TLS:      false,
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

// disconnectedClient returns a client that was never connected. Input
// validation runs before the connection check, so these tests need no
// broker.
func disconnectedClient() *Client {
	return &Client{subscriptions: make(map[string]subscription)}
}

func TestCloseNil(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on zero client error = %v, want nil", err)
	}
}

func TestIsConnected_InitialState(t *testing.T) {
	client := disconnectedClient()
	if client.IsConnected() {
		t.Error("IsConnected() = true for never-connected client")
	}
}

func TestHealthCheckDisconnected(t *testing.T) {
	client := disconnectedClient()
	if err := client.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestHealthCheckCancelled(t *testing.T) {
	client := disconnectedClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.HealthCheck(ctx)
	if err == nil || errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want context error", err)
	}
}

func TestPublishValidation(t *testing.T) {
	client := disconnectedClient()

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{name: "empty topic", topic: "", payload: []byte("x"), qos: 1, wantErr: ErrInvalidTopic},
		{name: "invalid qos", topic: "larkhub/test", payload: []byte("x"), qos: 3, wantErr: ErrInvalidQoS},
		{name: "oversized payload", topic: "larkhub/test", payload: make([]byte, maxPayloadSize+1), qos: 1, wantErr: ErrPublishFailed},
		{name: "disconnected", topic: "larkhub/test", payload: []byte("x"), qos: 1, wantErr: ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubscribeValidation(t *testing.T) {
	client := disconnectedClient()
	handler := func(string, []byte) error { return nil }

	if err := client.Subscribe("", 1, handler); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Subscribe() empty topic error = %v, want ErrInvalidTopic", err)
	}
	if err := client.Subscribe("larkhub/test", 3, handler); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("Subscribe() bad qos error = %v, want ErrInvalidQoS", err)
	}
	if err := client.Subscribe("larkhub/test", 1, nil); !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("Subscribe() nil handler error = %v, want ErrSubscribeFailed", err)
	}
	if err := client.Subscribe("larkhub/test", 1, handler); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Subscribe() disconnected error = %v, want ErrNotConnected", err)
	}
	if client.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d after failed subscribes, want 0", client.SubscriptionCount())
	}
}

func TestUnsubscribeValidation(t *testing.T) {
	client := disconnectedClient()

	if err := client.Unsubscribe(""); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Unsubscribe() empty topic error = %v, want ErrInvalidTopic", err)
	}
	if err := client.Unsubscribe("larkhub/test"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Unsubscribe() disconnected error = %v, want ErrNotConnected", err)
	}
}

func TestHasSubscription_NotSubscribed(t *testing.T) {
	client := disconnectedClient()
	if client.HasSubscription("larkhub/test") {
		t.Error("HasSubscription() = true for empty client")
	}
}

func TestTopicBuilders(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"device state", topics.DeviceState("porch-light", "power"), "larkhub/state/porch-light/power"},
		{"device command", topics.DeviceCommand("porch-light", "power"), "larkhub/command/porch-light/power"},
		{"device availability", topics.DeviceAvailability("porch-light"), "larkhub/availability/porch-light"},
		{"system status", topics.SystemStatus(), "larkhub/system/status"},
		{"all device states", topics.AllDeviceStates(), "larkhub/state/+/+"},
		{"all availability", topics.AllDeviceAvailability(), "larkhub/availability/+"},
		{"all topics", topics.AllTopics(), "larkhub/#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("topic = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Username = "gateway"
	cfg.Auth.Password = "secret"

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("expected 1 broker URL, got %d", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "tcp://127.0.0.1:1883" {
		t.Errorf("broker URL = %q, want tcp://127.0.0.1:1883", got)
	}
	if opts.ClientID != "larkhub-test" {
		t.Errorf("ClientID = %q, want larkhub-test", opts.ClientID)
	}
	if opts.Username != "gateway" {
		t.Errorf("Username = %q, want gateway", opts.Username)
	}
	if !opts.AutoReconnect {
		t.Error("AutoReconnect = false, want true")
	}
}

func TestBuildClientOptions_TLS(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.TLS = true

	opts := buildClientOptions(cfg)
	if got := opts.Servers[0].Scheme; got != "ssl" {
		t.Errorf("broker scheme = %q, want ssl", got)
	}
	if opts.TLSConfig == nil {
		t.Fatal("TLSConfig not set for TLS broker")
	}
}

func TestStatusPayloads(t *testing.T) {
	online := buildOnlinePayload("larkhub-test")
	if !strings.Contains(online, `"status":"online"`) || !strings.Contains(online, "larkhub-test") {
		t.Errorf("online payload = %s", online)
	}

	offline := buildOfflinePayload("larkhub-test")
	if !strings.Contains(offline, `"status":"offline"`) || !strings.Contains(offline, "graceful_shutdown") {
		t.Errorf("offline payload = %s", offline)
	}
}
