package mqtt

import (
	"crypto/tls"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ashdown-labs/larkhub-core/internal/infrastructure/config"
)

const (
	// connectTimeout bounds the initial connect.
	connectTimeout = 10 * time.Second

	// opTimeout bounds publish, subscribe and unsubscribe waits.
	opTimeout = 5 * time.Second

	// disconnectQuiesceMS is how long Disconnect waits for in-flight
	// work, in milliseconds (paho's unit).
	disconnectQuiesceMS = 1000

	keepAlive = 60 * time.Second

	maxQoS = 2
)

// buildClientOptions translates the mqtt config section into paho
// options: broker URL (tcp or ssl), credentials, clean session, and
// auto-reconnect with exponential backoff up to the configured ceiling.
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port))
	opts.SetClientID(cfg.Broker.ClientID)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	// Clean session: subscriptions are restored by the client itself
	// on reconnect, nothing is parked broker-side.
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(time.Duration(cfg.Reconnect.InitialDelay) * time.Second)
	opts.SetMaxReconnectInterval(time.Duration(cfg.Reconnect.MaxDelay) * time.Second)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetKeepAlive(keepAlive)

	return opts
}
