// Larkhub Core - Home Gateway
//
// This is the main entry point for the Larkhub gateway. Larkhub exposes
// every device capability as a typed channel in a process-wide registry:
//   - Offline-first operation (local adapters keep working without a broker)
//   - Open transport (MQTT-bridged devices, built-in adapters)
//   - Typed values end to end (no stringly-typed state)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/ashdown-labs/larkhub-core/migrations"

	"github.com/ashdown-labs/larkhub-core/internal/adapter/clock"
	"github.com/ashdown-labs/larkhub-core/internal/adapter/mqttbridge"
	"github.com/ashdown-labs/larkhub-core/internal/infrastructure/config"
	"github.com/ashdown-labs/larkhub-core/internal/infrastructure/database"
	"github.com/ashdown-labs/larkhub-core/internal/infrastructure/logging"
	"github.com/ashdown-labs/larkhub-core/internal/infrastructure/mqtt"
	"github.com/ashdown-labs/larkhub-core/internal/registry"
	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Larkhub Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Build the kind taxonomy: built-in kinds plus any site extensions
	kinds, err := buildKinds(cfg)
	if err != nil {
		return fmt.Errorf("building kind taxonomy: %w", err)
	}
	log.Info("kind taxonomy ready", "kinds", kinds.Len())

	// Initialise the channel registry with tag persistence
	reg := registry.New(kinds)
	reg.SetLogger(log)
	reg.SetTagStore(registry.NewSQLiteTagStore(db.DB))
	defer func() {
		log.Info("closing registry")
		if closeErr := reg.Close(context.Background()); closeErr != nil {
			log.Error("error closing registry", "error", closeErr)
		}
	}()
	log.Info("channel registry initialised")

	// Install the built-in clock adapter (if enabled)
	if cfg.Gateway.Clock.Enabled {
		clockAdapter := clock.New(nil)
		if installErr := clockAdapter.Install(ctx, reg); installErr != nil {
			return fmt.Errorf("installing clock adapter: %w", installErr)
		}
		log.Info("clock adapter installed", "service_id", clock.ServiceID)
	} else {
		log.Info("clock adapter disabled")
	}

	// Connect to MQTT and install bridged devices (if enabled)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		if cfg.MQTT.DevicesFile != "" {
			bridge, bridgeErr := startBridge(ctx, cfg, reg, mqttClient, log)
			if bridgeErr != nil {
				return fmt.Errorf("starting MQTT bridge: %w", bridgeErr)
			}
			defer func() {
				log.Info("stopping MQTT bridge")
				if closeErr := bridge.Close(context.Background()); closeErr != nil {
					log.Error("error stopping MQTT bridge", "error", closeErr)
				}
			}()
		} else {
			log.Info("no devices file configured, MQTT bridge idle")
		}
	} else {
		log.Info("MQTT disabled, running local adapters only")
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal",
		"services", reg.ServiceCount(),
		"channels", reg.ChannelCount(),
	)

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. MQTT bridge (if enabled)
	// 2. MQTT client
	// 3. Registry
	// 4. Database

	log.Info("Larkhub Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses LARKHUB_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("LARKHUB_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// buildKinds creates the taxonomy seeded with the built-in kinds and
// grown with any extra kinds declared in configuration.
func buildKinds(cfg *config.Config) (*taxonomy.Set, error) {
	kinds := taxonomy.NewSet()
	for _, k := range cfg.Gateway.ExtraKinds {
		if err := kinds.Register(taxonomy.Kind(k)); err != nil {
			return nil, fmt.Errorf("registering extra kind %q: %w", k, err)
		}
	}
	return kinds, nil
}

// healthCheck verifies all infrastructure connections are healthy.
// mqttClient may be nil when MQTT is disabled.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	return nil
}

// startBridge loads the device declarations and installs them into the
// registry as MQTT-bridged services.
func startBridge(ctx context.Context, cfg *config.Config, reg *registry.Registry, mqttClient *mqtt.Client, log *logging.Logger) (*mqttbridge.Bridge, error) {
	defs, err := mqttbridge.LoadDevices(cfg.MQTT.DevicesFile)
	if err != nil {
		return nil, fmt.Errorf("loading devices file: %w", err)
	}
	log.Info("devices file loaded",
		"path", cfg.MQTT.DevicesFile,
		"devices", len(defs.Devices),
	)

	bridge := mqttbridge.New(mqttClient, reg, byte(cfg.MQTT.QoS))
	bridge.SetLogger(log)
	if err := bridge.Install(ctx, defs); err != nil {
		return nil, fmt.Errorf("installing bridged devices: %w", err)
	}
	log.Info("MQTT bridge started", "devices", len(defs.Devices))

	return bridge, nil
}
