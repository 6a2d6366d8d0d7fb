// smarthome-core - MQTT smart home device aggregator
//
// This is the main entry point for the smarthome-core service. It
// connects to the MQTT broker, discovers devices announced on the bus,
// aggregates their state and status, and exposes the registry over a
// REST/WebSocket API. An optional InfluxDB sink records state and
// status history for telemetry queries.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openhaus/smarthome-core/internal/api"
	"github.com/openhaus/smarthome-core/internal/automation"
	"github.com/openhaus/smarthome-core/internal/infrastructure/config"
	"github.com/openhaus/smarthome-core/internal/infrastructure/history"
	"github.com/openhaus/smarthome-core/internal/infrastructure/logging"
	"github.com/openhaus/smarthome-core/internal/infrastructure/mqtt"
	"github.com/openhaus/smarthome-core/internal/manager"
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
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting smarthome-core",
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

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
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

	// Connect to InfluxDB history sink (optional)
	var sink *history.Sink
	if cfg.History.Enabled {
		sink, err = history.Connect(cfg.History)
		if err != nil {
			return fmt.Errorf("connecting to history sink: %w", err)
		}
		defer func() {
			log.Info("closing history sink")
			if closeErr := sink.Close(); closeErr != nil {
				log.Error("error closing history sink", "error", closeErr)
			}
		}()
		sink.SetOnError(func(err error) {
			log.Error("history write error", "error", err)
		})
		log.Info("history sink connected",
			"url", cfg.History.URL,
			"org", cfg.History.Org,
			"bucket", cfg.History.Bucket,
		)
	} else {
		log.Info("history sink disabled")
	}

	// Build the device manager over the MQTT transport
	qos := byte(cfg.MQTT.QoS) //nolint:gosec // QoS validated to 0..2 by config
	mgr := manager.New(manager.NewMQTTTransport(mqttClient, qos))
	mgr.SetLogger(log)

	routines := automation.NewRoutines(mgr)
	routines.SetLogger(log)

	// Create the API server early so its hub can receive events from the
	// first discovery onwards.
	var apiServer *api.Server
	if cfg.API.Enabled {
		apiServer, err = api.New(api.Deps{
			Config:   cfg.API,
			WS:       cfg.WebSocket,
			Logger:   log,
			Manager:  mgr,
			Routines: routines,
			Version:  version,
		})
		if err != nil {
			return fmt.Errorf("creating API server: %w", err)
		}
	}

	// Fan registry events out to the WebSocket hub and the history sink.
	mgr.SetOnEvent(func(event manager.Event) {
		if apiServer != nil {
			apiServer.Hub().BroadcastEvent(event)
		}
		if sink == nil {
			return
		}
		switch event.Type {
		case manager.EventDeviceState:
			sink.WriteState(event.Device.ID, event.Device.Type, event.Device.State)
		case manager.EventDeviceStatus:
			sink.WriteStatus(event.Device.ID, event.Device.Type,
				event.Device.Online, event.Device.Battery, event.Device.SignalStrength)
		}
	})

	// Subscribe to the discovery, state and status patterns
	if err := mgr.Start(); err != nil {
		return fmt.Errorf("starting device manager: %w", err)
	}
	log.Info("device manager started")

	// Start the API server
	if apiServer != nil {
		if err := apiServer.Start(ctx); err != nil {
			return fmt.Errorf("starting API server: %w", err)
		}
		defer func() {
			if closeErr := apiServer.Close(); closeErr != nil {
				log.Error("error closing API server", "error", closeErr)
			}
		}()
		log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)
	} else {
		log.Info("API server disabled")
	}

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. History sink (if enabled)
	// 3. MQTT

	log.Info("smarthome-core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses SMARTHOME_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("SMARTHOME_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
