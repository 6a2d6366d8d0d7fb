package manager

import (
	"fmt"
	"sync"

	"github.com/openhaus/smarthome-core/internal/device"
	"github.com/openhaus/smarthome-core/internal/infrastructure/mqtt"
)

// Logger defines the logging interface used by the Manager.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// EventType classifies registry mutations announced via SetOnEvent.
type EventType string

// Event types.
const (
	EventDeviceDiscovered EventType = "device_discovered"
	EventDeviceState      EventType = "device_state"
	EventDeviceStatus     EventType = "device_status"
)

// Event describes a registry mutation. Device is a snapshot copy taken
// after the mutation was applied; receivers may retain or modify it freely.
type Event struct {
	Type   EventType
	Device device.Device
}

// Manager is the topic-routed state aggregator at the heart of
// smarthome-core.
//
// It owns the device registry exclusively: inbound bus messages
// (discovery, state, status) are classified by topic shape and drive
// registry mutations, while command methods read the registry and publish
// envelopes back onto the bus. Exact-topic callbacks registered with
// SubscribeToTopic are dispatched for every parsed message.
//
// All methods are safe for concurrent use. Registry access is serialised
// inside the device package; locks are never held across transport calls.
type Manager struct {
	transport Transport
	registry  *device.Registry
	topics    mqtt.Topics
	logger    Logger

	// callbacks maps exact topic strings to handlers in registration
	// order. Repeated registrations for the same topic are kept, not
	// deduplicated.
	callbacks map[string][]Callback
	cbMu      sync.RWMutex

	// onEvent, when set, is invoked synchronously after each registry
	// mutation with a snapshot of the affected device.
	onEvent func(Event)
	eventMu sync.RWMutex
}

// Callback is invoked for messages arriving on an exactly-matching topic.
//
// Callbacks run synchronously on the dispatch path: a slow callback delays
// every subsequent message, so callbacks must not block. A panicking
// callback is recovered and logged; remaining callbacks still run.
type Callback func(topic string, payload map[string]any)

// New creates a Manager over the given transport.
//
// The registry starts empty; it is populated as discovery announcements
// arrive after Start.
func New(transport Transport) *Manager {
	return &Manager{
		transport: transport,
		registry:  device.NewRegistry(),
		callbacks: make(map[string][]Callback),
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the manager and its registry.
func (m *Manager) SetLogger(logger Logger) {
	m.logger = logger
	m.registry.SetLogger(logger)
}

// SetOnEvent sets a callback invoked after each registry mutation.
//
// The callback runs synchronously on the dispatch path and must not
// block; hand the event to a buffered channel or an async sink.
func (m *Manager) SetOnEvent(callback func(Event)) {
	m.eventMu.Lock()
	m.onEvent = callback
	m.eventMu.Unlock()
}

// Start subscribes to the discovery, status and state topic patterns.
//
// A subscription failure here is fatal: without these patterns the
// registry would never be populated.
func (m *Manager) Start() error {
	patterns := []string{
		m.topics.Discovery(),
		m.topics.AllDeviceStatus(),
		m.topics.AllDeviceState(),
	}

	for _, pattern := range patterns {
		if err := m.transport.Subscribe(pattern, m.HandleMessage); err != nil {
			return fmt.Errorf("subscribing to %s: %w", pattern, err)
		}
	}

	m.logger.Info("manager started", "subscriptions", len(patterns))
	return nil
}

// Devices returns a snapshot of all registered devices, or only those
// whose type equals typeFilter when it is non-empty. Order is undefined.
func (m *Manager) Devices(typeFilter string) []device.Device {
	if typeFilter == "" {
		return m.registry.List()
	}
	return m.registry.ListByType(typeFilter)
}

// Device returns a snapshot of a single device.
// Returns device.ErrDeviceNotFound if the ID is not registered.
func (m *Manager) Device(id string) (*device.Device, error) {
	return m.registry.Get(id)
}

// DeviceCount returns the number of registered devices.
func (m *Manager) DeviceCount() int {
	return m.registry.Count()
}

// Stats returns registry statistics for monitoring.
func (m *Manager) Stats() device.Stats {
	return m.registry.GetStats()
}

// emit delivers an event snapshot to the registered event callback.
func (m *Manager) emit(eventType EventType, id string) {
	m.eventMu.RLock()
	callback := m.onEvent
	m.eventMu.RUnlock()
	if callback == nil {
		return
	}

	snapshot, err := m.registry.Get(id)
	if err != nil {
		return
	}
	callback(Event{Type: eventType, Device: *snapshot})
}
