package device

import (
	"sync"
	"time"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
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

// Registry is the in-memory catalogue of discovered devices.
//
// It is populated exclusively by the message dispatch path (discovery,
// state and status handlers) and read by the command-issuing path. Records
// live for the lifetime of the process; nothing evicts or deletes them.
//
// All public methods are thread-safe. Returned devices are deep copies,
// so callers can never mutate the registry through a returned value.
type Registry struct {
	devices map[string]*Device
	mu      sync.RWMutex
	logger  Logger
}

// NewRegistry creates an empty device registry.
func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[string]*Device),
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// Add inserts a newly discovered device.
//
// The first discovery for an ID wins: if a record already exists the
// registry is left untouched and ErrDeviceExists is returned. Duplicate
// discovery announcements are expected (overlapping wildcard
// subscriptions can deliver the same message twice) and must be safe.
func (r *Registry) Add(d *Device) error {
	if d == nil || d.ID == "" {
		return ErrInvalidDevice
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.devices[d.ID]; exists {
		return ErrDeviceExists
	}

	r.devices[d.ID] = d.DeepCopy()
	r.logger.Info("device registered", "id", d.ID, "name", d.Name, "type", d.Type)
	return nil
}

// Get retrieves a device by ID.
// Returns ErrDeviceNotFound if the device does not exist.
// The returned device is a deep copy; callers can safely modify it.
func (r *Registry) Get(id string) (*Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[id]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return d.DeepCopy(), nil
}

// Has reports whether a device with the given ID is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.devices[id]
	return ok
}

// List retrieves all devices as deep copies. Order is not defined.
func (r *Registry) List() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	devices := make([]Device, 0, len(r.devices))
	for _, d := range r.devices {
		devices = append(devices, *d.DeepCopy())
	}
	return devices
}

// ListByType retrieves all devices whose Type equals deviceType.
// The returned devices are deep copies; order is not defined.
func (r *Registry) ListByType(deviceType string) []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var devices []Device
	for _, d := range r.devices {
		if d.Type == deviceType {
			devices = append(devices, *d.DeepCopy())
		}
	}
	return devices
}

// MergeState applies a state update to a device.
//
// Keys in state are upserted into the existing state map; unrelated keys
// survive. LastUpdate is set to the current time. Updates addressed to an
// unknown ID are dropped and ErrDeviceNotFound is returned; the registry
// never queues updates that arrive before discovery.
func (r *Registry) MergeState(id string, state State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[id]
	if !ok {
		return ErrDeviceNotFound
	}

	// Atomic replacement of the stored record so concurrent readers
	// holding an earlier copy are unaffected.
	updated := d.DeepCopy()
	if updated.State == nil {
		updated.State = make(State, len(state))
	}
	for k, v := range state {
		updated.State[k] = deepCopyValue(v)
	}
	now := time.Now().UTC()
	updated.LastUpdate = &now
	r.devices[id] = updated

	r.logger.Debug("device state merged", "id", id, "keys", len(state))
	return nil
}

// SetStatus applies a status update to a device.
//
// Unlike state, status attributes are wholesale-replaced: online, battery
// and signal_strength take exactly the values given, including nil for
// absent readings. Returns ErrDeviceNotFound for an unknown ID.
func (r *Registry) SetStatus(id string, online bool, battery, signalStrength *float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[id]
	if !ok {
		return ErrDeviceNotFound
	}

	updated := d.DeepCopy()
	updated.Online = online
	updated.Battery = battery
	updated.SignalStrength = signalStrength
	r.devices[id] = updated

	r.logger.Debug("device status updated", "id", id, "online", online)
	return nil
}

// Count returns the number of registered devices.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

// Stats returns registry statistics for monitoring.
type Stats struct {
	TotalDevices int            `json:"total_devices"`
	ByType       map[string]int `json:"by_type"`
	Online       int            `json:"online"`
	Offline      int            `json:"offline"`
}

// GetStats returns current registry statistics.
func (r *Registry) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		TotalDevices: len(r.devices),
		ByType:       make(map[string]int),
	}

	for _, d := range r.devices {
		stats.ByType[d.Type]++
		if d.Online {
			stats.Online++
		} else {
			stats.Offline++
		}
	}

	return stats
}
