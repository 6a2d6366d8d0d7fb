package device

import "time"

// Device represents a controllable or monitorable entity discovered on the
// message bus. One record exists per device ID; the ID is immutable once
// the record has been created.
type Device struct {
	// Identity (from the discovery announcement)
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`

	// Capabilities advertised at discovery time (e.g. "on_off", "dim").
	Capabilities []string `json:"capabilities"`

	// Metadata (optional, from the discovery announcement)
	Manufacturer    *string `json:"manufacturer,omitempty"`
	Model           *string `json:"model,omitempty"`
	FirmwareVersion *string `json:"firmware_version,omitempty"`

	// DiscoveredAt is when the discovery announcement was processed.
	DiscoveredAt time.Time `json:"discovered_at"`

	// Connectivity/health attributes, wholesale-replaced by status updates.
	Online         bool     `json:"online"`
	Battery        *float64 `json:"battery,omitempty"`
	SignalStrength *float64 `json:"signal_strength,omitempty"`

	// State holds sensor/actuator readings, merged key-wise by state updates.
	State State `json:"state"`

	// LastUpdate is when the most recent state update was applied.
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

// State holds the current device state as a JSON map.
//
// Examples:
//   - Light: {"on": true, "brightness": 75}
//   - Thermostat: {"temperature": 21.5, "setpoint": 22.0}
type State map[string]any

// DeepCopy creates a complete independent copy of the Device.
// All map and slice fields are cloned so modifications to the copy
// do not affect the original. This is essential for registry isolation.
func (d *Device) DeepCopy() *Device {
	if d == nil {
		return nil
	}

	cpy := *d // Shallow copy of value fields

	cpy.State = deepCopyMap(d.State)

	if d.Capabilities != nil {
		cpy.Capabilities = make([]string, len(d.Capabilities))
		copy(cpy.Capabilities, d.Capabilities)
	}

	// Pointer fields (*string, *float64, *time.Time) don't need deep copy
	// because their pointees are never mutated in place.

	return &cpy
}

// deepCopyMap creates a deep copy of a map[string]any.
// Nested maps and slices are recursively copied.
func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cpy := make(map[string]any, len(m))
	for k, v := range m {
		cpy[k] = deepCopyValue(v)
	}
	return cpy
}

// deepCopyValue recursively copies a value, handling nested maps and slices.
func deepCopyValue(v any) any {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		cpy := make([]any, len(val))
		for i, elem := range val {
			cpy[i] = deepCopyValue(elem)
		}
		return cpy
	default:
		// Primitives (string, bool, int, float64, etc.) are safe to copy by value
		return v
	}
}
