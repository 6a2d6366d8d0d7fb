package history

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteState records a device state update.
//
// Numeric and boolean readings from the state map become fields; other
// value types are skipped since InfluxDB fields must be scalar. The write
// is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - deviceID: Unique identifier for the device (e.g., "light-living-01")
//   - deviceType: Device type tag (e.g., "light", "thermostat")
//   - state: The state keys that changed
//
// Example:
//
//	sink.WriteState("thermostat-01", "thermostat", map[string]any{"temperature": 21.5})
func (s *Sink) WriteState(deviceID, deviceType string, state map[string]any) {
	if !s.IsConnected() {
		return
	}

	fields := make(map[string]any, len(state))
	for k, v := range state {
		switch val := v.(type) {
		case float64:
			fields[k] = val
		case int:
			fields[k] = float64(val)
		case bool:
			fields[k] = val
		}
	}
	if len(fields) == 0 {
		return
	}

	point := write.NewPoint(
		"device_state",
		map[string]string{
			"device_id":   deviceID,
			"device_type": deviceType,
		},
		fields,
		time.Now(),
	)

	s.writeAPI.WritePoint(point)
}

// WriteStatus records a device connectivity/health update.
//
// Parameters:
//   - deviceID: Device identifier
//   - deviceType: Device type tag
//   - online: Whether the device reported itself reachable
//   - battery: Battery percentage, nil if not reported
//   - signalStrength: Signal strength, nil if not reported
func (s *Sink) WriteStatus(deviceID, deviceType string, online bool, battery, signalStrength *float64) {
	if !s.IsConnected() {
		return
	}

	fields := map[string]any{
		"online": online,
	}
	if battery != nil {
		fields["battery"] = *battery
	}
	if signalStrength != nil {
		fields["signal_strength"] = *signalStrength
	}

	point := write.NewPoint(
		"device_status",
		map[string]string{
			"device_id":   deviceID,
			"device_type": deviceType,
		},
		fields,
		time.Now(),
	)

	s.writeAPI.WritePoint(point)
}
