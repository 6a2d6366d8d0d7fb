package mqtt

import "fmt"

// TopicPrefix is the base of the smarthome topic namespace.
//
// The full namespace is fixed for compatibility with existing devices and
// bridges; do not construct these topics by hand elsewhere in the codebase.
const TopicPrefix = "smarthome"

// Topics provides builders for the smarthome MQTT topic namespace.
// Using these helpers ensures the fixed topic strings stay consistent
// across the codebase.
//
//	topics := mqtt.Topics{}
//	cmdTopic := topics.DeviceCommand("light-living")
//	// Returns: "smarthome/devices/light-living/command"
type Topics struct{}

// Discovery returns the wildcard pattern for device discovery announcements.
//
// Pattern: smarthome/discovery/#
func (Topics) Discovery() string {
	return fmt.Sprintf("%s/discovery/#", TopicPrefix)
}

// AllDeviceStatus returns the wildcard pattern for device status updates.
//
// Pattern: smarthome/devices/+/status
func (Topics) AllDeviceStatus() string {
	return fmt.Sprintf("%s/devices/+/status", TopicPrefix)
}

// AllDeviceState returns the wildcard pattern for device state updates.
//
// Pattern: smarthome/devices/+/state
func (Topics) AllDeviceState() string {
	return fmt.Sprintf("%s/devices/+/state", TopicPrefix)
}

// Device returns the wildcard pattern for all topics of a single device.
// Subscribed after discovery so device-specific messages are received.
//
// Example: smarthome/devices/light-living/#
func (Topics) Device(deviceID string) string {
	return fmt.Sprintf("%s/devices/%s/#", TopicPrefix, deviceID)
}

// DeviceCommand returns the command topic for a single device.
//
// Example: smarthome/devices/light-living/command
func (Topics) DeviceCommand(deviceID string) string {
	return fmt.Sprintf("%s/devices/%s/command", TopicPrefix, deviceID)
}

// DeviceState returns the state topic for a single device.
//
// Example: smarthome/devices/light-living/state
func (Topics) DeviceState(deviceID string) string {
	return fmt.Sprintf("%s/devices/%s/state", TopicPrefix, deviceID)
}

// DeviceStatus returns the status topic for a single device.
//
// Example: smarthome/devices/light-living/status
func (Topics) DeviceStatus(deviceID string) string {
	return fmt.Sprintf("%s/devices/%s/status", TopicPrefix, deviceID)
}

// SceneCreate returns the scene creation topic.
//
// Topic: smarthome/scenes/create
func (Topics) SceneCreate() string {
	return fmt.Sprintf("%s/scenes/create", TopicPrefix)
}

// SceneActivate returns the scene activation topic.
//
// Topic: smarthome/scenes/activate
func (Topics) SceneActivate() string {
	return fmt.Sprintf("%s/scenes/activate", TopicPrefix)
}

// AutomationCreate returns the automation creation topic.
//
// Topic: smarthome/automations/create
func (Topics) AutomationCreate() string {
	return fmt.Sprintf("%s/automations/create", TopicPrefix)
}

// EnergyQuery returns the energy usage query topic.
//
// Topic: smarthome/energy/query
func (Topics) EnergyQuery() string {
	return fmt.Sprintf("%s/energy/query", TopicPrefix)
}

// DiscoveryPrefix returns the topic prefix that identifies discovery
// announcements, including the trailing slash.
//
// Prefix: smarthome/discovery/
func (Topics) DiscoveryPrefix() string {
	return fmt.Sprintf("%s/discovery/", TopicPrefix)
}
