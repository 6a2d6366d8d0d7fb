package manager

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/openhaus/smarthome-core/internal/device"
)

// CommandEnvelope is the wire shape of a device command.
type CommandEnvelope struct {
	Command   string         `json:"command"`
	Params    map[string]any `json:"params"`
	Timestamp string         `json:"timestamp"`
}

// Command names understood by conforming devices.
const (
	CommandTurnOn         = "turn_on"
	CommandTurnOff        = "turn_off"
	CommandSetBrightness  = "set_brightness"
	CommandSetColor       = "set_color"
	CommandSetTemperature = "set_temperature"
	CommandLock           = "lock"
	CommandUnlock         = "unlock"
)

// ControlDevice publishes a command to a known device's command topic.
//
// The device must already be registered: commanding an unknown ID fails
// with device.ErrDeviceNotFound before anything reaches the wire. Delivery
// is fire-and-forget; there is no acknowledgement protocol, so success
// means the broker accepted the publish, not that the device acted on it.
func (m *Manager) ControlDevice(id, command string, params map[string]any) error {
	if !m.registry.Has(id) {
		return fmt.Errorf("manager: control %s: %w", id, device.ErrDeviceNotFound)
	}
	if params == nil {
		params = map[string]any{}
	}

	env := CommandEnvelope{
		Command:   command,
		Params:    params,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := m.publishJSON(m.topics.DeviceCommand(id), env); err != nil {
		return err
	}

	m.logger.Info("command sent", "id", id, "command", command)
	return nil
}

// TurnOn switches a device on.
func (m *Manager) TurnOn(id string) error {
	return m.ControlDevice(id, CommandTurnOn, nil)
}

// TurnOff switches a device off.
func (m *Manager) TurnOff(id string) error {
	return m.ControlDevice(id, CommandTurnOff, nil)
}

// SetBrightness sets a light's brightness level.
func (m *Manager) SetBrightness(id string, level int) error {
	return m.ControlDevice(id, CommandSetBrightness, map[string]any{"brightness": level})
}

// SetColor sets a light's color.
func (m *Manager) SetColor(id, color string) error {
	return m.ControlDevice(id, CommandSetColor, map[string]any{"color": color})
}

// SetTemperature sets a thermostat's target temperature.
func (m *Manager) SetTemperature(id string, temperature float64) error {
	return m.ControlDevice(id, CommandSetTemperature, map[string]any{"temperature": temperature})
}

// Lock engages a lock.
func (m *Manager) Lock(id string) error {
	return m.ControlDevice(id, CommandLock, nil)
}

// Unlock disengages a lock.
func (m *Manager) Unlock(id string) error {
	return m.ControlDevice(id, CommandUnlock, nil)
}

// CreateScene publishes a scene definition mapping device IDs to the state
// each should assume. The request is fire-and-forget: no confirmation
// arrives and no local record is kept.
func (m *Manager) CreateScene(name string, devices map[string]map[string]any) error {
	if devices == nil {
		devices = map[string]map[string]any{}
	}
	payload := map[string]any{
		"name":       name,
		"devices":    devices,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := m.publishJSON(m.topics.SceneCreate(), payload); err != nil {
		return err
	}
	m.logger.Info("scene created", "name", name, "devices", len(devices))
	return nil
}

// ActivateScene publishes a scene activation request by name. The name is
// not validated against previously created scenes.
func (m *Manager) ActivateScene(name string) error {
	payload := map[string]any{
		"name":      name,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := m.publishJSON(m.topics.SceneActivate(), payload); err != nil {
		return err
	}
	m.logger.Info("scene activated", "name", name)
	return nil
}

// CreateAutomation publishes an automation rule: a trigger, zero or more
// conditions and the actions to run. Evaluation happens elsewhere; the
// manager only transmits the definition.
func (m *Manager) CreateAutomation(name string, trigger map[string]any, conditions []map[string]any, actions []map[string]any) error {
	if conditions == nil {
		conditions = []map[string]any{}
	}
	if actions == nil {
		actions = []map[string]any{}
	}
	payload := map[string]any{
		"name":       name,
		"trigger":    trigger,
		"conditions": conditions,
		"actions":    actions,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := m.publishJSON(m.topics.AutomationCreate(), payload); err != nil {
		return err
	}
	m.logger.Info("automation created", "name", name)
	return nil
}

// QueryEnergyUsage publishes an energy usage query, scoped to one device
// or, with an empty ID, to the whole installation. Responses, if any,
// arrive on whatever topic the responder uses; register a callback to
// receive them.
func (m *Manager) QueryEnergyUsage(deviceID string) error {
	var idField any
	if deviceID != "" {
		idField = deviceID
	}
	payload := map[string]any{
		"device_id": idField,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	return m.publishJSON(m.topics.EnergyQuery(), payload)
}

func (m *Manager) publishJSON(topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("manager: encode %s: %w", topic, err)
	}
	if err := m.transport.Publish(topic, data); err != nil {
		return fmt.Errorf("manager: publish %s: %w", topic, err)
	}
	return nil
}
