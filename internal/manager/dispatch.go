package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openhaus/smarthome-core/internal/device"
)

// Topic suffixes that classify device-scoped messages.
const (
	stateSuffix  = "/state"
	statusSuffix = "/status"
)

// discoveryAnnouncement is the decoded shape of a discovery message.
type discoveryAnnouncement struct {
	DeviceID        string   `json:"device_id"`
	Type            string   `json:"type"`
	Name            string   `json:"name"`
	Capabilities    []string `json:"capabilities"`
	Manufacturer    *string  `json:"manufacturer"`
	Model           *string  `json:"model"`
	FirmwareVersion *string  `json:"firmware_version"`
}

// statusUpdate is the decoded shape of a status message.
type statusUpdate struct {
	Online         *bool    `json:"online"`
	Battery        *float64 `json:"battery"`
	SignalStrength *float64 `json:"signal_strength"`
}

// HandleMessage processes one inbound (topic, payload) event.
//
// Events are handled in arrival order, one at a time per transport
// delivery goroutine; there is no reordering or batching. The algorithm:
//
//  1. Parse the payload as a JSON object. A parse failure drops the event
//     and returns ErrMalformedPayload; the stream continues.
//  2. Classify by topic shape, first match wins: discovery prefix, then
//     state suffix, then status suffix. Anything else has no built-in
//     handling.
//  3. Apply the matching registry mutation (see the handlers below).
//  4. Regardless of classification outcome, invoke callbacks registered
//     for the exact topic string, in registration order.
//
// Duplicate deliveries are safe: the per-device wildcard subscription
// taken at discovery overlaps the status/state wildcards on some brokers,
// and every handler is idempotent under re-processing.
func (m *Manager) HandleMessage(topic string, payload []byte) error {
	fields, err := parsePayload(payload)
	if err != nil {
		m.logger.Warn("dropping malformed message", "topic", topic, "error", err)
		return err
	}

	var handleErr error
	switch {
	case strings.HasPrefix(topic, m.topics.DiscoveryPrefix()):
		handleErr = m.handleDiscovery(payload)

	case strings.HasSuffix(topic, stateSuffix):
		if id, ok := deviceIDFromTopic(topic); ok {
			m.handleStateUpdate(id, fields)
		}

	case strings.HasSuffix(topic, statusSuffix):
		if id, ok := deviceIDFromTopic(topic); ok {
			handleErr = m.handleStatus(id, payload)
		}
	}

	// Callback dispatch happens even when a built-in handler rejected the
	// message: custom subscribers see every parseable event on their topic.
	m.dispatchCallbacks(topic, fields)

	return handleErr
}

// parsePayload decodes a raw payload into a JSON object.
func parsePayload(payload []byte) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return fields, nil
}

// deviceIDFromTopic extracts the device ID from a device-scoped topic,
// the third slash-delimited segment: smarthome/devices/{id}/...
func deviceIDFromTopic(topic string) (string, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

// handleDiscovery registers a newly announced device.
//
// The first announcement for an ID wins: repeats are a no-op and issue no
// second subscription. After registration the manager subscribes to the
// device's wildcard topic so device-specific messages are received.
func (m *Manager) handleDiscovery(payload []byte) error {
	var ann discoveryAnnouncement
	if err := json.Unmarshal(payload, &ann); err != nil {
		return fmt.Errorf("%w: discovery: %w", ErrMalformedPayload, err)
	}

	if ann.DeviceID == "" {
		m.logger.Debug("discovery announcement without device_id ignored")
		return nil
	}
	if m.registry.Has(ann.DeviceID) {
		return nil
	}

	capabilities := ann.Capabilities
	if capabilities == nil {
		capabilities = []string{}
	}

	d := &device.Device{
		ID:              ann.DeviceID,
		Type:            ann.Type,
		Name:            ann.Name,
		Capabilities:    capabilities,
		Manufacturer:    ann.Manufacturer,
		Model:           ann.Model,
		FirmwareVersion: ann.FirmwareVersion,
		DiscoveredAt:    time.Now().UTC(),
		Online:          true,
		State:           device.State{},
	}

	if err := m.registry.Add(d); err != nil {
		// Lost a race with a duplicate delivery; the earlier announcement
		// already subscribed.
		if errors.Is(err, device.ErrDeviceExists) {
			return nil
		}
		return err
	}

	m.logger.Info("discovered new device",
		"id", ann.DeviceID,
		"name", ann.Name,
		"type", ann.Type,
	)

	// Subscribe to device-specific topics. Failure leaves the record in
	// place; the broad state/status wildcards still cover the device.
	deviceTopic := m.topics.Device(ann.DeviceID)
	if err := m.transport.Subscribe(deviceTopic, m.HandleMessage); err != nil {
		m.logger.Warn("per-device subscription failed",
			"id", ann.DeviceID,
			"topic", deviceTopic,
			"error", err,
		)
	}

	m.emit(EventDeviceDiscovered, ann.DeviceID)
	return nil
}

// handleStateUpdate merges a state payload into a known device.
//
// Updates for unknown IDs are silently dropped, never queued: a state
// update that races ahead of its discovery announcement is lost.
func (m *Manager) handleStateUpdate(id string, fields map[string]any) {
	if err := m.registry.MergeState(id, fields); err != nil {
		m.logger.Debug("state update for unknown device dropped", "id", id)
		return
	}
	m.emit(EventDeviceState, id)
}

// handleStatus wholesale-replaces a known device's connectivity attributes.
// online defaults to false when absent from the payload.
func (m *Manager) handleStatus(id string, payload []byte) error {
	var su statusUpdate
	if err := json.Unmarshal(payload, &su); err != nil {
		return fmt.Errorf("%w: status: %w", ErrMalformedPayload, err)
	}

	online := su.Online != nil && *su.Online
	if err := m.registry.SetStatus(id, online, su.Battery, su.SignalStrength); err != nil {
		m.logger.Debug("status update for unknown device dropped", "id", id)
		return nil
	}
	m.emit(EventDeviceStatus, id)
	return nil
}
