package manager

import (
	"github.com/openhaus/smarthome-core/internal/infrastructure/mqtt"
)

// Transport is the pub/sub collaborator the manager speaks to.
//
// Publish and Subscribe must be non-blocking or bounded: the manager calls
// them from the dispatch path and from command issuance and never waits
// for a remote response. Inbound messages are delivered to the subscribed
// handler in arrival order.
//
// The production implementation is MQTTTransport; tests substitute a fake.
type Transport interface {
	// Publish sends a payload to an exact topic.
	Publish(topic string, payload []byte) error

	// Subscribe registers a handler for a topic pattern (MQTT wildcards
	// + and # are supported by the underlying broker).
	Subscribe(topic string, handler func(topic string, payload []byte) error) error
}

// MQTTTransport adapts the infrastructure MQTT client to the Transport
// interface, fixing the QoS level for all manager traffic.
type MQTTTransport struct {
	client *mqtt.Client
	qos    byte
}

// NewMQTTTransport wraps an MQTT client as a Transport.
func NewMQTTTransport(client *mqtt.Client, qos byte) *MQTTTransport {
	return &MQTTTransport{client: client, qos: qos}
}

// Publish sends a payload with the configured QoS, not retained.
func (t *MQTTTransport) Publish(topic string, payload []byte) error {
	return t.client.Publish(topic, payload, t.qos, false)
}

// Subscribe registers a handler with the configured QoS.
func (t *MQTTTransport) Subscribe(topic string, handler func(topic string, payload []byte) error) error {
	return t.client.Subscribe(topic, t.qos, handler)
}
