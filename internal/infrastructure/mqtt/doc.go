// Package mqtt wraps the Eclipse Paho MQTT client for smarthome-core.
//
// It is the transport collaborator for the device manager: the manager
// subscribes to the smarthome topic namespace through this client and
// publishes commands back onto it. The wrapper adds:
//
//   - Connection management with timeout on initial connect
//   - Automatic reconnection with exponential backoff
//   - Subscription tracking and restoration after reconnect
//   - Panic recovery around message handlers
//   - Sentinel errors (ErrNotConnected, ErrPublishFailed, ...) checkable
//     with errors.Is
//   - Topic builders for the fixed smarthome namespace (topics.go)
//
// # Topic Namespace
//
// The smarthome topic strings are a wire-compatibility contract; they are
// produced only by the Topics builders:
//
//	smarthome/discovery/#               discovery announcements
//	smarthome/devices/+/status          connectivity/health updates
//	smarthome/devices/+/state           state updates
//	smarthome/devices/{id}/#            per-device subscription after discovery
//	smarthome/devices/{id}/command      command publish
//	smarthome/scenes/create             scene creation
//	smarthome/scenes/activate           scene activation
//	smarthome/automations/create        automation rules
//	smarthome/energy/query              energy usage queries
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err // connect failure is fatal to startup
//	}
//	defer client.Close()
//
//	topics := mqtt.Topics{}
//	client.Subscribe(topics.Discovery(), 1, func(topic string, payload []byte) error {
//	    // handle announcement
//	    return nil
//	})
package mqtt
