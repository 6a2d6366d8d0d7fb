package manager

import (
	"fmt"
)

// SubscribeToTopic registers a callback for messages arriving on an exact
// topic string. Multiple callbacks on the same topic run in registration
// order; the same callback may be registered more than once and will fire
// once per registration.
//
// The transport subscription is only taken for the first callback on a
// topic. If that subscription fails the callback is not retained and the
// error is returned.
func (m *Manager) SubscribeToTopic(topic string, cb Callback) error {
	if cb == nil {
		return ErrNilCallback
	}
	if topic == "" {
		return fmt.Errorf("manager: empty callback topic")
	}

	m.cbMu.Lock()
	existing := len(m.callbacks[topic])
	m.callbacks[topic] = append(m.callbacks[topic], cb)
	m.cbMu.Unlock()

	if existing > 0 {
		return nil
	}

	if err := m.transport.Subscribe(topic, m.HandleMessage); err != nil {
		m.cbMu.Lock()
		cbs := m.callbacks[topic]
		if len(cbs) > 0 {
			m.callbacks[topic] = cbs[:len(cbs)-1]
		}
		if len(m.callbacks[topic]) == 0 {
			delete(m.callbacks, topic)
		}
		m.cbMu.Unlock()
		return fmt.Errorf("manager: subscribe %s: %w", topic, err)
	}
	return nil
}

// dispatchCallbacks invokes every callback registered for the exact topic,
// in registration order. A panicking callback is recovered and logged so it
// cannot take down the delivery goroutine or starve later callbacks.
func (m *Manager) dispatchCallbacks(topic string, fields map[string]any) {
	m.cbMu.RLock()
	cbs := make([]Callback, len(m.callbacks[topic]))
	copy(cbs, m.callbacks[topic])
	m.cbMu.RUnlock()

	for _, cb := range cbs {
		m.invokeCallback(topic, fields, cb)
	}
}

func (m *Manager) invokeCallback(topic string, fields map[string]any, cb Callback) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("callback panicked", "topic", topic, "panic", r)
		}
	}()
	cb(topic, fields)
}
