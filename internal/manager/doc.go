// Package manager routes bus traffic to and from the device registry.
//
// Inbound messages are classified by topic shape — discovery
// announcements, state updates, status updates — and applied to the
// registry; everything else reaches only exact-topic callbacks. Outbound,
// the manager publishes command envelopes, scene and automation
// definitions and energy queries. It never waits for responses: the bus
// protocol is fire-and-forget throughout.
//
// The manager is transport-agnostic behind the Transport interface; the
// production binary wires in MQTTTransport.
package manager
