// Package history provides an optional InfluxDB telemetry sink for
// smarthome-core.
//
// When enabled, device state and status changes observed by the manager
// are recorded as time-series points. The sink is strictly write-only and
// fire-and-forget: writes are batched and asynchronous, failures surface
// through an error callback rather than the dispatch path, and nothing in
// the system reads history back at runtime. The device registry remains
// purely in-memory whether or not history is enabled.
//
// # Configuration
//
//	history:
//	  enabled: true
//	  url: "http://localhost:8086"
//	  org: "smarthome"
//	  bucket: "device-history"
//	  batch_size: 100
//	  flush_interval: 10
//
// The access token is supplied via SMARTHOME_HISTORY_TOKEN.
package history
