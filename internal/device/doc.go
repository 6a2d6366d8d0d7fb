// Package device provides the in-memory device registry for smarthome-core.
//
// The registry is the catalogue of every entity announced on the message
// bus. It is owned by the manager package: the inbound message dispatch
// path creates records from discovery announcements and mutates them from
// state and status updates, while the command-issuing path and the HTTP
// API read them. No other component mutates the registry directly.
//
// # Key Types
//
//   - Device: one record per discovered entity (identity, capabilities,
//     metadata, connectivity status, free-form state)
//   - Registry: lock-guarded map of devices with copy-out semantics
//
// # Mutation Rules
//
//   - Add: first discovery wins; a second Add for the same ID is rejected
//     with ErrDeviceExists and changes nothing
//   - MergeState: key-wise upsert into State, never wholesale replacement
//   - SetStatus: wholesale replacement of online/battery/signal_strength
//   - Records are never deleted; lifetime equals process lifetime
//
// # Thread Safety
//
// All operations are protected by a read-write mutex. Devices returned
// from queries are deep copies, so a caller can never mutate registry
// internals through a returned value, and readers are unaffected by
// concurrent updates.
package device
