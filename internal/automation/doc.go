// Package automation provides canned whole-home routines built on top of
// the device manager's command surface.
//
// Routines sweep the registry by device type and issue commands best-effort:
// a device that fails to accept a command is logged and skipped so one
// unreachable light cannot abort a good-night sweep.
package automation
