package automation

import (
	"github.com/openhaus/smarthome-core/internal/device"
)

// Device types swept by the built-in routines.
const (
	typeLight      = "light"
	typeThermostat = "thermostat"
	typeLock       = "lock"
)

// Routine temperature and brightness presets.
const (
	morningBrightness  = 50
	comfortTemperature = 22.0
	nightTemperature   = 18.0
	awayTemperature    = 15.0
)

// DeviceController is the slice of the manager's surface the routines
// need: registry sweeps by type plus the typed command helpers.
type DeviceController interface {
	Devices(typeFilter string) []device.Device
	TurnOn(id string) error
	TurnOff(id string) error
	SetBrightness(id string, level int) error
	SetTemperature(id string, temperature float64) error
	Lock(id string) error
}

// Logger defines the logging interface used by Routines.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Routines bundles the built-in whole-home sweeps.
type Routines struct {
	controller DeviceController
	logger     Logger
}

// NewRoutines creates the routine set over a device controller.
func NewRoutines(controller DeviceController) *Routines {
	return &Routines{
		controller: controller,
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger.
func (r *Routines) SetLogger(logger Logger) {
	r.logger = logger
}

// GoodMorning turns every light on at a gentle brightness and sets
// thermostats to a comfortable daytime temperature.
func (r *Routines) GoodMorning() {
	for _, d := range r.controller.Devices(typeLight) {
		r.attempt(d.ID, "turn_on", r.controller.TurnOn(d.ID))
		r.attempt(d.ID, "set_brightness", r.controller.SetBrightness(d.ID, morningBrightness))
	}
	for _, d := range r.controller.Devices(typeThermostat) {
		r.attempt(d.ID, "set_temperature", r.controller.SetTemperature(d.ID, comfortTemperature))
	}
	r.logger.Info("good morning routine activated")
}

// GoodNight turns every light off, locks every lock and lowers
// thermostats for the night.
func (r *Routines) GoodNight() {
	r.shutDown(nightTemperature)
	r.logger.Info("good night routine activated")
}

// AwayMode secures the home for an empty house: lights off, doors
// locked, thermostats at an energy-saving setpoint.
func (r *Routines) AwayMode() {
	r.shutDown(awayTemperature)
	r.logger.Info("away mode activated")
}

// shutDown is the shared sweep behind GoodNight and AwayMode; only the
// thermostat setpoint differs.
func (r *Routines) shutDown(temperature float64) {
	for _, d := range r.controller.Devices(typeLight) {
		r.attempt(d.ID, "turn_off", r.controller.TurnOff(d.ID))
	}
	for _, d := range r.controller.Devices(typeLock) {
		r.attempt(d.ID, "lock", r.controller.Lock(d.ID))
	}
	for _, d := range r.controller.Devices(typeThermostat) {
		r.attempt(d.ID, "set_temperature", r.controller.SetTemperature(d.ID, temperature))
	}
}

// attempt logs a failed command and moves on; routines are best-effort.
func (r *Routines) attempt(id, command string, err error) {
	if err != nil {
		r.logger.Warn("routine command failed", "id", id, "command", command, "error", err)
	}
}
