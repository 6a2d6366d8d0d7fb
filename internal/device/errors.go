package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrDeviceNotFound) {
//	    // handle not found case
//	}
var (
	// ErrDeviceNotFound is returned when a device ID does not exist.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrDeviceExists is returned when adding a device with an ID that
	// already exists. First discovery wins; callers treat this as a no-op.
	ErrDeviceExists = errors.New("device: already exists")

	// ErrInvalidDevice is returned when a device record is missing its ID.
	ErrInvalidDevice = errors.New("device: invalid")
)
