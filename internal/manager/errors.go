package manager

import "errors"

// Domain errors for the manager package.
//
// Use errors.Is() to check for these in calling code. Unknown-device
// failures surface the device package's sentinel:
//
//	if errors.Is(err, device.ErrDeviceNotFound) {
//	    // command targeted an unregistered device
//	}
var (
	// ErrMalformedPayload is returned when a message body cannot be parsed
	// as a JSON object. The event is dropped; the stream continues.
	ErrMalformedPayload = errors.New("manager: malformed payload")

	// ErrNilCallback is returned when registering a nil topic callback.
	ErrNilCallback = errors.New("manager: callback cannot be nil")
)
