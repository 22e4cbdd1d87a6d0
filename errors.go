package monitor

import "errors"

var (
	// ErrNotConnected is returned when a send or poll is attempted
	// without a live serial handle.
	ErrNotConnected = errors.New("monitor: not connected")

	// ErrAlreadyConnected is returned by Connect when a handle is
	// already open.
	ErrAlreadyConnected = errors.New("monitor: already connected")

	// ErrInvalidPortName is returned when the requested port does not
	// match a known device pattern or is not present on the system.
	ErrInvalidPortName = errors.New("monitor: invalid or unavailable port name")

	// ErrInvalidInput is returned for malformed or out-of-range hex text
	// before any transport interaction occurs.
	ErrInvalidInput = errors.New("monitor: invalid input")

	// ErrEncoding is returned when a command carries values outside the
	// wire format's ranges. The encoder never truncates silently.
	ErrEncoding = errors.New("monitor: command value out of range")

	// ErrInvalidBuffer is returned for nil or empty write payloads.
	ErrInvalidBuffer = errors.New("monitor: invalid buffer")

	// ErrImageTooLarge is returned when a memory image does not fit in
	// the 64KB address space at the requested load address.
	ErrImageTooLarge = errors.New("monitor: image exceeds address space")
)
