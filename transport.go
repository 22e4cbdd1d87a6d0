package monitor

import (
	"time"

	gobug "go.bug.st/serial"
)

// portHandle abstracts the subset of go.bug.st/serial.Port used by this
// package, so tests can substitute an in-memory transport.
type portHandle interface {
	SetReadTimeout(timeout time.Duration) error
	Write([]byte) (int, error)
	Read([]byte) (int, error)
	Close() error
}

// allow tests to override external dependencies
var (
	openPort = func(name string, mode *gobug.Mode) (portHandle, error) {
		return gobug.Open(name, mode)
	}
	getPortsList = gobug.GetPortsList
)

// AvailablePorts returns the serial device names detected on the system.
func AvailablePorts() ([]string, error) {
	ports, err := getPortsList()
	if err != nil {
		return nil, err
	}
	return ports, nil
}
