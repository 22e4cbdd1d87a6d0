package monitor

import (
	"fmt"
	"strings"
)

// isPortAvailable rejects names that cannot be serial devices before
// touching the transport, then checks the name against the system's
// port list.
func isPortAvailable(portName string) (bool, error) {
	if strings.Contains(portName, "..") {
		return false, fmt.Errorf("invalid port name: contains path traversal")
	}
	if !isValidPortPattern(portName) {
		return false, fmt.Errorf("port name doesn't match expected pattern: %s", portName)
	}

	ports, err := AvailablePorts()
	if err != nil {
		return false, err
	}
	for _, port := range ports {
		if port == portName {
			return true, nil
		}
	}
	return false, nil
}

// isValidPortPattern accepts COMx on Windows and /dev/tty* or /dev/cu*
// on Unix-likes.
func isValidPortPattern(portName string) bool {
	if strings.HasPrefix(portName, "COM") && len(portName) >= 4 && len(portName) <= 6 {
		return true
	}
	if strings.HasPrefix(portName, "/dev/tty") || strings.HasPrefix(portName, "/dev/cu") {
		return true
	}
	return false
}
