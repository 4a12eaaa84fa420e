package driver

import (
	"runtime"
	"strings"

	"go.bug.st/serial"

	"encoder-host/logger"
)

// Detector finds candidate MCU ports. The encoder MCU never transmits on
// this link, so there is no handshake to probe with; the only usable signal
// is whether a candidate port can be opened at all.
type Detector struct {
	BaudRate int
}

func NewDetector(baudRate int) *Detector {
	return &Detector{BaudRate: baudRate}
}

// ListPorts returns all candidate serial ports on this machine, filtered by
// OS naming conventions.
func (d *Detector) ListPorts() []string {
	ports, err := serial.GetPortsList()
	if err != nil {
		logger.Error("Failed to list serial ports: %v", err)
		return nil
	}
	return FilterPorts(ports)
}

// Detect opens each candidate port in turn and returns the first one that
// opens successfully, or "" when none does.
func (d *Detector) Detect() string {
	candidates := d.ListPorts()
	if len(candidates) == 0 {
		logger.Info("No candidate ports found")
		return ""
	}
	logger.Debug("Found %d candidate ports: %v", len(candidates), candidates)

	for _, name := range candidates {
		if d.probePort(name) {
			logger.Info("Openable port found: %s", name)
			return name
		}
	}

	logger.Info("No openable port found")
	return ""
}

// probePort checks that a port can be opened and released.
func (d *Detector) probePort(name string) bool {
	port, err := OpenPort(name, d.BaudRate)
	if err != nil {
		logger.Debug("Failed to open %s: %v", name, err)
		return false
	}
	port.Close()
	return true
}

// FilterPorts filters port names based on OS conventions.
func FilterPorts(ports []string) []string {
	var filtered []string
	seen := make(map[string]bool)

	for _, port := range ports {
		if seen[port] {
			continue
		}
		seen[port] = true

		// Always include TCP endpoints
		if strings.HasPrefix(port, "tcp://") {
			filtered = append(filtered, port)
			continue
		}

		// Windows: COM ports
		if runtime.GOOS == "windows" {
			if strings.HasPrefix(strings.ToUpper(port), "COM") {
				filtered = append(filtered, port)
			}
			continue
		}

		// macOS/Linux: filter by name
		lower := strings.ToLower(port)
		if strings.Contains(lower, "bluetooth") {
			continue
		}

		if strings.Contains(lower, "ttyusb") ||
			strings.Contains(lower, "ttyacm") ||
			strings.Contains(lower, "usbserial") ||
			strings.Contains(lower, "cu.") ||
			strings.Contains(lower, "ttys") {
			filtered = append(filtered, port)
		}
	}

	return filtered
}
