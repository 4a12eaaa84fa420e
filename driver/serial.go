package driver

import (
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
)

// ============================================================================
// Serial Port (physical UART to the ADuC841)
// ============================================================================

// SerialPort wraps go.bug.st/serial for the MCU link.
type SerialPort struct {
	serial.Port
	portName string
}

var _ Port = (*SerialPort)(nil)

// openSerialPort opens a physical serial port at 8N1.
func openSerialPort(portName string, baudRate int) (Port, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, err
	}

	// The MCU is transmit-only from our side, but a stuck Read must not
	// block the process.
	if err := port.SetReadTimeout(100 * time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %v", err)
	}

	fmt.Printf("Serial port %s opened at %d bps (8N1)\n", portName, baudRate)
	return &SerialPort{Port: port, portName: portName}, nil
}

func (p *SerialPort) GetPortName() string {
	return p.portName
}

// ============================================================================
// Unified Open Function
// ============================================================================

// OpenPort opens the link to the MCU - either a physical serial port or a
// TCP endpoint (mock MCU, serial-over-TCP bridges).
// TCP addresses use the format "tcp://host:port".
// Serial ports: "COM5", "/dev/ttyUSB0", etc.
func OpenPort(portName string, baudRate int) (Port, error) {
	if strings.HasPrefix(portName, "tcp://") {
		addr := strings.TrimPrefix(portName, "tcp://")
		return OpenTCP(addr)
	}
	return openSerialPort(portName, baudRate)
}
