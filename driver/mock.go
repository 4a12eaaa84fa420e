package driver

import (
	"io"
	"sync"

	"encoder-host/h1"
)

// MockPort simulates the encoder MCU's UART. The real device is receive-only
// on this link, so Read never yields data; every written byte is recorded and
// run through a host-side model of the H1 encoder, the way the firmware's
// tx_handler feeds nibbles into its encode cycle.
type MockPort struct {
	mu      sync.Mutex
	written []byte
	steps   []h1.Step
	enc     h1.Encoder
	closed  bool
}

var _ Port = (*MockPort)(nil)

func NewMockPort() *MockPort {
	return &MockPort{}
}

func (m *MockPort) Read(p []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, io.EOF
	}
	// The MCU never transmits back to the host.
	return 0, nil
}

func (m *MockPort) Write(p []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, io.ErrClosedPipe
	}

	m.written = append(m.written, p...)
	for _, b := range p {
		m.steps = append(m.steps, m.enc.EncodeByte(b)...)
	}
	return len(p), nil
}

func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockPort) ResetInputBuffer() error {
	return nil
}

// Written returns a copy of every byte the host has written so far.
func (m *MockPort) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.written))
	copy(out, m.written)
	return out
}

// Steps returns the encode cycles the simulated MCU has run.
func (m *MockPort) Steps() []h1.Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]h1.Step, len(m.steps))
	copy(out, m.steps)
	return out
}

// Closed reports whether the host has released the port.
func (m *MockPort) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
