package sender

import (
	"sync"
	"time"
)

// State represents the current phase of a send operation
type State int

const (
	StateIdle State = iota
	StateOpening
	StateSettling
	StateSending
	StateTerminating
	StateDone
	StateError
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateOpening:
		return "OPENING"
	case StateSettling:
		return "SETTLING"
	case StateSending:
		return "SENDING"
	case StateTerminating:
		return "TERMINATING"
	case StateDone:
		return "DONE"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StatusInfo contains detailed status information for broadcasting
type StatusInfo struct {
	State     string    `json:"state"`
	Message   string    `json:"message"`
	Port      string    `json:"port"`
	BytesSent int       `json:"bytes_sent"`
	StartedAt time.Time `json:"started_at,omitempty"`
	ElapsedMs int64     `json:"elapsed_ms"`
	LastError string    `json:"last_error,omitempty"`
}

// StateChangeCallback is called when state changes
type StateChangeCallback func(info StatusInfo)

// Machine tracks send state with thread-safety. One send runs at a time;
// observers (console, WebSocket clients) attach via the callback.
type Machine struct {
	mu sync.RWMutex

	currentState State
	stateStarted time.Time
	port         string
	bytesSent    int
	lastError    string

	onStateChange StateChangeCallback
}

// NewMachine creates a new state machine
func NewMachine() *Machine {
	return &Machine{currentState: StateIdle}
}

// SetCallback sets the state change callback
func (m *Machine) SetCallback(cb StateChangeCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChange = cb
}

// GetState returns the current state
func (m *Machine) GetState() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState
}

// GetStatusInfo returns the current status information
func (m *Machine) GetStatusInfo() StatusInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statusInfoLocked()
}

func (m *Machine) statusInfoLocked() StatusInfo {
	info := StatusInfo{
		State:     m.currentState.String(),
		Port:      m.port,
		BytesSent: m.bytesSent,
		LastError: m.lastError,
	}

	if m.currentState != StateIdle {
		info.StartedAt = m.stateStarted
		info.ElapsedMs = time.Since(m.stateStarted).Milliseconds()
	}

	switch m.currentState {
	case StateIdle:
		info.Message = "Ready to send"
	case StateOpening:
		info.Message = "Opening serial port..."
	case StateSettling:
		info.Message = "Waiting for hardware to settle..."
	case StateSending:
		info.Message = "Transmitting bytes..."
	case StateTerminating:
		info.Message = "Sending batch terminator..."
	case StateDone:
		info.Message = "Batch sent"
	case StateError:
		info.Message = "Send failed: " + m.lastError
	}

	return info
}

// Begin starts tracking a new send operation on the named port
func (m *Machine) Begin(port string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.port = port
	m.bytesSent = 0
	m.lastError = ""
	m.setStateLocked(StateOpening)
}

// TransitionTo changes to a new state
func (m *Machine) TransitionTo(newState State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setStateLocked(newState)
}

// TransitionToError transitions to error state with a message
func (m *Machine) TransitionToError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastError = err
	m.setStateLocked(StateError)
}

// AddBytes records sent bytes without changing state
func (m *Machine) AddBytes(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bytesSent += n
	if m.onStateChange != nil {
		m.onStateChange(m.statusInfoLocked())
	}
}

// Reset returns the state machine to idle
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.port = ""
	m.bytesSent = 0
	m.stateStarted = time.Time{}
	m.setStateLocked(StateIdle)
}

func (m *Machine) setStateLocked(s State) {
	m.currentState = s
	m.stateStarted = time.Now()
	if s != StateError {
		m.lastError = ""
	}
	if m.onStateChange != nil {
		m.onStateChange(m.statusInfoLocked())
	}
}
