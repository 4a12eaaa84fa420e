package sender

import (
	"fmt"
	"io"
	"os"
	"time"

	"encoder-host/config"
	"encoder-host/driver"
	"encoder-host/logger"
	"encoder-host/nibble"
)

// OpenFunc opens the link to the MCU. Tests substitute a mock.
type OpenFunc func(portName string, baudRate int) (driver.Port, error)

// Progress describes one transmitted byte.
type Progress struct {
	Index int
	Pair  nibble.Pair
}

// ProgressFunc observes per-byte progress. Observational only: the wire
// carries whole bytes regardless of what observers do with the split.
type ProgressFunc func(Progress)

// Sender transmits one batch of text at a time to the encoder MCU. The port
// is opened at the start of each Send and released before Send returns, on
// every path.
type Sender struct {
	Config  *config.Config
	Machine *Machine

	// Open defaults to driver.OpenPort.
	Open OpenFunc

	// Out receives operator-readable progress lines. Defaults to stdout.
	Out io.Writer

	// OnProgress, when set, is called after each transmitted byte.
	OnProgress ProgressFunc
}

// New creates a Sender bound to cfg.
func New(cfg *config.Config) *Sender {
	return &Sender{
		Config:  cfg,
		Machine: NewMachine(),
		Open:    driver.OpenPort,
		Out:     os.Stdout,
	}
}

// Send transmits text as raw bytes followed by the newline terminator.
// Empty text is a no-op: the port is never opened and nothing is written.
// Open failures come back as *ConnError with zero bytes written.
func (s *Sender) Send(text string) error {
	if text == "" {
		return nil
	}

	s.Machine.Begin(s.Config.Port)

	fmt.Fprintf(s.Out, "Connecting to %s at %d baud...\n", s.Config.Port, s.Config.BaudRate)
	port, err := s.Open(s.Config.Port, s.Config.BaudRate)
	if err != nil {
		cerr := &ConnError{Port: s.Config.Port, Err: err}
		s.Machine.TransitionToError(cerr.Error())
		logger.Batch(s.Config.Port, 0, "conn_error")
		return cerr
	}
	defer port.Close()

	// Hardware settling time before the first byte.
	s.Machine.TransitionTo(StateSettling)
	time.Sleep(s.Config.SettleAfterOpen)

	s.Machine.TransitionTo(StateSending)
	fmt.Fprintf(s.Out, "Sending: %q\n", text)

	pairs := nibble.Pairs(text)
	for i, p := range pairs {
		fmt.Fprintf(s.Out, "  Char %s (0x%02X): High=0x%X, Low=0x%X\n",
			nibble.DisplayChar(p.Byte), p.Byte, p.High, p.Low)

		if _, err := port.Write([]byte{p.Byte}); err != nil {
			werr := fmt.Errorf("write error: %v", err)
			s.Machine.TransitionToError(werr.Error())
			logger.Batch(s.Config.Port, i, "write_error")
			return werr
		}
		logger.Transmit(s.Config.Port, p.Byte, p.High, p.Low)
		s.Machine.AddBytes(1)

		if s.OnProgress != nil {
			s.OnProgress(Progress{Index: i, Pair: p})
		}

		// The MCU runs two full encode cycles per byte; give it time.
		time.Sleep(s.Config.DelayPerByte)
	}

	s.Machine.TransitionTo(StateTerminating)
	if _, err := port.Write([]byte{nibble.Terminator}); err != nil {
		werr := fmt.Errorf("write error: %v", err)
		s.Machine.TransitionToError(werr.Error())
		logger.Batch(s.Config.Port, len(pairs), "write_error")
		return werr
	}
	s.Machine.AddBytes(1)
	fmt.Fprintln(s.Out, "Sent terminator (newline)")

	s.Machine.TransitionTo(StateDone)
	logger.Batch(s.Config.Port, len(pairs)+1, "ok")
	fmt.Fprintln(s.Out, "Done.")
	return nil
}
