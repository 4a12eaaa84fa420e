package sender

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"encoder-host/config"
	"encoder-host/driver"
)

func testConfig() *config.Config {
	// Zero delays keep tests fast; timing is a hardware concern.
	return &config.Config{Port: "/dev/ttyTEST", BaudRate: 9600}
}

func newTestSender(t *testing.T) (*Sender, *driver.MockPort, *bytes.Buffer) {
	t.Helper()
	mock := driver.NewMockPort()
	var out bytes.Buffer
	s := New(testConfig())
	s.Out = &out
	s.Open = func(portName string, baudRate int) (driver.Port, error) {
		require.Equal(t, "/dev/ttyTEST", portName)
		require.Equal(t, 9600, baudRate)
		return mock, nil
	}
	return s, mock, &out
}

func TestSendWireBytes(t *testing.T) {
	s, mock, out := newTestSender(t)

	require.NoError(t, s.Send("AB"))
	require.Equal(t, []byte{0x41, 0x42, 0x0A}, mock.Written())
	require.True(t, mock.Closed())

	require.Contains(t, out.String(), "Char 'A' (0x41): High=0x4, Low=0x1")
	require.Contains(t, out.String(), "Sent terminator (newline)")
}

func TestSendEmptyIsNoOp(t *testing.T) {
	s := New(testConfig())
	opened := false
	s.Out = new(bytes.Buffer)
	s.Open = func(string, int) (driver.Port, error) {
		opened = true
		return driver.NewMockPort(), nil
	}

	require.NoError(t, s.Send(""))
	require.False(t, opened, "empty input must not open the port")
	require.Equal(t, StateIdle, s.Machine.GetState())
}

func TestSendOpenFailure(t *testing.T) {
	s := New(testConfig())
	s.Out = new(bytes.Buffer)
	s.Open = func(string, int) (driver.Port, error) {
		return nil, errors.New("no such device")
	}

	err := s.Send("AB")
	require.Error(t, err)
	require.True(t, IsConnError(err))

	var ce *ConnError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "/dev/ttyTEST", ce.Port)
	require.Equal(t, StateError, s.Machine.GetState())
	require.Equal(t, 0, s.Machine.GetStatusInfo().BytesSent)
}

func TestSendProgressCallback(t *testing.T) {
	s, _, _ := newTestSender(t)

	var got []Progress
	s.OnProgress = func(p Progress) { got = append(got, p) }

	require.NoError(t, s.Send("AB"))
	require.Len(t, got, 2) // payload bytes only, not the terminator
	require.Equal(t, byte(0x41), got[0].Pair.Byte)
	require.Equal(t, byte(0x4), got[0].Pair.High)
	require.Equal(t, byte(0x1), got[0].Pair.Low)
	require.Equal(t, 1, got[1].Index)
}

func TestSendMachineLifecycle(t *testing.T) {
	s, _, _ := newTestSender(t)

	var states []string
	s.Machine.SetCallback(func(info StatusInfo) {
		if len(states) == 0 || states[len(states)-1] != info.State {
			states = append(states, info.State)
		}
	})

	require.NoError(t, s.Send("A"))
	require.Equal(t, []string{
		"OPENING", "SETTLING", "SENDING", "TERMINATING", "DONE",
	}, states)

	info := s.Machine.GetStatusInfo()
	require.Equal(t, 2, info.BytesSent) // one payload byte plus terminator
}

func TestSendSimulatedEncode(t *testing.T) {
	s, mock, _ := newTestSender(t)

	require.NoError(t, s.Send("A"))

	// The mock MCU ran two encode cycles for 'A' and none for the terminator.
	steps := mock.Steps()
	require.Len(t, steps, 2)
	require.EqualValues(t, 0x4, steps[0].Nibble)
	require.EqualValues(t, 0x1, steps[1].Nibble)
}
