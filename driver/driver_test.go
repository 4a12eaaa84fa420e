package driver

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterPorts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("filter conventions differ on windows")
	}

	in := []string{
		"/dev/ttyUSB0",
		"/dev/ttyUSB0", // duplicate
		"/dev/ttyACM1",
		"/dev/cu.usbserial-2100",
		"/dev/cu.Bluetooth-Incoming-Port",
		"tcp://localhost:9610",
		"/dev/random",
	}
	out := FilterPorts(in)

	require.Equal(t, []string{
		"/dev/ttyUSB0",
		"/dev/ttyACM1",
		"/dev/cu.usbserial-2100",
		"tcp://localhost:9610",
	}, out)
}

func TestMockPortRecordsWrites(t *testing.T) {
	m := NewMockPort()

	n, err := m.Write([]byte{0x41, 0x42})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = m.Write([]byte{0x0A})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.Equal(t, []byte{0x41, 0x42, 0x0A}, m.Written())

	// Two encode cycles per payload byte, none for the terminator.
	require.Len(t, m.Steps(), 4)
}

func TestMockPortRead(t *testing.T) {
	m := NewMockPort()

	// The MCU never transmits back.
	buf := make([]byte, 8)
	n, err := m.Read(buf)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestMockPortClose(t *testing.T) {
	m := NewMockPort()
	require.NoError(t, m.Close())
	require.True(t, m.Closed())

	_, err := m.Write([]byte{0x41})
	require.Error(t, err)

	_, err = m.Read(make([]byte, 1))
	require.Error(t, err)
}
