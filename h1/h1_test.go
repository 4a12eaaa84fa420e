package h1

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyndrome(t *testing.T) {
	require.EqualValues(t, 0, Syndrome(0))

	// A single bit at position j has syndrome j+1: column j+1 of the
	// H1 matrix is the binary representation of j+1.
	for j := 0; j < BusWidth; j++ {
		require.EqualValues(t, j+1, Syndrome(1<<j), "bit %d", j)
	}

	// Syndrome is linear under XOR.
	require.Equal(t, Syndrome(0x0005)^Syndrome(0x0600), Syndrome(0x0605))
}

func TestMinimalW(t *testing.T) {
	for target := uint8(0); target <= 0x0F; target++ {
		w := MinimalW(target)
		require.LessOrEqual(t, bits.OnesCount16(w), 1)
		require.Equal(t, target, Syndrome(w), "target %d", target)
	}
}

func TestEncoderStep(t *testing.T) {
	var enc Encoder
	for n := uint8(0); n <= 0x0F; n++ {
		step := enc.Encode(n)
		require.Equal(t, n, Syndrome(step.Bus), "nibble %d", n)
		require.Equal(t, step.Bus, enc.Bus())
	}
}

func TestEncodeByte(t *testing.T) {
	var enc Encoder

	// 'A' = 0x41: high nibble 0x4 first, then low nibble 0x1.
	steps := enc.EncodeByte('A')
	require.Len(t, steps, 2)
	require.EqualValues(t, 0x4, steps[0].Nibble)
	require.EqualValues(t, 0x1, steps[1].Nibble)
	require.EqualValues(t, 0x1, Syndrome(enc.Bus()))

	// Terminators produce no encode cycles and leave the bus alone.
	before := enc.Bus()
	require.Empty(t, enc.EncodeByte('\n'))
	require.Empty(t, enc.EncodeByte('\r'))
	require.Equal(t, before, enc.Bus())
}

func TestTrace(t *testing.T) {
	steps := Trace("AB\n")
	require.Len(t, steps, 4) // two bytes, two nibbles each, none for '\n'

	// Final bus must carry the last nibble's syndrome: 'B'=0x42, low 0x2.
	require.EqualValues(t, 0x2, Syndrome(steps[len(steps)-1].Bus))
}
