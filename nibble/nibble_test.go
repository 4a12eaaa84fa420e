package nibble

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitJoin(t *testing.T) {
	for b := 0; b <= 0xFF; b++ {
		high, low := Split(byte(b))
		require.True(t, high <= 0x0F)
		require.True(t, low <= 0x0F)
		require.EqualValues(t, b, int(high)*16+int(low))
		require.Equal(t, byte(b), Join(high, low))
	}
}

func TestSplitKnown(t *testing.T) {
	testCases := []struct {
		b         byte
		high, low byte
	}{
		{'A', 0x4, 0x1},
		{'0', 0x3, 0x0},
		{'\n', 0x0, 0xA},
		{0x00, 0x0, 0x0},
		{0xFF, 0xF, 0xF},
	}
	for _, tc := range testCases {
		high, low := Split(tc.b)
		require.Equal(t, tc.high, high, "byte 0x%02X", tc.b)
		require.Equal(t, tc.low, low, "byte 0x%02X", tc.b)
	}
}

func TestEncode(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		expect []byte
	}{
		{"two chars", "AB", []byte{0x41, 0x42, 0x0A}},
		{"empty is nil", "", nil},
		{"single", "!", []byte{0x21, 0x0A}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, Encode(tc.text))
		})
	}
}

func TestPairsWideChars(t *testing.T) {
	// One Pair per UTF-8 byte, not per rune.
	pairs := Pairs("é") // 0xC3 0xA9
	require.Len(t, pairs, 2)
	require.Equal(t, byte(0xC3), pairs[0].Byte)
	require.Equal(t, byte(0xA9), pairs[1].Byte)
}

func TestIsTerminator(t *testing.T) {
	require.True(t, IsTerminator('\n'))
	require.True(t, IsTerminator('\r'))
	require.False(t, IsTerminator('A'))
}

func TestDisplayChar(t *testing.T) {
	require.Equal(t, "'A'", DisplayChar('A'))
	require.Equal(t, `'\n'`, DisplayChar('\n'))
	require.Equal(t, `'\x00'`, DisplayChar(0x00))
}

func TestWriteDemo(t *testing.T) {
	var buf bytes.Buffer
	WriteDemo(&buf)
	out := buf.String()

	// 'A' (0x41) must report High=0x4 Low=0x1.
	var aLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "'A'") {
			aLine = line
		}
	}
	require.NotEmpty(t, aLine)
	require.Contains(t, aLine, "0x41")
	require.Contains(t, aLine, "01000001")
	require.Regexp(t, `0x4\s+0x1`, aLine)
}
