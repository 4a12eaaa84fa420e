package nibble

import (
	"fmt"
	"io"
	"strconv"
)

// DemoChars is the fixed demonstration string shown at startup.
const DemoChars = "ABCD01239!\n"

// DisplayChar returns a printable form of b for console output. Control
// bytes come back escaped ("'\\n'"), everything printable comes back quoted.
func DisplayChar(b byte) string {
	if b >= 0x20 && b < 0x7F {
		return "'" + string(b) + "'"
	}
	return strconv.QuoteRune(rune(b))
}

// WriteDemo prints the nibble split table for DemoChars to w. It runs once
// at startup, before the interactive loop, and touches no serial state.
func WriteDemo(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "Nibble Split Demonstration")
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "%-6s %-8s %-12s %-6s %-6s\n", "Char", "Hex", "Binary", "High", "Low")
	fmt.Fprintln(w, "----------------------------------------")

	for _, p := range Pairs(DemoChars) {
		fmt.Fprintf(w, "%-6s 0x%02X     %08b     0x%X    0x%X\n",
			DisplayChar(p.Byte), p.Byte, p.Byte, p.High, p.Low)
	}
	fmt.Fprintln(w)
}
