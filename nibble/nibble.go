package nibble

// Byte-to-nibble math shared by the host and the mock MCU.
//
// The receiving firmware splits every byte into two 4-bit halves and feeds
// each half to the H1 encoder as an independent syndrome, high nibble first.
// The host transmits whole bytes; splitting here is for display and for
// simulating the device, never for the wire.

// Terminator marks the end of a transmitted batch.
const Terminator byte = 0x0A

// Split returns the high (bits 7..4) and low (bits 3..0) nibbles of b.
func Split(b byte) (high, low byte) {
	return (b >> 4) & 0x0F, b & 0x0F
}

// Join reassembles a byte from its two nibbles.
func Join(high, low byte) byte {
	return (high&0x0F)<<4 | low&0x0F
}

// IsTerminator reports whether b ends a batch on the device side.
// The firmware treats both CR and LF as batch markers.
func IsTerminator(b byte) bool {
	return b == '\r' || b == '\n'
}

// Pair is one transmitted byte together with its nibble split.
type Pair struct {
	Byte byte
	High byte
	Low  byte
}

// Pairs maps text to the byte/nibble sequence the device will process.
// Text is UTF-8 encoded; multi-byte characters contribute one Pair per
// encoded byte.
func Pairs(text string) []Pair {
	raw := []byte(text)
	pairs := make([]Pair, len(raw))
	for i, b := range raw {
		h, l := Split(b)
		pairs[i] = Pair{Byte: b, High: h, Low: l}
	}
	return pairs
}

// Encode returns the exact wire bytes for one batch: the UTF-8 encoding of
// text followed by the terminator. Empty text encodes to nil; an empty batch
// is never transmitted, not even its terminator.
func Encode(text string) []byte {
	if text == "" {
		return nil
	}
	return append([]byte(text), Terminator)
}
