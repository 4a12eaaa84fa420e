// Package h1 models the stateful H1-type bus encoder running on the
// receiving MCU, so the host can preview the bus states a batch will drive.
//
// The H1 check matrix is 4x15 and is never stored: column i (1-based,
// i = 1..15) is the 4-bit binary representation of i. The syndrome of a
// 15-bit bus state is the XOR of the column indices of its set bits. Every
// nonzero target syndrome has exactly one weight-1 solution (the bit at
// position target-1), so the minimal-weight update is deterministic.
package h1

import "encoder-host/nibble"

const (
	// BusWidth is the number of bus lines driven by the encoder.
	BusWidth = 15

	// BusMask keeps bus states within bits 0..14.
	BusMask uint16 = 0x7FFF
)

// Syndrome computes S = H * x^T for a 15-bit bus state: the XOR of the
// 1-based column indices of every set bit.
func Syndrome(bus uint16) uint8 {
	var s uint8
	bus &= BusMask
	for col := uint8(1); col <= BusWidth; col++ {
		if bus&1 != 0 {
			s ^= col
		}
		bus >>= 1
	}
	return s
}

// MinimalW returns the minimal Hamming-weight vector w with
// Syndrome(w) == target. For target 0 that is the zero vector; for any
// other target it is the single bit at position target-1.
func MinimalW(target uint8) uint16 {
	target &= 0x0F
	if target == 0 {
		return 0
	}
	return 1 << (target - 1)
}

// Step records one encode cycle: the nibble fed in and the bus transition
// it produced.
type Step struct {
	Nibble uint8
	W      uint16
	Bus    uint16
}

// Encoder tracks the MCU's 15-bit bus state across nibbles.
type Encoder struct {
	bus uint16
}

// Bus returns the current bus state.
func (e *Encoder) Bus() uint16 { return e.bus }

// Reset clears the bus state, as the MCU does at power-up.
func (e *Encoder) Reset() { e.bus = 0 }

// Encode processes one 4-bit syndrome: S_target = S_new XOR S_old, then the
// minimal-weight w for S_target is XOR-ed into the bus. After Encode(n) the
// bus syndrome equals n.
func (e *Encoder) Encode(n uint8) Step {
	n &= 0x0F
	target := n ^ Syndrome(e.bus)
	w := MinimalW(target)
	e.bus = (e.bus ^ w) & BusMask
	return Step{Nibble: n, W: w, Bus: e.bus}
}

// EncodeByte runs the two encode cycles one transmitted byte triggers,
// high nibble first. Terminator bytes mark a batch boundary and produce
// no cycles.
func (e *Encoder) EncodeByte(b byte) []Step {
	if nibble.IsTerminator(b) {
		return nil
	}
	high, low := nibble.Split(b)
	return []Step{e.Encode(high), e.Encode(low)}
}

// Trace returns the full step sequence an MCU with a fresh encoder would
// run for one batch of text.
func Trace(text string) []Step {
	var enc Encoder
	var steps []Step
	for _, b := range []byte(text) {
		steps = append(steps, enc.EncodeByte(b)...)
	}
	return steps
}
