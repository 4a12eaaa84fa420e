package driver

import "io"

// Port is the serial link to the encoder MCU.
type Port interface {
	io.ReadWriteCloser
	ResetInputBuffer() error
}
