package sender

import (
	"errors"
	"fmt"
)

// ConnError reports a failure to open the serial link: port missing, busy,
// or misconfigured. It is the one error kind callers are expected to
// distinguish; everything else is reported as-is.
type ConnError struct {
	Port string
	Err  error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("serial port error on %s: %v", e.Port, e.Err)
}

func (e *ConnError) Unwrap() error {
	return e.Err
}

// IsConnError reports whether err is (or wraps) a ConnError.
func IsConnError(err error) bool {
	var ce *ConnError
	return errors.As(err, &ce)
}
