package max7219

import (
	"errors"
	"fmt"
)

// Validation errors. They are returned wrapped with the offending value,
// use errors.Is to test for them.
var (
	ErrInvalidDeviceIndex = errors.New("max7219: invalid device index")
	ErrInvalidDeviceCount = errors.New("max7219: invalid device count")
	ErrInvalidIntensity   = errors.New("max7219: invalid intensity")
	ErrInvalidScanLimit   = errors.New("max7219: invalid scan limit")
	ErrInvalidRegister    = errors.New("max7219: invalid register")
	ErrInvalidPairCount   = errors.New("max7219: pair count does not match device count")
	ErrInvalidDigit       = errors.New("max7219: invalid digit")
)

// BusError is a failure reported by the bus transport.
type BusError struct {
	// Op is the framing step that failed: "begin", "write" or "end".
	Op  string
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("max7219: bus %s: %v", e.Op, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// IsBusError returns true if err is, or wraps, a *BusError.
func IsBusError(err error) bool {
	var be *BusError
	return errors.As(err, &be)
}
