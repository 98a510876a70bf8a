package max7219

import (
	"fmt"
	"iter"
)

// Register is an addressable register of a MAX7219/MAX7221 chip.
// The value of each constant is the address byte sent on the wire.
type Register byte

const (
	NoOp        Register = 0x00
	Digit0      Register = 0x01
	Digit1      Register = 0x02
	Digit2      Register = 0x03
	Digit3      Register = 0x04
	Digit4      Register = 0x05
	Digit5      Register = 0x06
	Digit6      Register = 0x07
	Digit7      Register = 0x08
	DecodeMode  Register = 0x09
	Intensity   Register = 0x0A
	ScanLimit   Register = 0x0B
	Shutdown    Register = 0x0C
	DisplayTest Register = 0x0F
)

// NumDigits is the number of digit (row) registers of a chip.
const NumDigits = 8

// Address returns the one-byte address of the register.
func (r Register) Address() byte {
	return byte(r)
}

// Valid reports whether r is one of the chip's registers.
// 0x0D and 0x0E are unused by the chip, as is everything above 0x0F.
func (r Register) Valid() bool {
	return r <= Shutdown || r == DisplayTest
}

// String returns the register name.
func (r Register) String() string {
	switch {
	case r == NoOp:
		return "NoOp"
	case r >= Digit0 && r <= Digit7:
		return fmt.Sprintf("Digit%d", r-Digit0)
	case r == DecodeMode:
		return "DecodeMode"
	case r == Intensity:
		return "Intensity"
	case r == ScanLimit:
		return "ScanLimit"
	case r == Shutdown:
		return "Shutdown"
	case r == DisplayTest:
		return "DisplayTest"
	default:
		return fmt.Sprintf("Register(0x%02X)", byte(r))
	}
}

// DigitRegister returns the register of digit (row) n, 0 <= n < NumDigits.
func DigitRegister(n int) (Register, error) {
	if n < 0 || n >= NumDigits {
		return NoOp, fmt.Errorf("%w: %d", ErrInvalidDigit, n)
	}
	return Digit0 + Register(n), nil
}

// Digits yields the eight digit registers, Digit0 first.
// The sequence can be ranged over any number of times.
func Digits() iter.Seq[Register] {
	return func(yield func(Register) bool) {
		for r := Digit0; r <= Digit7; r++ {
			if !yield(r) {
				return
			}
		}
	}
}
