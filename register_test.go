package max7219

import (
	"errors"
	"testing"
)

func TestRegisterAddress(t *testing.T) {
	tests := []struct {
		reg  Register
		want byte
	}{
		{NoOp, 0x00},
		{Digit0, 0x01},
		{Digit1, 0x02},
		{Digit2, 0x03},
		{Digit3, 0x04},
		{Digit4, 0x05},
		{Digit5, 0x06},
		{Digit6, 0x07},
		{Digit7, 0x08},
		{DecodeMode, 0x09},
		{Intensity, 0x0A},
		{ScanLimit, 0x0B},
		{Shutdown, 0x0C},
		{DisplayTest, 0x0F},
	}

	for _, tt := range tests {
		t.Run(tt.reg.String(), func(t *testing.T) {
			if got := tt.reg.Address(); got != tt.want {
				t.Errorf("Address() = 0x%02X, want 0x%02X", got, tt.want)
			}
			if !tt.reg.Valid() {
				t.Error("Valid() = false, want true")
			}
		})
	}
}

func TestRegisterInvalid(t *testing.T) {
	for _, r := range []Register{0x0D, 0x0E, 0x10, 0xFF} {
		if r.Valid() {
			t.Errorf("Register(0x%02X).Valid() = true, want false", byte(r))
		}
	}
	if got, want := Register(0x0D).String(), "Register(0x0D)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRegisterString(t *testing.T) {
	tests := []struct {
		reg  Register
		want string
	}{
		{NoOp, "NoOp"},
		{Digit0, "Digit0"},
		{Digit7, "Digit7"},
		{DecodeMode, "DecodeMode"},
		{Intensity, "Intensity"},
		{ScanLimit, "ScanLimit"},
		{Shutdown, "Shutdown"},
		{DisplayTest, "DisplayTest"},
	}

	for _, tt := range tests {
		if got := tt.reg.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDigits(t *testing.T) {
	want := []Register{Digit0, Digit1, Digit2, Digit3, Digit4, Digit5, Digit6, Digit7}

	// The sequence must be restartable.
	for pass := 0; pass < 2; pass++ {
		var got []Register
		for r := range Digits() {
			got = append(got, r)
		}
		if len(got) != len(want) {
			t.Fatalf("pass %d: got %d registers, want %d", pass, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("pass %d: Digits()[%d] = %v, want %v", pass, i, got[i], want[i])
			}
		}
	}
}

func TestDigitsEarlyStop(t *testing.T) {
	n := 0
	for r := range Digits() {
		n++
		if r == Digit2 {
			break
		}
	}
	if n != 3 {
		t.Errorf("visited %d registers, want 3", n)
	}
}

func TestDigitRegister(t *testing.T) {
	for n := 0; n < NumDigits; n++ {
		r, err := DigitRegister(n)
		if err != nil {
			t.Fatalf("DigitRegister(%d) error = %v", n, err)
		}
		if r != Digit0+Register(n) {
			t.Errorf("DigitRegister(%d) = %v", n, r)
		}
	}
	for _, n := range []int{-1, 8, 100} {
		if _, err := DigitRegister(n); !errors.Is(err, ErrInvalidDigit) {
			t.Errorf("DigitRegister(%d) error = %v, want ErrInvalidDigit", n, err)
		}
	}
}
