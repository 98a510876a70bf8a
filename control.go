package max7219

import (
	"fmt"
)

// MaxIntensity is the brightest Intensity register value.
const MaxIntensity = 0x0F

// Decode selects, one bit per digit, which digits use Code B font decoding.
type Decode byte

const (
	// DecodeNone drives the segments (or matrix columns) from the raw data bits.
	DecodeNone Decode = 0x00
	// DecodeB decodes every digit with the Code B font.
	DecodeB Decode = 0xFF
)

// Opts is the power-up configuration applied by Init.
type Opts struct {
	Intensity byte   // 0 to MaxIntensity (default: 8)
	ScanLimit int    // digits scanned, 1 to 8 (default: 8)
	Decode    Decode // default: DecodeNone
}

// Init brings every chip of the chain to a known state: display test off,
// shut down, scan limit, decode mode and intensity set, digits cleared and
// finally powered on.
//
// opts can be nil to use defaults.
func (d *Dev) Init(opts *Opts) error {
	if opts == nil {
		opts = &Opts{Intensity: 0x08, ScanLimit: NumDigits, Decode: DecodeNone}
	}
	if err := checkIntensity(opts.Intensity); err != nil {
		return err
	}
	if err := checkScanLimit(opts.ScanLimit); err != nil {
		return err
	}

	steps := []func() error{
		func() error { return d.TestAll(false) },
		d.PowerOff,
		func() error { return d.SetScanLimitAll(opts.ScanLimit) },
		func() error { return d.SetDecodeModeAll(opts.Decode) },
		func() error { return d.SetIntensityAll(opts.Intensity) },
		d.ClearAll,
		d.PowerOn,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// writeAll sends the same register and data to every device.
func (d *Dev) writeAll(reg Register, data byte) error {
	return d.WriteAllRegisters(Broadcast(d.devices, reg, data))
}

func boolByte(b bool) byte {
	if b {
		return 0x01
	}
	return 0x00
}

// PowerOn takes every device out of shutdown mode.
func (d *Dev) PowerOn() error {
	return d.writeAll(Shutdown, 0x01)
}

// PowerOff puts every device in shutdown mode. Register contents are kept.
func (d *Dev) PowerOff() error {
	return d.writeAll(Shutdown, 0x00)
}

// PowerOnDevice takes the device at index out of shutdown mode.
func (d *Dev) PowerOnDevice(index int) error {
	return d.WriteDeviceRegister(index, Shutdown, 0x01)
}

// PowerOffDevice puts the device at index in shutdown mode.
func (d *Dev) PowerOffDevice(index int) error {
	return d.WriteDeviceRegister(index, Shutdown, 0x00)
}

// TestAll turns display test mode (all LEDs on) on or off for every device.
func (d *Dev) TestAll(on bool) error {
	return d.writeAll(DisplayTest, boolByte(on))
}

// TestDevice turns display test mode on or off for the device at index.
func (d *Dev) TestDevice(index int, on bool) error {
	return d.WriteDeviceRegister(index, DisplayTest, boolByte(on))
}

// ClearAll zeroes the digit registers of every device, one transaction per
// digit.
func (d *Dev) ClearAll() error {
	for r := range Digits() {
		if err := d.writeAll(r, 0x00); err != nil {
			return err
		}
	}
	return nil
}

// ClearDisplay zeroes the digit registers of the device at index.
func (d *Dev) ClearDisplay(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	for r := range Digits() {
		if err := d.WriteDeviceRegister(index, r, 0x00); err != nil {
			return err
		}
	}
	return nil
}

func checkIntensity(v byte) error {
	if v > MaxIntensity {
		return fmt.Errorf("%w: 0x%02X, must be at most 0x%02X", ErrInvalidIntensity, v, MaxIntensity)
	}
	return nil
}

// SetIntensityAll sets the brightness of every device, 0 to MaxIntensity.
func (d *Dev) SetIntensityAll(v byte) error {
	if err := checkIntensity(v); err != nil {
		return err
	}
	return d.writeAll(Intensity, v)
}

// SetIntensity sets the brightness of the device at index, 0 to MaxIntensity.
func (d *Dev) SetIntensity(index int, v byte) error {
	if err := checkIntensity(v); err != nil {
		return err
	}
	return d.WriteDeviceRegister(index, Intensity, v)
}

func checkScanLimit(n int) error {
	if n < 1 || n > NumDigits {
		return fmt.Errorf("%w: %d, must be between 1 and %d", ErrInvalidScanLimit, n, NumDigits)
	}
	return nil
}

// SetScanLimitAll sets how many digits (1 to 8) every device scans.
func (d *Dev) SetScanLimitAll(n int) error {
	if err := checkScanLimit(n); err != nil {
		return err
	}
	// The chip counts from zero.
	return d.writeAll(ScanLimit, byte(n-1))
}

// SetDeviceScanLimit sets how many digits (1 to 8) the device at index scans.
func (d *Dev) SetDeviceScanLimit(index int, n int) error {
	if err := checkScanLimit(n); err != nil {
		return err
	}
	return d.WriteDeviceRegister(index, ScanLimit, byte(n-1))
}

// SetDecodeModeAll sets the decode mode of every device.
func (d *Dev) SetDecodeModeAll(m Decode) error {
	return d.writeAll(DecodeMode, byte(m))
}

// SetDecodeMode sets the decode mode of the device at index.
func (d *Dev) SetDecodeMode(index int, m Decode) error {
	return d.WriteDeviceRegister(index, DecodeMode, byte(m))
}

// WriteDigitAll writes value to digit (row) n, 0 to 7, of every device.
func (d *Dev) WriteDigitAll(n int, value byte) error {
	r, err := DigitRegister(n)
	if err != nil {
		return err
	}
	return d.writeAll(r, value)
}

// WriteDigit writes value to digit (row) n, 0 to 7, of the device at index.
func (d *Dev) WriteDigit(index, n int, value byte) error {
	r, err := DigitRegister(n)
	if err != nil {
		return err
	}
	return d.WriteDeviceRegister(index, r, value)
}
