package max7219

import (
	"fmt"
)

// MaxDisplays is the longest supported chain.
const MaxDisplays = 8

// Bus is the serial transport the chain is wired to.
//
// One transaction is Begin, a single Write of the whole chain buffer, then
// End. End is what makes every chip latch the 16 bits sitting in its shift
// register, so it must not be called after a failed Write.
type Bus interface {
	Begin() error
	Write(w []byte) error
	End() error
}

// Pair is one (register, data) command for a single chip of the chain.
type Pair struct {
	Reg  Register
	Data byte
}

// noOpPair makes a chip ignore the current latch cycle.
var noOpPair = Pair{Reg: NoOp, Data: 0x00}

// Broadcast returns n copies of the same pair, ready for WriteAllRegisters.
func Broadcast(n int, reg Register, data byte) []Pair {
	pairs := make([]Pair, n)
	for i := range pairs {
		pairs[i] = Pair{Reg: reg, Data: data}
	}
	return pairs
}

// Dev is a chain of MAX7219 chips.
//
// Dev owns its Bus for its whole lifetime and is not safe for concurrent
// use.
type Dev struct {
	bus     Bus
	devices int
}

// New returns a chain of a single device on bus.
//
// No bus activity takes place; call Init or the individual setters to
// configure the chips.
func New(bus Bus) *Dev {
	return &Dev{bus: bus, devices: 1}
}

// WithDeviceCount sets the number of chained devices, 1 <= n <= MaxDisplays.
//
// On failure the device count is left unchanged.
func (d *Dev) WithDeviceCount(n int) (*Dev, error) {
	if n < 1 || n > MaxDisplays {
		return nil, fmt.Errorf("%w: %d, must be between 1 and %d", ErrInvalidDeviceCount, n, MaxDisplays)
	}
	d.devices = n
	return d, nil
}

// DeviceCount returns the number of chained devices.
func (d *Dev) DeviceCount() int {
	return d.devices
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("max7219.Dev{devices: %d}", d.devices)
}

// WriteAllRegisters sends pairs[i] to device i, all in one transaction.
//
// len(pairs) must equal DeviceCount. Use Broadcast to send the same
// command to every device.
func (d *Dev) WriteAllRegisters(pairs []Pair) error {
	if len(pairs) != d.devices {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidPairCount, len(pairs), d.devices)
	}
	for _, p := range pairs {
		if !p.Reg.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidRegister, p.Reg)
		}
	}
	return d.transact(pairs)
}

// WriteDeviceRegister writes data to reg of the device at index. Every
// other device receives a no-op and keeps its state.
func (d *Dev) WriteDeviceRegister(index int, reg Register, data byte) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	if !reg.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidRegister, reg)
	}
	pairs := make([]Pair, d.devices)
	for i := range pairs {
		pairs[i] = noOpPair
	}
	pairs[index] = Pair{Reg: reg, Data: data}
	return d.transact(pairs)
}

func (d *Dev) checkIndex(index int) error {
	if index < 0 || index >= d.devices {
		return fmt.Errorf("%w: %d, device count is %d", ErrInvalidDeviceIndex, index, d.devices)
	}
	return nil
}

// encode lays out pairs as address/data bytes, device 0 first.
func encode(pairs []Pair) []byte {
	w := make([]byte, 0, 2*len(pairs))
	for _, p := range pairs {
		w = append(w, p.Reg.Address(), p.Data)
	}
	return w
}

// transact sends pairs as a single framed bus transaction.
func (d *Dev) transact(pairs []Pair) error {
	w := encode(pairs)
	if err := d.bus.Begin(); err != nil {
		return &BusError{Op: "begin", Err: err}
	}
	if err := d.bus.Write(w); err != nil {
		// Ending the frame would latch a partial shift.
		return &BusError{Op: "write", Err: err}
	}
	if err := d.bus.End(); err != nil {
		return &BusError{Op: "end", Err: err}
	}
	return nil
}
