// Package spibus connects a MAX7219 chain to a periph.io SPI port.
//
// The chips latch their shift registers on the rising edge of LOAD (CS on
// the MAX7221). When a Latch is given it is driven low by Begin and high by
// End, so the whole chain buffer goes out between the two edges no matter
// how the SPI controller handles its own chip select. Without a Latch the
// controller's hardware chip select frames the single Tx of each
// transaction.
package spibus

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Latch is the LOAD/CS line of the chain. Any gpio.PinOut is a Latch.
type Latch interface {
	Out(l gpio.Level) error
}

// Opts is the SPI configuration.
type Opts struct {
	Hz   physic.Frequency // default: 10MHz, the chip's maximum
	Mode spi.Mode         // default: spi.Mode0
}

// Bus is a MAX7219 chain transport over SPI.
type Bus struct {
	c     conn.Conn
	load  Latch
	frame bool
}

// New connects to p with 8-bit words.
//
// load can be nil to rely on the controller's chip select.
// opts can be nil to use defaults.
func New(p spi.Port, load Latch, opts *Opts) (*Bus, error) {
	if opts == nil {
		opts = &Opts{}
	}
	hz := opts.Hz
	if hz == 0 {
		hz = 10 * physic.MegaHertz
	}
	if hz < 0 || hz > 10*physic.MegaHertz {
		return nil, fmt.Errorf("spibus: frequency %s out of range", hz)
	}
	c, err := p.Connect(hz, opts.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("spibus: %w", err)
	}
	return &Bus{c: c, load: load}, nil
}

// Begin opens a transaction, pulling the latch low.
func (b *Bus) Begin() error {
	if b.load != nil {
		if err := b.load.Out(gpio.Low); err != nil {
			return fmt.Errorf("spibus: failed to pull LOAD low: %w", err)
		}
	}
	b.frame = true
	return nil
}

// Write shifts w out in one SPI transfer.
func (b *Bus) Write(w []byte) error {
	if !b.frame {
		return errors.New("spibus: write outside of a transaction")
	}
	return b.c.Tx(w, nil)
}

// End closes the transaction. The rising edge of the latch makes every chip
// load its command.
func (b *Bus) End() error {
	if !b.frame {
		return errors.New("spibus: end without begin")
	}
	b.frame = false
	if b.load != nil {
		if err := b.load.Out(gpio.High); err != nil {
			return fmt.Errorf("spibus: failed to pull LOAD high: %w", err)
		}
	}
	return nil
}

// String returns a string representation of the bus.
func (b *Bus) String() string {
	if b.load == nil {
		return fmt.Sprintf("spibus.Bus{%s}", b.c)
	}
	return fmt.Sprintf("spibus.Bus{%s, %v}", b.c, b.load)
}
