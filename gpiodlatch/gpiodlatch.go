// Package gpiodlatch drives the LOAD/CS line of a MAX7219 chain through the
// Linux GPIO character device, for boards where periph.io has no pin driver
// or where the line lives on an expander chip.
package gpiodlatch

import (
	"fmt"

	"github.com/warthog618/gpiod"
	"periph.io/x/conn/v3/gpio"
)

// line is the part of *gpiod.Line the latch uses.
type line interface {
	SetValue(value int) error
	Close() error
}

// Latch is an output line usable as a spibus.Latch.
type Latch struct {
	name string
	l    line
	chip *gpiod.Chip
}

// Open requests offset on chip (e.g. "gpiochip0") as an output, initially
// high so the chain does not latch anything.
func Open(chip string, offset int) (*Latch, error) {
	c, err := gpiod.NewChip(chip, gpiod.WithConsumer("max7219"))
	if err != nil {
		return nil, fmt.Errorf("gpiodlatch: failed to open GPIO chip: %w", err)
	}
	l, err := c.RequestLine(offset, gpiod.AsOutput(1))
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("gpiodlatch: failed to request line %d: %w", offset, err)
	}
	return &Latch{name: fmt.Sprintf("%s:%d", chip, offset), l: l, chip: c}, nil
}

// Out drives the line.
func (g *Latch) Out(l gpio.Level) error {
	v := 0
	if l == gpio.High {
		v = 1
	}
	if err := g.l.SetValue(v); err != nil {
		return fmt.Errorf("gpiodlatch: failed to set %s: %w", g.name, err)
	}
	return nil
}

// Close releases the line and the chip.
func (g *Latch) Close() error {
	if err := g.l.Close(); err != nil {
		return fmt.Errorf("gpiodlatch: failed to close line: %w", err)
	}
	if g.chip != nil {
		if err := g.chip.Close(); err != nil {
			return fmt.Errorf("gpiodlatch: failed to close chip: %w", err)
		}
	}
	return nil
}

// String returns the chip and offset of the line.
func (g *Latch) String() string {
	return g.name
}
