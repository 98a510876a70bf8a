package spibus

import (
	"errors"
	"testing"

	"github.com/flavioheleno/max7219"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
)

// levels records every level driven on the latch.
type levels struct {
	out []gpio.Level
	err error
}

func (l *levels) Out(level gpio.Level) error {
	if l.err != nil {
		return l.err
	}
	l.out = append(l.out, level)
	return nil
}

func TestNewFrequency(t *testing.T) {
	tests := []struct {
		name    string
		opts    *Opts
		wantErr bool
	}{
		{"nil options (uses defaults)", nil, false},
		{"1MHz", &Opts{Hz: physic.MegaHertz}, false},
		{"10MHz", &Opts{Hz: 10 * physic.MegaHertz}, false},
		{"too fast", &Opts{Hz: 20 * physic.MegaHertz}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &spitest.Playback{}
			_, err := New(p, nil, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestChainTransaction(t *testing.T) {
	p := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				{W: []byte{0x00, 0x00, 0x0C, 0x00, 0x00, 0x00}},
				{W: []byte{0x0A, 0x05, 0x0A, 0x05, 0x0A, 0x05}},
			},
		},
	}
	load := &gpiotest.Pin{N: "LOAD", L: gpio.High}
	b, err := New(p, load, nil)
	if err != nil {
		t.Fatal(err)
	}

	d, err := max7219.New(b).WithDeviceCount(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.PowerOffDevice(1); err != nil {
		t.Fatal(err)
	}
	if err := d.SetIntensityAll(0x05); err != nil {
		t.Fatal(err)
	}
	if load.L != gpio.High {
		t.Error("LOAD should be left high after a transaction")
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLatchSequence(t *testing.T) {
	p := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{{W: []byte{0x0C, 0x01}}},
		},
	}
	load := &levels{}
	b, err := New(p, load, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := b.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := b.Write([]byte{0x0C, 0x01}); err != nil {
		t.Fatal(err)
	}
	if err := b.End(); err != nil {
		t.Fatal(err)
	}
	want := []gpio.Level{gpio.Low, gpio.High}
	if len(load.out) != len(want) || load.out[0] != want[0] || load.out[1] != want[1] {
		t.Errorf("latch levels = %v, want %v", load.out, want)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNoLatch(t *testing.T) {
	p := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{{W: []byte{0x0F, 0x01}}},
		},
	}
	b, err := New(p, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := max7219.New(b).TestAll(true); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFramingErrors(t *testing.T) {
	b, err := New(&spitest.Playback{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Write([]byte{0, 0}); err == nil {
		t.Error("Write without Begin should fail")
	}
	if err := b.End(); err == nil {
		t.Error("End without Begin should fail")
	}
}

func TestLatchError(t *testing.T) {
	boom := errors.New("gpio: boom")
	b, err := New(&spitest.Playback{}, &levels{err: boom}, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = max7219.New(b).PowerOn()
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if !max7219.IsBusError(err) {
		t.Errorf("error = %v, want a bus error", err)
	}
}
