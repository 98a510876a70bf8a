package gpiodlatch

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
)

type fakeLine struct {
	values []int
	err    error
	closed bool
}

func (f *fakeLine) SetValue(v int) error {
	if f.err != nil {
		return f.err
	}
	f.values = append(f.values, v)
	return nil
}

func (f *fakeLine) Close() error {
	f.closed = true
	return nil
}

func TestOut(t *testing.T) {
	f := &fakeLine{}
	g := &Latch{name: "gpiochip0:8", l: f}

	if err := g.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := g.Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if len(f.values) != 2 || f.values[0] != 0 || f.values[1] != 1 {
		t.Errorf("values = %v, want [0 1]", f.values)
	}
	if g.String() != "gpiochip0:8" {
		t.Errorf("String() = %q", g.String())
	}
}

func TestOutError(t *testing.T) {
	boom := errors.New("boom")
	g := &Latch{name: "gpiochip0:8", l: &fakeLine{err: boom}}
	if err := g.Out(gpio.High); !errors.Is(err, boom) {
		t.Errorf("Out() error = %v, want %v", err, boom)
	}
}

func TestClose(t *testing.T) {
	f := &fakeLine{}
	g := &Latch{l: f}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	if !f.closed {
		t.Error("line not closed")
	}
}
