package matrix

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/flavioheleno/max7219"
	"periph.io/x/conn/v3/display"
)

// Display is a chain of 8x8 modules seen as a single image, 8 pixels high
// and 8 pixels wide per module.
//
// Draw only sends the rows that changed since the last successful Draw, one
// transaction per row for the whole chain.
type Display struct {
	d    *max7219.Dev
	rect image.Rectangle

	next *Mono // frame being drawn
	last *Mono // frame on the modules

	synced bool // last matches what the modules show
	halted bool
}

var _ display.Drawer = (*Display)(nil)

// NewDisplay wraps d. The chain length must not change afterwards.
func NewDisplay(d *max7219.Dev) *Display {
	rect := image.Rect(0, 0, 8*d.DeviceCount(), max7219.NumDigits)
	return &Display{
		d:    d,
		rect: rect,
		next: NewMono(rect),
		last: NewMono(rect),
	}
}

// ColorModel returns the color model of the display.
func (m *Display) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds of the display.
func (m *Display) Bounds() image.Rectangle {
	return m.rect
}

// Draw draws src onto the display. The dst rectangle specifies the
// destination region on the display, src is read from sp.
func (m *Display) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if m.halted {
		return errors.New("matrix: halted")
	}

	dst = dst.Intersect(m.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: a full frame in our own format.
	if img, ok := src.(*Mono); ok && dst == m.rect && sp == (image.Point{}) && img.Rect == m.rect {
		copy(m.next.Pix, img.Pix)
	} else {
		draw.Draw(m.next, dst, src, sp, draw.Src)
	}
	return m.flush()
}

// flush writes the rows of next that differ from last.
func (m *Display) flush() error {
	stride := m.next.Stride
	for y := 0; y < m.rect.Dy(); y++ {
		start, end := y*stride, (y+1)*stride
		if m.synced && bytes.Equal(m.last.Pix[start:end], m.next.Pix[start:end]) {
			continue
		}
		reg, err := max7219.DigitRegister(y)
		if err != nil {
			return err
		}
		pairs := make([]max7219.Pair, stride)
		for i := range pairs {
			pairs[i] = max7219.Pair{Reg: reg, Data: m.next.Row(i, y)}
		}
		if err := m.d.WriteAllRegisters(pairs); err != nil {
			return err
		}
		copy(m.last.Pix[start:end], m.next.Pix[start:end])
	}
	m.synced = true
	return nil
}

// Invalidate forgets what the modules show, so the next Draw resends every
// row. Use it after writing digit registers through the Dev directly.
func (m *Display) Invalidate() {
	m.synced = false
}

// Halt puts every module in shutdown mode.
// After calling Halt, Draw fails.
func (m *Display) Halt() error {
	m.halted = true
	return m.d.PowerOff()
}

// String returns a string representation of the display.
func (m *Display) String() string {
	return fmt.Sprintf("matrix.Display{%dx%d}", m.rect.Dx(), m.rect.Dy())
}
