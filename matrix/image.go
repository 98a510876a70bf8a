// Package matrix drives a chain of 8x8 LED matrix modules as one image.
//
// Each MAX7219 of the chain holds one 8x8 module: digit register n is row n,
// bit 7 of the row is the leftmost column. Device 0 shows columns 0-7,
// device 1 columns 8-15, and so on.
package matrix

import (
	"image"
	"image/color"
)

// Bit is a single LED, on or off.
type Bit bool

// RGBA implements color.Color: an LED that is on is white.
func (c Bit) RGBA() (r, g, b, a uint32) {
	if c {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// toBit lights the LED for colors at least half as bright as white.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// Mono is a 1-bit image packed the way the chips want it: one byte per row
// and module, most significant bit on the left.
type Mono struct {
	Pix    []byte          // Pix[y*Stride + x/8]
	Stride int             // Bytes per row, one per module
	Rect   image.Rectangle // Image bounds
}

// NewMono creates a Mono image with the specified bounds.
// The width must be a multiple of 8.
func NewMono(r image.Rectangle) *Mono {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Mono{Rect: r}
	}
	if w%8 != 0 {
		panic("matrix: width must be a multiple of 8")
	}
	stride := w / 8
	return &Mono{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Mono) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *Mono) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *Mono) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the pixel at (x, y).
func (p *Mono) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return false
	}
	offset, mask := p.pixOffset(x, y)
	return p.Pix[offset]&mask != 0
}

// Set sets the color of the pixel at (x, y).
func (p *Mono) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the pixel at (x, y).
func (p *Mono) SetBit(x, y int, c Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if c {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Row returns row y of module m.
func (p *Mono) Row(m, y int) byte {
	return p.Pix[(y-p.Rect.Min.Y)*p.Stride+m]
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
func (p *Mono) pixOffset(x, y int) (offset int, mask byte) {
	x -= p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + x/8
	mask = 0x80 >> uint(x%8)
	return
}
