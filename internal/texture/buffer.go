package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

const (
	// DefaultSize is the edge length used for standalone synthesis.
	DefaultSize = 256
	// LiteSize is the edge length used for small bodies.
	LiteSize = 64
)

var ErrInvalidDimension = errors.New("texture: dimension must be positive")

// Buffer is a row-major RGBA8 pixel buffer, top-to-bottom, left-to-right.
type Buffer struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pix    []byte `json:"-"`
}

// Paint is a fill color with a fractional opacity, the way a 2D canvas fill
// style carries one.
type Paint struct {
	R, G, B uint8
	Alpha   float64
}

// NewBuffer allocates a fully transparent width x height buffer.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, width, height)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}, nil
}

// offset returns the index of the first byte of pixel (x, y).
func (b *Buffer) offset(x, y int) int {
	return (y*b.Width + x) * 4
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Set writes c at (x, y). Out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, c color.RGBA) {
	if !b.inBounds(x, y) {
		return
	}
	i := b.offset(x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// At returns the pixel at (x, y), or transparent black out of bounds.
func (b *Buffer) At(x, y int) color.RGBA {
	if !b.inBounds(x, y) {
		return color.RGBA{}
	}
	i := b.offset(x, y)
	return color.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Image exposes the buffer as an *image.RGBA sharing the same pixel memory.
func (b *Buffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// toByte stores a channel value the way an 8-bit clamped array does:
// round half to even, then clamp to [0, 255].
func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.RoundToEven(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
