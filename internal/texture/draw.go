package texture

import (
	"image/color"
	"math"
)

// FillRect writes c over the rectangle [x0, x0+w) x [y0, y0+h), clipped.
func (b *Buffer) FillRect(x0, y0, w, h int, c color.RGBA) {
	x1 := min(x0+w, b.Width)
	y1 := min(y0+h, b.Height)
	x0 = max(x0, 0)
	y0 = max(y0, 0)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.Set(x, y, c)
		}
	}
}

// BlendOver composites p onto pixel (x, y) with source-over blending on
// straight (non-premultiplied) channels.
func (b *Buffer) BlendOver(x, y int, p Paint) {
	if !b.inBounds(x, y) || p.Alpha <= 0 {
		return
	}
	sa := math.Min(p.Alpha, 1)
	i := b.offset(x, y)
	da := float64(b.Pix[i+3]) / 255
	outA := sa + float64(da*(1-sa))
	if outA <= 0 {
		return
	}

	blend := func(src uint8, dst uint8) uint8 {
		s := float64(float64(src) * sa)
		d := float64(float64(dst) * da * (1 - sa))
		return toByte((s + d) / outA)
	}
	b.Pix[i] = blend(p.R, b.Pix[i])
	b.Pix[i+1] = blend(p.G, b.Pix[i+1])
	b.Pix[i+2] = blend(p.B, b.Pix[i+2])
	b.Pix[i+3] = toByte(outA * 255)
}

// FillCircle composites a filled disc of the given radius centred on (cx, cy).
// A pixel is covered when its centre lies inside the disc; there is no
// anti-aliasing. It returns the number of pixels painted.
func (b *Buffer) FillCircle(cx, cy, radius float64, p Paint) int {
	if radius <= 0 {
		return 0
	}
	y0 := max(int(math.Floor(cy-radius)), 0)
	y1 := min(int(math.Ceil(cy+radius)), b.Height-1)
	x0 := max(int(math.Floor(cx-radius)), 0)
	x1 := min(int(math.Ceil(cx+radius)), b.Width-1)
	r2 := float64(radius * radius)

	painted := 0
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if float64(dx*dx)+float64(dy*dy) <= r2 {
				b.BlendOver(x, y, p)
				painted++
			}
		}
	}
	return painted
}

// RadialGradient fills the whole buffer with a two-stop gradient centred on
// (cx, cy). Pixels at or beyond radius take the outer color.
func (b *Buffer) RadialGradient(cx, cy, radius float64, inner, outer color.RGBA) {
	lerp := func(a, c uint8, t float64) uint8 {
		return toByte(float64(a) + float64((float64(c)-float64(a))*t))
	}
	for y := 0; y < b.Height; y++ {
		dy := float64(y) + 0.5 - cy
		for x := 0; x < b.Width; x++ {
			dx := float64(x) + 0.5 - cx
			t := 1.0
			if radius > 0 {
				t = math.Min(math.Sqrt(float64(dx*dx)+float64(dy*dy))/radius, 1)
			}
			b.Set(x, y, color.RGBA{
				R: lerp(inner.R, outer.R, t),
				G: lerp(inner.G, outer.G, t),
				B: lerp(inner.B, outer.B, t),
				A: lerp(inner.A, outer.A, t),
			})
		}
	}
}

// DrawShifted composites a snapshot of the buffer onto itself, offset
// horizontally by dx pixels, at the given global opacity. Source columns
// that fall outside the buffer are clamped to the nearest edge column.
func (b *Buffer) DrawShifted(dx int, alpha float64) {
	snapshot := b.Clone()
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			sx := min(max(x-dx, 0), b.Width-1)
			c := snapshot.At(sx, y)
			b.BlendOver(x, y, Paint{
				R:     c.R,
				G:     c.G,
				B:     c.B,
				Alpha: float64(alpha * float64(c.A) / 255),
			})
		}
	}
}
