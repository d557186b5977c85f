package texture

import (
	"image/color"
	"math"

	"planetgen/internal/rng"
)

// CraterCount is the number of craters stamped on every rocky texture.
const CraterCount = 15

var (
	icyCenter = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	icyEdge   = color.RGBA{R: 160, G: 200, B: 255, A: 255}
)

// Rocky synthesizes a size x size brown noise texture with dark craters.
// It draws one value per pixel, then four per crater.
func Rocky(src rng.Float64er, size int) (*Buffer, error) {
	buf, err := NewBuffer(size, size)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(buf.Pix); i += 4 {
		v := src.Float64()
		buf.Pix[i] = toByte(90 + float64(v*100))
		buf.Pix[i+1] = toByte(60 + float64(v*60))
		buf.Pix[i+2] = toByte(40 + float64(v*40))
		buf.Pix[i+3] = 255
	}

	stampCraters(src, buf)
	return buf, nil
}

// stampCraters darkens up to CraterCount discs and reports how many of them
// covered at least one pixel center. All 4*CraterCount draws are consumed
// either way.
func stampCraters(src rng.Float64er, buf *Buffer) int {
	stamped := 0
	for i := 0; i < CraterCount; i++ {
		radius := 5 + float64(src.Float64()*20)
		x := float64(src.Float64() * float64(buf.Width))
		y := float64(src.Float64() * float64(buf.Height))
		alpha := 0.1 + float64(src.Float64()*0.2)
		if buf.FillCircle(x, y, radius, Paint{Alpha: alpha}) > 0 {
			stamped++
		}
	}
	return stamped
}

// Gas synthesizes horizontal colour bands, three draws per row, then smears
// them with three rounds of shifted self-compositing at 10% opacity.
func Gas(src rng.Float64er, size int) (*Buffer, error) {
	buf, err := NewBuffer(size, size)
	if err != nil {
		return nil, err
	}

	for y := 0; y < size; y++ {
		t := float64(y) / float64(size)
		hue := 30 + float64(math.Sin(float64(t*10)+float64(src.Float64()*math.Pi))*20)
		sat := 60 + float64(src.Float64()*20)
		light := 40 + float64(math.Sin(float64(t*5)+float64(src.Float64()*math.Pi))*10)
		buf.FillRect(0, y, size, 1, HSL(hue, sat, light))
	}

	for i := 0; i < 3; i++ {
		buf.DrawShifted(-2, 0.1)
		buf.DrawShifted(2, 0.1)
	}
	return buf, nil
}

// Icy synthesizes a white-to-pale-blue radial gradient with one noise draw
// per pixel added to the colour channels.
func Icy(src rng.Float64er, size int) (*Buffer, error) {
	buf, err := NewBuffer(size, size)
	if err != nil {
		return nil, err
	}

	half := float64(size) / 2
	buf.RadialGradient(half, half, half, icyCenter, icyEdge)

	for i := 0; i < len(buf.Pix); i += 4 {
		n := float64(src.Float64() * 50)
		buf.Pix[i] = toByte(float64(buf.Pix[i]) + n)
		buf.Pix[i+1] = toByte(float64(buf.Pix[i+1]) + n)
		buf.Pix[i+2] = toByte(float64(buf.Pix[i+2]) + n)
	}
	return buf, nil
}
