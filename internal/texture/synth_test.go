package texture

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"planetgen/internal/rng"
)

// constSource returns the same draw forever.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

type synthFunc func(rng.Float64er, int) (*Buffer, error)

func TestSynthesizers_Deterministic(t *testing.T) {
	tests := []struct {
		name  string
		synth synthFunc
	}{
		{"rocky", Rocky},
		{"gas", Gas},
		{"icy", Icy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, seed := range []int32{0, 1, 42, -977, 2147483647} {
				a, err := tt.synth(rng.New(seed), LiteSize)
				if err != nil {
					t.Fatalf("seed %d: unexpected error: %v", seed, err)
				}
				b, _ := tt.synth(rng.New(seed), LiteSize)
				if !bytes.Equal(a.Pix, b.Pix) {
					t.Errorf("seed %d: textures differ between runs", seed)
				}
			}
		})
	}
}

func TestSynthesizers_DrawCounts(t *testing.T) {
	const size = 32
	tests := []struct {
		name  string
		synth synthFunc
		want  int
	}{
		{"rocky", Rocky, size*size + CraterCount*4},
		{"gas", Gas, size * 3},
		{"icy", Icy, size * size},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := rng.New(7)
			buf, err := tt.synth(src, size)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if src.Draws() != tt.want {
				t.Errorf("draws = %d, want %d", src.Draws(), tt.want)
			}
			for i := 3; i < len(buf.Pix); i += 4 {
				if buf.Pix[i] != 255 {
					t.Fatalf("pixel %d alpha = %d, want 255", i/4, buf.Pix[i])
				}
			}
		})
	}
}

func TestSynthesizers_InvalidSize(t *testing.T) {
	for _, synth := range []synthFunc{Rocky, Gas, Icy} {
		for _, size := range []int{0, -16} {
			src := rng.New(1)
			buf, err := synth(src, size)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("size %d: error = %v, want ErrInvalidDimension", size, err)
			}
			if buf != nil {
				t.Errorf("size %d: expected nil buffer", size)
			}
			if src.Draws() != 0 {
				t.Errorf("size %d: consumed %d draws before failing", size, src.Draws())
			}
		}
	}
}

func TestRocky_StampsCraters(t *testing.T) {
	base := color.RGBA{R: 140, G: 90, B: 60, A: 255}
	for _, size := range []int{1, 16, LiteSize, DefaultSize} {
		buf, err := NewBuffer(size, size)
		if err != nil {
			t.Fatal(err)
		}
		buf.FillRect(0, 0, size, size, base)

		src := rng.New(int32(size))
		n := stampCraters(src, buf)
		if n != CraterCount {
			t.Errorf("size %d: stamped %d craters, want %d", size, n, CraterCount)
		}
		if src.Draws() != CraterCount*4 {
			t.Errorf("size %d: crater draws = %d, want %d", size, src.Draws(), CraterCount*4)
		}

		darkened := 0
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				got := buf.At(x, y)
				if got.R > base.R || got.G > base.G || got.B > base.B || got.A != 255 {
					t.Fatalf("size %d: pixel (%d,%d) = %v not darker than base %v", size, x, y, got, base)
				}
				if got != base {
					darkened++
				}
			}
		}
		if darkened == 0 {
			t.Errorf("size %d: craters left every pixel at the base tone", size)
		}
	}
}

// centerSource returns fixed draws so craters land at known spots.
type centerSource []float64

func (s *centerSource) Float64() float64 {
	v := (*s)[0]
	*s = (*s)[1:]
	return v
}

func TestStampCraters_CountsPaintedDiscs(t *testing.T) {
	buf, err := NewBuffer(64, 64)
	if err != nil {
		t.Fatal(err)
	}
	buf.FillRect(0, 0, 64, 64, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	// Each crater takes radius, x, y, alpha. The first sits in the top-left
	// corner with the smallest radius; the rest all hit the center.
	draws := make(centerSource, 0, CraterCount*4)
	draws = append(draws, 0, 0, 0, 0.5)
	for i := 1; i < CraterCount; i++ {
		draws = append(draws, 0.5, 0.5, 0.5, 0.5)
	}

	if n := stampCraters(&draws, buf); n != CraterCount {
		t.Errorf("stamped %d craters, want %d", n, CraterCount)
	}
	if len(draws) != 0 {
		t.Errorf("%d draws left unconsumed", len(draws))
	}
	if got := buf.At(0, 0); got.R >= 200 {
		t.Errorf("corner crater did not darken (0,0): %v", got)
	}
	if got := buf.At(63, 0); got.R != 200 {
		t.Errorf("pixel outside every crater changed: %v", got)
	}
}

func TestRocky_BaseNoiseChannels(t *testing.T) {
	// A constant draw gives every pixel the same base tone; craters only darken it.
	buf, err := Rocky(constSource(0.5), 8)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(buf.Pix); i += 4 {
		if buf.Pix[i] > 140 || buf.Pix[i+1] > 90 || buf.Pix[i+2] > 60 {
			t.Fatalf("pixel %d brighter than base tone: %v", i/4, buf.Pix[i:i+4])
		}
	}
}

func TestGas_RowsAreUniform(t *testing.T) {
	buf, err := Gas(rng.New(99), LiteSize)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < buf.Height; y++ {
		first := buf.At(0, y)
		for x := 1; x < buf.Width; x++ {
			if got := buf.At(x, y); got != first {
				t.Fatalf("row %d not uniform: x=0 %v, x=%d %v", y, first, x, got)
			}
		}
	}
}

func TestIcy_ClampsNoise(t *testing.T) {
	buf, err := Icy(constSource(0.9999999), 16)
	if err != nil {
		t.Fatal(err)
	}

	center := buf.At(8, 8)
	if center.R != 255 || center.G != 255 || center.B != 255 {
		t.Errorf("centre = %v, want saturated white", center)
	}
	for i := 0; i < len(buf.Pix); i += 4 {
		if buf.Pix[i+2] != 255 {
			t.Fatalf("pixel %d blue = %d, want 255", i/4, buf.Pix[i+2])
		}
	}
}

func TestIcy_ZeroNoiseIsGradient(t *testing.T) {
	buf, err := Icy(constSource(0), 16)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.At(0, 0); got != icyEdge {
		t.Errorf("corner = %v, want %v", got, icyEdge)
	}
}

func TestPreview(t *testing.T) {
	buf, err := Rocky(rng.New(3), DefaultSize)
	if err != nil {
		t.Fatal(err)
	}

	small, err := Preview(buf, 32)
	if err != nil {
		t.Fatalf("Preview() unexpected error: %v", err)
	}
	if small.Width != 32 || small.Height != 32 || len(small.Pix) != 32*32*4 {
		t.Errorf("Preview() size = %dx%d", small.Width, small.Height)
	}

	same, _ := Preview(buf, DefaultSize)
	if !bytes.Equal(same.Pix, buf.Pix) {
		t.Error("Preview() at native size should copy pixels")
	}

	if _, err := Preview(buf, 0); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("Preview(0) error = %v, want ErrInvalidDimension", err)
	}
}

func TestEncodePNG(t *testing.T) {
	buf, err := Icy(rng.New(5), 16)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := EncodePNG(&out, buf); err != nil {
		t.Fatalf("EncodePNG() unexpected error: %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode() unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
	r, g, b, _ := img.At(3, 4).RGBA()
	want := buf.At(3, 4)
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("decoded pixel = (%d,%d,%d), want %v", r>>8, g>>8, b>>8, want)
	}
}
