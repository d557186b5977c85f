package texture

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// EncodePNG writes buf as a PNG image.
func EncodePNG(w io.Writer, buf *Buffer) error {
	if err := png.Encode(w, buf.Image()); err != nil {
		return fmt.Errorf("failed to encode texture: %w", err)
	}
	return nil
}

// Preview scales buf to a size x size thumbnail. The thumbnail is for
// display only; it is not part of the deterministic output.
func Preview(buf *Buffer, size int) (*Buffer, error) {
	out, err := NewBuffer(size, size)
	if err != nil {
		return nil, err
	}
	if size == buf.Width && size == buf.Height {
		copy(out.Pix, buf.Pix)
		return out, nil
	}

	dst := out.Image()
	draw.CatmullRom.Scale(dst, dst.Bounds(), buf.Image(), image.Rect(0, 0, buf.Width, buf.Height), draw.Src, nil)
	return out, nil
}
