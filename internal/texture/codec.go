package texture

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Encoded layout: flag(1) | width(4, LE) | height(4, LE) | payload.
// flag 0 stores Pix verbatim, flag 1 stores an lz4 block.
const (
	codecHeaderSize = 9
	codecRaw        = 0
	codecLZ4        = 1

	// maxCodecSide bounds decoded dimensions so a corrupt header cannot
	// trigger a huge allocation.
	maxCodecSide = 8192
)

var ErrCorruptEncoding = errors.New("texture: corrupt encoded buffer")

// MarshalBinary encodes the buffer, lz4-compressing the pixels when that
// makes them smaller.
func (b *Buffer) MarshalBinary() ([]byte, error) {
	out := make([]byte, codecHeaderSize+lz4.CompressBlockBound(len(b.Pix)))
	binary.LittleEndian.PutUint32(out[1:5], uint32(b.Width))
	binary.LittleEndian.PutUint32(out[5:9], uint32(b.Height))

	n, err := lz4.CompressBlock(b.Pix, out[codecHeaderSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compress texture: %w", err)
	}
	if n == 0 || n >= len(b.Pix) {
		out = out[:codecHeaderSize]
		out[0] = codecRaw
		return append(out, b.Pix...), nil
	}

	out[0] = codecLZ4
	return out[:codecHeaderSize+n], nil
}

func (b *Buffer) UnmarshalBinary(data []byte) error {
	if len(data) < codecHeaderSize {
		return ErrCorruptEncoding
	}
	width := int(binary.LittleEndian.Uint32(data[1:5]))
	height := int(binary.LittleEndian.Uint32(data[5:9]))
	if width > maxCodecSide || height > maxCodecSide {
		return ErrCorruptEncoding
	}
	buf, err := NewBuffer(width, height)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptEncoding, err)
	}

	payload := data[codecHeaderSize:]
	switch data[0] {
	case codecRaw:
		if len(payload) != len(buf.Pix) {
			return ErrCorruptEncoding
		}
		copy(buf.Pix, payload)
	case codecLZ4:
		n, err := lz4.UncompressBlock(payload, buf.Pix)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptEncoding, err)
		}
		if n != len(buf.Pix) {
			return ErrCorruptEncoding
		}
	default:
		return ErrCorruptEncoding
	}

	*b = *buf
	return nil
}
