package stego

import (
	"image"

	"github.com/faanross/stegokey/internal/frame"
	"github.com/faanross/stegokey/internal/stegerr"
)

// EmbedBit modifies the LSB of a color value to store a bit
func EmbedBit(colorValue uint8, bit uint8) uint8 {
	if bit != 0 {
		// Set LSB to 1: use bitwise OR with 1
		return colorValue | 1
	}
	// Set LSB to 0: use bitwise AND with 254 (11111110)
	return colorValue & 0xFE
}

// Embed writes bits into the LSBs of a copy of carrier and returns the copy.
// The capacity check runs before any pixel is written, and channels past the
// last bit keep their exact carrier values.
func Embed(carrier image.Image, bits *frame.Bits) (*image.NRGBA, error) {
	available := Capacity(carrier.Bounds())
	if available == 0 {
		return nil, stegerr.Wrap("embed", stegerr.ErrEmptyCarrier)
	}
	if bits.Len() > available {
		return nil, stegerr.Wrap("embed", &stegerr.CapacityError{Required: bits.Len(), Available: available})
	}

	dst, err := Clone(carrier)
	if err != nil {
		return nil, err
	}

	pos := NewPositions(dst.Bounds())
	for i := 0; i < bits.Len(); i++ {
		p, _ := pos.Next()
		off := offset(dst, p)
		dst.Pix[off] = EmbedBit(dst.Pix[off], bits.At(i))
	}

	return dst, nil
}
