package stego

import (
	"image"

	"github.com/faanross/stegokey/internal/frame"
	"github.com/faanross/stegokey/internal/params"
	"github.com/faanross/stegokey/internal/stegerr"
)

// lsbReader pulls LSBs off an image in traversal order
type lsbReader struct {
	img *image.NRGBA
	pos *Positions
}

func newLSBReader(img *image.NRGBA) *lsbReader {
	return &lsbReader{img: img, pos: NewPositions(img.Bounds())}
}

// read appends up to n bits to out and returns how many were read
func (r *lsbReader) read(n int, out *frame.Bits) int {
	for i := 0; i < n; i++ {
		p, ok := r.pos.Next()
		if !ok {
			return i
		}
		out.AppendBit(r.img.Pix[offset(r.img, p)] & 1)
	}
	return n
}

// Extract reads up to maxBits LSBs in embedding order. A negative maxBits,
// or one larger than the image holds, reads the full capacity.
func Extract(img image.Image, maxBits int) (*frame.Bits, error) {
	src, err := view(img)
	if err != nil {
		return nil, err
	}

	capacity := Capacity(src.Bounds())
	if maxBits < 0 || maxBits > capacity {
		maxBits = capacity
	}

	bits := frame.NewBits(maxBits)
	newLSBReader(src).read(maxBits, bits)
	return bits, nil
}

// ExtractFrame reads the clear header, checks the declared length against
// the image capacity, then reads exactly one frame. Images that were never
// embedded almost always fail here with ErrMalformedFrame.
func ExtractFrame(img image.Image) (*frame.Decoded, error) {
	src, err := view(img)
	if err != nil {
		return nil, err
	}

	capacity := Capacity(src.Bounds())
	if capacity < params.HEADER_BITS {
		return nil, stegerr.Errorf("extract", "image holds %d bits, header needs %d: %w",
			capacity, params.HEADER_BITS, stegerr.ErrMalformedFrame)
	}

	r := newLSBReader(src)
	bits := frame.NewBits(params.HEADER_BITS)
	r.read(params.HEADER_BITS, bits)

	h, err := frame.ParseHeader(bits)
	if err != nil {
		return nil, err
	}

	need := (params.HEADER_SIZE + uint64(h.Length)) * params.BITS_PER_BYTE
	if need > uint64(capacity) {
		return nil, stegerr.Errorf("extract", "declared %d bytes exceed capacity of %d bits: %w",
			h.Length, capacity, stegerr.ErrMalformedFrame)
	}

	r.read(int(h.Length)*params.BITS_PER_BYTE, bits)
	return frame.Unframe(bits)
}
