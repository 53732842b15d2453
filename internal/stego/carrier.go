package stego

import (
	"image"
	"image/draw"

	"github.com/faanross/stegokey/internal/stegerr"
)

// Clone returns a private non-premultiplied copy of img. Embedding always
// works on such a copy so the caller's carrier is never touched.
func Clone(img image.Image) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, stegerr.Wrap("clone", stegerr.ErrEmptyCarrier)
	}

	dst := image.NewNRGBA(bounds)

	if src, ok := img.(*image.NRGBA); ok {
		rowBytes := bounds.Dx() * 4
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			so := src.PixOffset(bounds.Min.X, y)
			do := dst.PixOffset(bounds.Min.X, y)
			copy(dst.Pix[do:do+rowBytes], src.Pix[so:so+rowBytes])
		}
		return dst, nil
	}

	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	return dst, nil
}

// view returns img itself when it already is NRGBA, otherwise a converted copy.
// Callers must treat the result as read-only.
func view(img image.Image) (*image.NRGBA, error) {
	if img.Bounds().Empty() {
		return nil, stegerr.Wrap("view", stegerr.ErrEmptyCarrier)
	}
	if n, ok := img.(*image.NRGBA); ok {
		return n, nil
	}
	return Clone(img)
}
