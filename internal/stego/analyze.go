package stego

import (
	"image"
	"math"

	"github.com/faanross/stegokey/internal/frame"
	"github.com/faanross/stegokey/internal/params"
)

// Report summarizes the LSB plane of an image
type Report struct {
	Width, Height int
	CapacityBits  int
	Zeros, Ones   int
	Entropy       float64 // Shannon entropy of the LSB plane read as bytes, max 8.0

	// Header is set when the first bits parse as a frame header that fits
	Header *frame.Header
}

// OnesRatio is the share of LSBs set to 1
func (r Report) OnesRatio() float64 {
	total := r.Zeros + r.Ones
	if total == 0 {
		return 0
	}
	return float64(r.Ones) / float64(total)
}

// LooksRandom mirrors the usual quick check: an LSB plane that is close to
// 50/50 and high entropy has likely been overwritten with ciphertext.
func (r Report) LooksRandom() bool {
	ratio := r.OnesRatio()
	return ratio > 0.45 && ratio < 0.55 && r.Entropy > 7.5
}

// Analyze walks the full LSB plane in embedding order
func Analyze(img image.Image) (Report, error) {
	src, err := view(img)
	if err != nil {
		return Report{}, err
	}

	bounds := src.Bounds()
	rep := Report{
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		CapacityBits: Capacity(bounds),
	}

	bits := frame.NewBits(rep.CapacityBits)
	newLSBReader(src).read(rep.CapacityBits, bits)

	frequency := make(map[byte]int)
	byteCount := bits.Len() / params.BITS_PER_BYTE
	for i := 0; i < byteCount; i++ {
		frequency[bits.ByteAt(i*params.BITS_PER_BYTE)]++
	}
	for i := 0; i < bits.Len(); i++ {
		if bits.At(i) == 1 {
			rep.Ones++
		} else {
			rep.Zeros++
		}
	}

	total := float64(byteCount)
	for _, count := range frequency {
		p := float64(count) / total
		if p > 0 {
			rep.Entropy -= p * math.Log2(p)
		}
	}

	if h, err := frame.ParseHeader(bits); err == nil {
		if frame.Size(int(h.Length)) <= rep.CapacityBits {
			rep.Header = &h
		}
	}

	return rep, nil
}
