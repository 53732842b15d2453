package stego

import (
	"image"

	"github.com/faanross/stegokey/internal/params"
)

// Position addresses one color channel of one pixel
type Position struct {
	X, Y    int
	Channel int // 0=R 1=G 2=B
}

// Positions walks every usable channel of a rectangle in the one order both
// Embed and Extract rely on: rows top to bottom, pixels left to right,
// channels R, G, B. Alpha is never visited.
type Positions struct {
	bounds image.Rectangle
	next   Position
	done   bool
}

// NewPositions starts a walk over bounds
func NewPositions(bounds image.Rectangle) *Positions {
	p := &Positions{bounds: bounds}
	p.Reset()
	return p
}

// Reset rewinds the walk to the first channel of the first pixel
func (p *Positions) Reset() {
	p.next = Position{X: p.bounds.Min.X, Y: p.bounds.Min.Y}
	p.done = p.bounds.Empty()
}

// Total is the number of positions a full walk yields
func (p *Positions) Total() int {
	return Capacity(p.bounds)
}

// Next returns the current position and advances. ok is false once the walk
// is exhausted.
func (p *Positions) Next() (pos Position, ok bool) {
	if p.done {
		return Position{}, false
	}
	pos = p.next

	p.next.Channel++
	if p.next.Channel == params.CHANNELS {
		p.next.Channel = 0
		p.next.X++
		if p.next.X == p.bounds.Max.X {
			p.next.X = p.bounds.Min.X
			p.next.Y++
			if p.next.Y == p.bounds.Max.Y {
				p.done = true
			}
		}
	}
	return pos, true
}

// Capacity returns how many bits a carrier of the given bounds can hold
func Capacity(bounds image.Rectangle) int {
	if bounds.Empty() {
		return 0
	}
	return bounds.Dx() * bounds.Dy() * params.CHANNELS
}

// offset maps a position to its byte in an NRGBA pixel buffer
func offset(img *image.NRGBA, pos Position) int {
	return img.PixOffset(pos.X, pos.Y) + pos.Channel
}
