// Package frame serializes a payload into the self-describing bitstream that
// gets embedded in a carrier:
//
//	[length uint32 big-endian][flags byte][payload bytes]
//
// The low nibble of flags holds the Kind, bit 7 marks a compressed payload.
// The header is stored in clear so the extractor can bound the read before
// any key material is involved.
package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/faanross/stegokey/internal/params"
	"github.com/faanross/stegokey/internal/stegerr"
)

// Kind tells the collaborator how to render a decoded payload
type Kind uint8

const (
	KindText   Kind = 1
	KindBinary Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is a kind the codec can carry
func (k Kind) Valid() bool {
	return k == KindText || k == KindBinary
}

// Header is the clear-text prefix of every frame
type Header struct {
	Length     uint32
	Kind       Kind
	Compressed bool
}

// Flags packs kind and options into the header flag byte
func (h Header) Flags() byte {
	f := byte(h.Kind) & params.KIND_MASK
	if h.Compressed {
		f |= params.FLAG_COMPRESSED
	}
	return f
}

// Decoded is the result of Unframe
type Decoded struct {
	Header
	Payload []byte
}

// Size returns the number of bits a frame around payloadLen bytes occupies
func Size(payloadLen int) int {
	return (params.HEADER_SIZE + payloadLen) * params.BITS_PER_BYTE
}

// Frame emits header then payload as an MSB-first bitstream
func Frame(payload []byte, kind Kind, compressed bool) (*Bits, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("cannot frame %s", kind)
	}
	if uint64(len(payload)) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("payload of %d bytes exceeds length field", len(payload))
	}

	h := Header{Length: uint32(len(payload)), Kind: kind, Compressed: compressed}

	var head [params.HEADER_SIZE]byte
	binary.BigEndian.PutUint32(head[:params.LENGTH_SIZE], h.Length)
	head[params.LENGTH_SIZE] = h.Flags()

	bits := NewBits(Size(len(payload)))
	bits.AppendBytes(head[:])
	bits.AppendBytes(payload)
	return bits, nil
}

// ParseHeader decodes the first HEADER_BITS of bits
func ParseHeader(bits *Bits) (Header, error) {
	if bits.Len() < params.HEADER_BITS {
		return Header{}, stegerr.Errorf("unframe", "have %d bits, header needs %d: %w",
			bits.Len(), params.HEADER_BITS, stegerr.ErrMalformedFrame)
	}

	var head [params.HEADER_SIZE]byte
	for i := range head {
		head[i] = bits.ByteAt(i * params.BITS_PER_BYTE)
	}

	flags := head[params.LENGTH_SIZE]
	if flags&^params.KNOWN_FLAGS != 0 {
		return Header{}, stegerr.Errorf("unframe", "unknown flag bits %08b: %w", flags, stegerr.ErrMalformedFrame)
	}

	h := Header{
		Length:     binary.BigEndian.Uint32(head[:params.LENGTH_SIZE]),
		Kind:       Kind(flags & params.KIND_MASK),
		Compressed: flags&params.FLAG_COMPRESSED != 0,
	}
	if !h.Kind.Valid() {
		return Header{}, stegerr.Errorf("unframe", "%s: %w", h.Kind, stegerr.ErrMalformedFrame)
	}
	return h, nil
}

// Unframe is the inverse of Frame. Trailing bits beyond the declared payload
// are ignored.
func Unframe(bits *Bits) (*Decoded, error) {
	h, err := ParseHeader(bits)
	if err != nil {
		return nil, err
	}

	available := uint64(bits.Len() - params.HEADER_BITS)
	if uint64(h.Length)*params.BITS_PER_BYTE > available {
		return nil, stegerr.Errorf("unframe", "declared %d bytes, only %d bits remain: %w",
			h.Length, available, stegerr.ErrMalformedFrame)
	}

	payload := make([]byte, h.Length)
	for i := range payload {
		payload[i] = bits.ByteAt(params.HEADER_BITS + i*params.BITS_PER_BYTE)
	}

	return &Decoded{Header: h, Payload: payload}, nil
}
