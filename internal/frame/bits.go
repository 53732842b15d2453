package frame

// Bits is an append-only bitstream packed MSB-first into bytes
type Bits struct {
	buf []byte
	n   int
}

// NewBits preallocates room for capacity bits
func NewBits(capacity int) *Bits {
	return &Bits{buf: make([]byte, 0, (capacity+7)/8)}
}

// FromBytes wraps whole bytes as a bitstream of len(data)*8 bits
func FromBytes(data []byte) *Bits {
	return &Bits{buf: append([]byte(nil), data...), n: len(data) * 8}
}

// Len returns the number of bits held
func (b *Bits) Len() int {
	return b.n
}

// At returns bit i (0 or 1)
func (b *Bits) At(i int) uint8 {
	return (b.buf[i>>3] >> (7 - uint(i&7))) & 1
}

// AppendBit adds a single bit; any non-zero value is treated as 1
func (b *Bits) AppendBit(bit uint8) {
	if b.n&7 == 0 {
		b.buf = append(b.buf, 0)
	}
	if bit != 0 {
		b.buf[b.n>>3] |= 1 << (7 - uint(b.n&7))
	}
	b.n++
}

// AppendBytes adds every bit of data, most significant bit first
func (b *Bits) AppendBytes(data []byte) {
	if b.n&7 == 0 {
		b.buf = append(b.buf, data...)
		b.n += len(data) * 8
		return
	}
	for _, v := range data {
		for j := 7; j >= 0; j-- {
			b.AppendBit((v >> uint(j)) & 1)
		}
	}
}

// Bytes returns the packed bytes; a trailing partial byte is zero padded
func (b *Bits) Bytes() []byte {
	return append([]byte(nil), b.buf...)
}

// ByteAt reassembles the 8 bits starting at bit offset off
func (b *Bits) ByteAt(off int) byte {
	if off&7 == 0 {
		return b.buf[off>>3]
	}
	var v byte
	for j := 0; j < 8; j++ {
		v = v<<1 | b.At(off+j)
	}
	return v
}
