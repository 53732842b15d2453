package stego

import (
	"image"
	"image/color"
	"testing"

	"github.com/faanross/stegokey/internal/frame"
	"github.com/faanross/stegokey/internal/stegerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// patterned returns an opaque carrier whose channels are all distinct-ish
func patterned(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x*31 + y*17) % 256),
				G: uint8((x*7 + y*53 + 11) % 256),
				B: uint8((x*101 + y*3 + 200) % 256),
				A: 255,
			})
		}
	}
	return img
}

func solid(w, h int, v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func mustFrame(t *testing.T, payload []byte, kind frame.Kind) *frame.Bits {
	t.Helper()
	bits, err := frame.Frame(payload, kind, false)
	require.NoError(t, err)
	return bits
}

func TestPositionsOrder(t *testing.T) {
	pos := NewPositions(image.Rect(0, 0, 2, 2))
	want := []Position{
		{0, 0, 0}, {0, 0, 1}, {0, 0, 2},
		{1, 0, 0}, {1, 0, 1}, {1, 0, 2},
		{0, 1, 0}, {0, 1, 1}, {0, 1, 2},
		{1, 1, 0}, {1, 1, 1}, {1, 1, 2},
	}

	for i, w := range want {
		got, ok := pos.Next()
		require.True(t, ok, "position %d", i)
		assert.Equal(t, w, got)
	}
	_, ok := pos.Next()
	assert.False(t, ok)
	assert.Equal(t, 12, pos.Total())
}

func TestPositionsReset(t *testing.T) {
	pos := NewPositions(image.Rect(0, 0, 3, 1))
	first, _ := pos.Next()
	pos.Next()
	pos.Reset()
	again, ok := pos.Next()
	require.True(t, ok)
	assert.Equal(t, first, again)
}

func TestPositionsOffsetBounds(t *testing.T) {
	pos := NewPositions(image.Rect(5, 7, 6, 9))
	p, _ := pos.Next()
	assert.Equal(t, Position{X: 5, Y: 7, Channel: 0}, p)
	pos.Next()
	pos.Next()
	p, _ = pos.Next()
	assert.Equal(t, Position{X: 5, Y: 8, Channel: 0}, p)
}

func TestPositionsEmpty(t *testing.T) {
	pos := NewPositions(image.Rectangle{})
	_, ok := pos.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, Capacity(image.Rectangle{}))
}

func TestEmbedBit(t *testing.T) {
	assert.Equal(t, uint8(0xFF), EmbedBit(0xFE, 1))
	assert.Equal(t, uint8(0xFE), EmbedBit(0xFF, 0))
	assert.Equal(t, uint8(0x81), EmbedBit(0x81, 1))
	assert.Equal(t, uint8(0x80), EmbedBit(0x80, 0))
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	carrier := patterned(16, 16)
	payload := []byte("hidden in plain sight")

	stego, err := Embed(carrier, mustFrame(t, payload, frame.KindText))
	require.NoError(t, err)

	d, err := ExtractFrame(stego)
	require.NoError(t, err)
	assert.Equal(t, payload, d.Payload)
	assert.Equal(t, frame.KindText, d.Kind)

	bits, err := Extract(stego, -1)
	require.NoError(t, err)
	assert.Equal(t, Capacity(stego.Bounds()), bits.Len())

	d2, err := frame.Unframe(bits)
	require.NoError(t, err)
	assert.Equal(t, payload, d2.Payload)
}

func TestEmbedLeavesCarrierUntouched(t *testing.T) {
	carrier := patterned(8, 8)
	orig := append([]uint8(nil), carrier.Pix...)

	_, err := Embed(carrier, mustFrame(t, []byte{0xFF, 0x00, 0xAA}, frame.KindBinary))
	require.NoError(t, err)
	assert.Equal(t, orig, carrier.Pix)
}

func TestEmbedNonDestructive(t *testing.T) {
	carrier := patterned(10, 10)
	bits := mustFrame(t, []byte("HI"), frame.KindText)

	stego, err := Embed(carrier, bits)
	require.NoError(t, err)
	require.Equal(t, len(carrier.Pix), len(stego.Pix))

	used := make(map[int]bool)
	pos := NewPositions(carrier.Bounds())
	for i := 0; i < bits.Len(); i++ {
		p, _ := pos.Next()
		used[offset(carrier, p)] = true
	}

	for i := range carrier.Pix {
		assert.Equal(t, carrier.Pix[i]>>1, stego.Pix[i]>>1, "high bits of byte %d", i)
		if !used[i] {
			assert.Equal(t, carrier.Pix[i], stego.Pix[i], "unused byte %d", i)
		}
	}
}

func TestEmbedIdempotent(t *testing.T) {
	carrier := patterned(12, 9)
	bits := mustFrame(t, []byte("same bits twice"), frame.KindText)

	a, err := Embed(carrier, bits)
	require.NoError(t, err)
	b, err := Embed(carrier, bits)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)

	c, err := Embed(a, bits)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, c.Pix)
}

func TestCapacityBoundary(t *testing.T) {
	carrier := patterned(8, 8) // 192 bits = 24 bytes, 19 after the header
	require.Equal(t, 192, Capacity(carrier.Bounds()))

	exact := make([]byte, 19)
	for i := range exact {
		exact[i] = byte(i * 13)
	}
	stego, err := Embed(carrier, mustFrame(t, exact, frame.KindBinary))
	require.NoError(t, err)

	d, err := ExtractFrame(stego)
	require.NoError(t, err)
	assert.Equal(t, exact, d.Payload)

	_, err = Embed(carrier, mustFrame(t, make([]byte, 20), frame.KindBinary))
	require.ErrorIs(t, err, stegerr.ErrInsufficientCapacity)

	var ce *stegerr.CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 200, ce.Required)
	assert.Equal(t, 192, ce.Available)
}

func TestExtractFrameNonStego(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"all zero", solid(16, 16, 0x00)},
		{"all white", solid(16, 16, 0xFF)},
		{"smaller than header", patterned(2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractFrame(tt.img)
			assert.ErrorIs(t, err, stegerr.ErrMalformedFrame)
		})
	}
}

func TestExtractFrameAbsurdLength(t *testing.T) {
	// A valid header declaring more bytes than the image can hold
	carrier := patterned(4, 4) // 48 bits
	bits := frame.FromBytes([]byte{0x00, 0x00, 0x01, 0x00, 0x01})
	stego, err := Embed(carrier, bits)
	require.NoError(t, err)

	_, err = ExtractFrame(stego)
	assert.ErrorIs(t, err, stegerr.ErrMalformedFrame)
}

func TestExtractMaxBits(t *testing.T) {
	img := patterned(4, 4)

	bits, err := Extract(img, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, bits.Len())

	bits, err = Extract(img, 1000)
	require.NoError(t, err)
	assert.Equal(t, 48, bits.Len())
}

func TestEmbedAcceptsRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 3)
		if i%4 == 3 {
			src.Pix[i] = 255
		}
	}

	stego, err := Embed(src, mustFrame(t, []byte("rgba"), frame.KindText))
	require.NoError(t, err)

	d, err := ExtractFrame(stego)
	require.NoError(t, err)
	assert.Equal(t, []byte("rgba"), d.Payload)
}

func TestEmptyCarrier(t *testing.T) {
	empty := image.NewNRGBA(image.Rectangle{})

	_, err := Embed(empty, mustFrame(t, nil, frame.KindText))
	assert.ErrorIs(t, err, stegerr.ErrEmptyCarrier)

	_, err = ExtractFrame(empty)
	assert.ErrorIs(t, err, stegerr.ErrEmptyCarrier)
}

func TestClonePreservesSubImage(t *testing.T) {
	base := patterned(10, 10)
	sub := base.SubImage(image.Rect(2, 3, 6, 8)).(*image.NRGBA)

	c, err := Clone(sub)
	require.NoError(t, err)
	assert.Equal(t, sub.Bounds(), c.Bounds())
	for y := 3; y < 8; y++ {
		for x := 2; x < 6; x++ {
			assert.Equal(t, sub.NRGBAAt(x, y), c.NRGBAAt(x, y))
		}
	}
}

func TestAnalyze(t *testing.T) {
	rep, err := Analyze(solid(8, 8, 0x00))
	require.NoError(t, err)
	assert.Equal(t, 192, rep.CapacityBits)
	assert.Equal(t, 0, rep.Ones)
	assert.Equal(t, 192, rep.Zeros)
	assert.Equal(t, 0.0, rep.Entropy)
	assert.Nil(t, rep.Header)
	assert.False(t, rep.LooksRandom())

	stego, err := Embed(patterned(8, 8), mustFrame(t, []byte("HI"), frame.KindText))
	require.NoError(t, err)
	rep, err = Analyze(stego)
	require.NoError(t, err)
	require.NotNil(t, rep.Header)
	assert.Equal(t, uint32(2), rep.Header.Length)
	assert.Equal(t, frame.KindText, rep.Header.Kind)
}
