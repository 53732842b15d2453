package engine

import (
	"bytes"
	"fmt"
	"image"

	"github.com/faanross/stegokey/internal/frame"
	"github.com/faanross/stegokey/internal/keyx"
	"github.com/faanross/stegokey/internal/logging"
	"github.com/faanross/stegokey/internal/scrypto"
	"github.com/faanross/stegokey/internal/stego"
	"github.com/faanross/stegokey/internal/stegerr"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zlib"
)

// Encode hides msg in a copy of carrier under the shared secret of kp.
// The carrier itself is never modified; on error no image is returned.
func (e *Engine) Encode(msg []byte, kind Kind, carrier image.Image, kp keyx.KeyPair) (*image.NRGBA, error) {
	log := e.logger.With("op", "encode", "op_id", uuid.NewString())

	if !kind.Valid() {
		return nil, stegerr.Errorf("encode", "unsupported %s", kind)
	}

	secret, err := e.group.Secret(kp)
	if err != nil {
		log.Warn("key pair rejected", "error", err)
		return nil, stegerr.Wrap("encode", err)
	}
	log.Debug("secret derived", logging.Redacted("secret"), "fingerprint", scrypto.Fingerprint(secret))

	payload, compressed := msg, false
	if e.compress {
		packed, err := CompressData(msg)
		if err != nil {
			return nil, stegerr.Wrap("encode", err)
		}
		if len(packed) < len(msg) {
			payload, compressed = packed, true
		}
	}

	bits, err := frame.Frame(scrypto.Transform(payload, secret), kind, compressed)
	if err != nil {
		return nil, stegerr.Wrap("encode", err)
	}

	img, err := stego.Embed(carrier, bits)
	if err != nil {
		log.Warn("embed failed", "required_bits", bits.Len(), "error", err)
		return nil, stegerr.Wrap("encode", err)
	}

	capacity := stego.Capacity(img.Bounds())
	log.Info("message embedded",
		"kind", kind.String(),
		"message_bytes", len(msg),
		"payload_bytes", len(payload),
		"compressed", compressed,
		"bits", bits.Len(),
		"capacity_bits", capacity,
		"utilization", fmt.Sprintf("%.1f%%", float64(bits.Len())*100/float64(capacity)),
	)
	return img, nil
}

// CompressData deflates data with zlib. The caller decides whether the
// result is worth keeping.
func CompressData(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("compression init failed: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("compression write failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("compression close failed: %w", err)
	}
	return buf.Bytes(), nil
}
