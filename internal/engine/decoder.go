package engine

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/faanross/stegokey/internal/keyx"
	"github.com/faanross/stegokey/internal/scrypto"
	"github.com/faanross/stegokey/internal/stego"
	"github.com/faanross/stegokey/internal/stegerr"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zlib"
)

// Result is a decoded message and how it was stored
type Result struct {
	Message    []byte
	Kind       Kind
	Compressed bool
}

// Decode recovers the message hidden in img under the shared secret of kp.
//
// The frame header is stored in clear, so a wrong but well-formed key pair is
// not detected by the frame: it yields a deterministic wrong message. Only a
// compressed payload that no longer inflates reveals the wrong key, and it is
// reported as ErrMalformedFrame like any other corrupt frame.
func (e *Engine) Decode(img image.Image, kp keyx.KeyPair) (*Result, error) {
	log := e.logger.With("op", "decode", "op_id", uuid.NewString())

	secret, err := e.group.Secret(kp)
	if err != nil {
		log.Warn("key pair rejected", "error", err)
		return nil, stegerr.Wrap("decode", err)
	}

	d, err := stego.ExtractFrame(img)
	if err != nil {
		log.Warn("no frame found", "error", err)
		return nil, stegerr.Wrap("decode", err)
	}

	message := scrypto.Transform(d.Payload, secret)
	if d.Compressed {
		message, err = e.inflate(message)
		if err != nil {
			log.Warn("payload did not inflate", "error", err)
			return nil, stegerr.Wrap("decode", err)
		}
	}

	log.Info("message extracted",
		"kind", d.Kind.String(),
		"payload_bytes", len(d.Payload),
		"message_bytes", len(message),
		"compressed", d.Compressed,
	)
	return &Result{Message: message, Kind: d.Kind, Compressed: d.Compressed}, nil
}

// inflate reverses CompressData, refusing output larger than maxInflated
func (e *Engine) inflate(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("inflate: %v: %w", err, stegerr.ErrMalformedFrame)
	}
	defer reader.Close()

	out, err := io.ReadAll(io.LimitReader(reader, e.maxInflated+1))
	if err != nil {
		return nil, fmt.Errorf("inflate: %v: %w", err, stegerr.ErrMalformedFrame)
	}
	if int64(len(out)) > e.maxInflated {
		return nil, fmt.Errorf("inflate: output exceeds %d bytes: %w", e.maxInflated, stegerr.ErrMalformedFrame)
	}
	return out, nil
}
