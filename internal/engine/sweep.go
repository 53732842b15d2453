package engine

import (
	"context"
	"image"
	"unicode"
	"unicode/utf8"

	"github.com/faanross/stegokey/internal/keyx"
	"github.com/faanross/stegokey/internal/scrypto"
	"github.com/faanross/stegokey/internal/stego"
	"github.com/faanross/stegokey/internal/stegerr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Candidate is the outcome of decoding under one key pair
type Candidate struct {
	Pair    keyx.KeyPair
	Secret  int
	Message []byte
	Kind    Kind
	Err     error
}

// Plausible reports whether a candidate decoded cleanly and, for text,
// consists of printable UTF-8
func (c Candidate) Plausible() bool {
	if c.Err != nil {
		return false
	}
	if c.Kind != KindText {
		return true
	}
	if !utf8.Valid(c.Message) {
		return false
	}
	for _, r := range string(c.Message) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Sweep decodes img under every valid key pair of the group. The frame is
// read once since it does not depend on the key; the per-pair transforms run
// concurrently. Candidates come back in private-key order.
func (e *Engine) Sweep(ctx context.Context, img image.Image) ([]Candidate, error) {
	log := e.logger.With("op", "sweep", "op_id", uuid.NewString())

	d, err := stego.ExtractFrame(img)
	if err != nil {
		return nil, stegerr.Wrap("sweep", err)
	}

	pairs := e.group.Pairs()
	candidates := make([]Candidate, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.sweepWorkers)

	for i, kp := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c := Candidate{Pair: kp, Kind: d.Kind}
			c.Secret, c.Err = e.group.Secret(kp)
			if c.Err == nil {
				c.Message = scrypto.Transform(d.Payload, c.Secret)
				if d.Compressed {
					c.Message, c.Err = e.inflate(c.Message)
				}
			}
			candidates[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stegerr.Wrap("sweep", err)
	}

	plausible := 0
	for _, c := range candidates {
		if c.Plausible() {
			plausible++
		}
	}
	log.Info("sweep finished", "pairs", len(pairs), "plausible", plausible)

	return candidates, nil
}
