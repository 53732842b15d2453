// Package engine ties key agreement, the keyed transform, framing and the LSB
// codec together into Encode and Decode.
//
// An Engine only holds immutable configuration, so one value may serve any
// number of concurrent calls. Every call owns its carrier copy, frame and
// message buffers exclusively.
package engine

import (
	"image"
	"unicode/utf8"

	"github.com/faanross/stegokey/internal/frame"
	"github.com/faanross/stegokey/internal/keyx"
	"github.com/faanross/stegokey/internal/logging"
	"github.com/faanross/stegokey/internal/params"
	"github.com/faanross/stegokey/internal/stego"
)

// Kind tells the caller how to render a decoded message
type Kind = frame.Kind

const (
	KindText   = frame.KindText
	KindBinary = frame.KindBinary
)

const defaultMaxInflated = 64 << 20

// Engine encodes messages into carriers and decodes them back
type Engine struct {
	group        keyx.Group
	logger       logging.Logger
	compress     bool
	sweepWorkers int
	maxInflated  int64
}

// Option configures an Engine
type Option func(*Engine)

// WithGroup replaces the default G=9, P=23 parameters
func WithGroup(g keyx.Group) Option {
	return func(e *Engine) { e.group = g }
}

// WithLogger attaches a logger; the default discards everything
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCompression compresses messages before the keyed transform whenever
// that makes them smaller
func WithCompression(on bool) Option {
	return func(e *Engine) { e.compress = on }
}

// WithSweepWorkers bounds the parallelism of Sweep
func WithSweepWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.sweepWorkers = n
		}
	}
}

// WithMaxInflated caps how large a compressed payload may grow on Decode
func WithMaxInflated(n int64) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxInflated = n
		}
	}
}

// New creates an Engine
func New(opts ...Option) *Engine {
	e := &Engine{
		group:        keyx.DefaultGroup(),
		logger:       logging.New(nil),
		sweepWorkers: 4,
		maxInflated:  defaultMaxInflated,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Group returns the key agreement parameters in use
func (e *Engine) Group() keyx.Group {
	return e.group
}

// Capacity returns the largest message, in bytes, that fits carrier without
// compression
func (e *Engine) Capacity(carrier image.Image) int {
	n := stego.Capacity(carrier.Bounds())/params.BITS_PER_BYTE - params.HEADER_SIZE
	if n < 0 {
		return 0
	}
	return n
}

// ClassifyKind picks Text for valid UTF-8 and Binary for everything else
func ClassifyKind(msg []byte) Kind {
	if utf8.Valid(msg) {
		return KindText
	}
	return KindBinary
}
