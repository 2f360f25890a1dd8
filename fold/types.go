package fold

import (
	"context"
	"errors"
	"math/big"

	"github.com/katalvlaran/lvfold/pairing"
)

// Sentinel errors returned by the folding engine.
var (
	// ErrNilModel indicates a nil pairing.Model or nil Weights.
	ErrNilModel = errors.New("fold: pairing model is nil")

	// ErrNilMatrix indicates a nil *ScoreMatrix was handed to the enumerator.
	ErrNilMatrix = errors.New("fold: score matrix is nil")

	// ErrDimensionMismatch indicates a score matrix and weights of different
	// lengths, or a structure whose length differs from the sequence.
	ErrDimensionMismatch = errors.New("fold: length mismatch")

	// ErrEnumerationLimitExceeded indicates that more co-optimal structures
	// exist than Options.MaxStructures allows. Enumerate still returns the
	// first MaxStructures results alongside it.
	ErrEnumerationLimitExceeded = errors.New("fold: enumeration limit exceeded")

	// ErrForbiddenPair indicates a structure that pairs two positions the
	// model does not admit.
	ErrForbiddenPair = errors.New("fold: structure contains a forbidden pair")

	// ErrStop may be returned from a Walk callback to end the walk early
	// without error.
	ErrStop = errors.New("fold: stop")
)

// DefaultMaxStructures is the default cap on materialized structures.
const DefaultMaxStructures = 10000

// Options configures the fills and the enumerator.
//
//   - Ctx           — cancellation; defaults to context.Background().
//   - MaxStructures — cap for Enumerate; 0 disables the cap.
//     Default DefaultMaxStructures. Walk and Structures ignore it.
type Options struct {
	Ctx           context.Context
	MaxStructures int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Background context and the default cap.
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		MaxStructures: DefaultMaxStructures,
	}
}

// WithContext sets the cancellation context. A nil ctx keeps Background.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxStructures caps Enumerate at limit results; 0 disables the cap.
// A negative limit is a programming error and panics.
func WithMaxStructures(limit int) Option {
	if limit < 0 {
		panic("fold: WithMaxStructures: limit must be non-negative")
	}

	return func(o *Options) {
		o.MaxStructures = limit
	}
}

// gatherOptions applies opts over DefaultOptions.
func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	var fn Option
	for _, fn = range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// Weights is the index-level view of a pairing model that the engine runs on.
// Pairable and Weight are only called with 0 <= i < k < Len().
type Weights interface {
	Len() int
	Pairable(i, k int) bool
	Weight(i, k int) float64
}

// SequenceWeights adapts a sequence and a pairing.Model to Weights.
type SequenceWeights struct {
	Seq   string
	Model pairing.Model
}

// ForSequence binds seq to model.
func ForSequence(seq string, model pairing.Model) SequenceWeights {
	return SequenceWeights{Seq: seq, Model: model}
}

// Len returns the sequence length.
func (w SequenceWeights) Len() int { return len(w.Seq) }

// Pairable reports model.CanPair(seq[i], seq[k]).
func (w SequenceWeights) Pairable(i, k int) bool { return w.Model.CanPair(w.Seq[i], w.Seq[k]) }

// Weight returns model.Score(seq[i], seq[k]).
func (w SequenceWeights) Weight(i, k int) float64 { return w.Model.Score(w.Seq[i], w.Seq[k]) }

// Result bundles everything Fold computes for one sequence.
type Result struct {
	Sequence   string   // input sequence as folded
	Model      string   // pairing.NameOf(model)
	Optimum    float64  // tab[0][n-1]
	Structures []string // co-optimal structures in traversal order
	Count      *big.Int // total number of admissible structures
	Truncated  bool     // true when Structures stopped at the cap
}
