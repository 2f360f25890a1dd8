// Package service is the caller-side facade over the folding library: it
// resolves models by name, normalizes input, applies the configured
// deadline and cap, caches results and records metrics and logs.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvfold/consensus"
	"github.com/katalvlaran/lvfold/design"
	"github.com/katalvlaran/lvfold/fold"
	"github.com/katalvlaran/lvfold/internal/config"
	"github.com/katalvlaran/lvfold/internal/logging"
	"github.com/katalvlaran/lvfold/internal/memo"
	"github.com/katalvlaran/lvfold/internal/metrics"
	"github.com/katalvlaran/lvfold/pairing"
	"github.com/katalvlaran/lvfold/structure"
)

// ErrInvalidInput wraps every error caused by the request itself
// (unknown model, malformed structure, length mismatch).
var ErrInvalidInput = errors.New("service: invalid input")

// Operation names used in logs and metrics.
const (
	OpFold      = "fold"
	OpCount     = "count"
	OpConsensus = "consensus"
	OpDesign    = "design"
	OpPlanarize = "planarize"
)

// unknownModel labels operations whose model name did not resolve.
const unknownModel = "unknown"

// ConsensusResult is the outcome of a consensus request.
type ConsensusResult struct {
	Length    int    `json:"length" yaml:"length"`
	Partners  []int  `json:"partners" yaml:"partners"`
	Structure string `json:"structure" yaml:"structure"`
	Support   int    `json:"support" yaml:"support"`
}

// DesignResult is the outcome of a design request.
type DesignResult struct {
	Target     string   `json:"target" yaml:"target"`
	Sequence   string   `json:"sequence" yaml:"sequence"`
	Model      string   `json:"model" yaml:"model"`
	Solved     bool     `json:"solved" yaml:"solved"`
	Unique     bool     `json:"unique" yaml:"unique"`
	Optimum    float64  `json:"optimum" yaml:"optimum"`
	Structures []string `json:"structures" yaml:"structures"`
	Count      *big.Int `json:"count" yaml:"-"`
}

// Folder runs folding operations with the configured policy.
// It is safe for concurrent use.
type Folder struct {
	cfg     config.FoldConfig
	cache   *memo.Cache
	metrics *metrics.Metrics
	log     *zap.Logger
}

// New creates a Folder. m and log may be nil.
func New(cfg *config.Config, m *metrics.Metrics, log *zap.Logger) (*Folder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cache, err := memo.New(cfg.Cache.Size)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Folder{cfg: cfg.Fold, cache: cache, metrics: m, log: log.Named("folder")}, nil
}

// resolve maps a model name (empty means the configured default) to a model
// and its canonical name.
func (f *Folder) resolve(name string) (pairing.Model, string, error) {
	if name == "" {
		name = f.cfg.Model
	}
	m, err := pairing.ByName(name)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return m, pairing.NameOf(m), nil
}

// withDeadline applies the configured timeout, if any.
func (f *Folder) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, f.cfg.Timeout)
	}

	return context.WithCancel(ctx)
}

// observe records metrics and logs the outcome of one operation.
func (f *Folder) observe(ctx context.Context, op, model string, start time.Time, outcome string, err error, fields ...zap.Field) {
	elapsed := time.Since(start)
	if f.metrics != nil {
		f.metrics.Operations.WithLabelValues(op, model, outcome).Inc()
		f.metrics.Duration.WithLabelValues(op).Observe(elapsed.Seconds())
	}

	l := logging.FromContext(ctx, f.log)
	fields = append(fields, zap.String("operation", op), zap.String("model", model), zap.Duration("elapsed", elapsed))
	switch {
	case err != nil:
		l.Warn("operation failed", append(fields, zap.Error(err))...)
	case outcome == metrics.OutcomeTruncated:
		l.Info("enumeration truncated", fields...)
	default:
		l.Debug("operation done", fields...)
	}
}

// checkLength rejects inputs longer than the configured limit; the tables
// grow quadratically with n.
func (f *Folder) checkLength(n int) error {
	if f.cfg.MaxLength > 0 && n > f.cfg.MaxLength {
		return fmt.Errorf("%w: length %d exceeds limit %d", ErrInvalidInput, n, f.cfg.MaxLength)
	}

	return nil
}

func outcomeOf(err error, truncated bool) string {
	switch {
	case err != nil:
		return metrics.OutcomeError
	case truncated:
		return metrics.OutcomeTruncated
	default:
		return metrics.OutcomeOK
	}
}

// Fold normalizes seq and returns its optimum, co-optimal structures and
// count. Hitting the structure cap is not an error: the result comes back
// with Truncated set. Sequences longer than the configured MaxLength are
// rejected before any table is built.
func (f *Folder) Fold(ctx context.Context, seq, modelName string) (fold.Result, error) {
	start := time.Now()
	model, name, err := f.resolve(modelName)
	if err != nil {
		f.observe(ctx, OpFold, unknownModel, start, metrics.OutcomeError, err)
		return fold.Result{}, err
	}
	seq = pairing.Normalize(seq)
	if err = f.checkLength(len(seq)); err != nil {
		f.observe(ctx, OpFold, name, start, metrics.OutcomeError, err, zap.Int("length", len(seq)))
		return fold.Result{}, err
	}
	if f.metrics != nil {
		f.metrics.SequenceLength.Observe(float64(len(seq)))
	}

	ctx, cancel := f.withDeadline(ctx)
	defer cancel()

	key := memo.Key{Sequence: seq, Model: name, MaxStructures: f.cfg.MaxStructures}
	res, hit, err := f.cache.GetOrCompute(ctx, key, func(ctx context.Context) (fold.Result, error) {
		ctx, cancel := f.withDeadline(ctx)
		defer cancel()

		return fold.Fold(seq, model, fold.WithContext(ctx), fold.WithMaxStructures(f.cfg.MaxStructures))
	})
	if errors.Is(err, fold.ErrEnumerationLimitExceeded) {
		err = nil
	}
	if f.metrics != nil {
		if hit {
			f.metrics.CacheHits.Inc()
		} else {
			f.metrics.CacheMisses.Inc()
		}
		if err == nil {
			f.metrics.Structures.Observe(float64(len(res.Structures)))
		}
	}
	f.observe(ctx, OpFold, name, start, outcomeOf(err, res.Truncated), err,
		zap.Int("length", len(seq)), zap.Bool("cache_hit", hit))
	if err != nil {
		return fold.Result{}, err
	}

	return res, nil
}

// FoldBatch folds every sequence with at most cfg.Workers in flight. The
// first failure cancels the rest; results keep the input order.
func (f *Folder) FoldBatch(ctx context.Context, seqs []string, modelName string) ([]fold.Result, error) {
	out := make([]fold.Result, len(seqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Workers)
	for idx, seq := range seqs {
		g.Go(func() error {
			res, err := f.Fold(gctx, seq, modelName)
			if err != nil {
				return fmt.Errorf("sequence %d: %w", idx, err)
			}
			out[idx] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Count returns the exact number of admissible structures of seq.
func (f *Folder) Count(ctx context.Context, seq, modelName string) (*big.Int, error) {
	start := time.Now()
	model, name, err := f.resolve(modelName)
	if err != nil {
		f.observe(ctx, OpCount, unknownModel, start, metrics.OutcomeError, err)
		return nil, err
	}
	seq = pairing.Normalize(seq)
	if err = f.checkLength(len(seq)); err != nil {
		f.observe(ctx, OpCount, name, start, metrics.OutcomeError, err, zap.Int("length", len(seq)))
		return nil, err
	}

	ctx, cancel := f.withDeadline(ctx)
	defer cancel()

	total, err := fold.Count(seq, model, fold.WithContext(ctx))
	f.observe(ctx, OpCount, name, start, outcomeOf(err, false), err, zap.Int("length", len(seq)))

	return total, err
}

// Consensus extracts the consensus of dot-bracket structures.
func (f *Folder) Consensus(ctx context.Context, structures []string) (ConsensusResult, error) {
	start := time.Now()
	res, err := f.consensus(ctx, structures)
	f.observe(ctx, OpConsensus, "frequency", start, outcomeOf(err, false), err, zap.Int("inputs", len(structures)))

	return res, err
}

func (f *Folder) consensus(ctx context.Context, structures []string) (ConsensusResult, error) {
	inputs := make([]consensus.Input, 0, len(structures))
	for idx, db := range structures {
		if err := f.checkLength(len(db)); err != nil {
			return ConsensusResult{}, fmt.Errorf("structure %d: %w", idx, err)
		}
		in, err := consensus.FromDotBracket(db)
		if err != nil {
			return ConsensusResult{}, fmt.Errorf("%w: structure %d: %w", ErrInvalidInput, idx, err)
		}
		inputs = append(inputs, in)
	}

	ctx, cancel := f.withDeadline(ctx)
	defer cancel()

	ft := consensus.Tabulate(inputs...)
	if err := f.checkLength(ft.Len()); err != nil {
		return ConsensusResult{}, err
	}
	partners, err := consensus.ExtractFrom(ft, fold.WithContext(ctx))
	if err != nil {
		return ConsensusResult{}, err
	}
	db, err := structure.Format(partners)
	if err != nil {
		return ConsensusResult{}, err
	}

	return ConsensusResult{Length: ft.Len(), Partners: partners, Structure: db, Support: ft.Support(partners)}, nil
}

// Planarize drops the fewest pairs needed to make a pair list non-crossing.
func (f *Folder) Planarize(ctx context.Context, n int, pairs []structure.Pair) ([]int, error) {
	start := time.Now()
	if err := f.checkLength(n); err != nil {
		f.observe(ctx, OpPlanarize, "unit", start, metrics.OutcomeError, err, zap.Int("length", n))
		return nil, err
	}
	partners, err := structure.FromPairs(n, pairs)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidInput, err)
		f.observe(ctx, OpPlanarize, "unit", start, metrics.OutcomeError, err)
		return nil, err
	}
	out := consensus.Planarize(partners)
	f.observe(ctx, OpPlanarize, "unit", start, metrics.OutcomeOK, nil, zap.Int("length", n))

	return out, nil
}

// Design checks seq against target; an empty seq is replaced by the seed.
func (f *Folder) Design(ctx context.Context, target, seq, modelName string) (DesignResult, error) {
	start := time.Now()
	res, err := f.design(ctx, target, seq, modelName)
	label := res.Model
	if label == "" {
		label = unknownModel
	}
	f.observe(ctx, OpDesign, label, start, outcomeOf(err, false), err, zap.Bool("solved", res.Solved))

	return res, err
}

func (f *Folder) design(ctx context.Context, target, seq, modelName string) (DesignResult, error) {
	model, name, err := f.resolve(modelName)
	if err != nil {
		return DesignResult{}, err
	}
	if err = f.checkLength(len(target)); err != nil {
		return DesignResult{Model: name}, err
	}
	seq = pairing.Normalize(seq)
	if err = f.checkLength(len(seq)); err != nil {
		return DesignResult{Model: name}, err
	}
	if seq == "" {
		if seq, err = design.Seed(target); err != nil {
			return DesignResult{Model: name}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	ctx, cancel := f.withDeadline(ctx)
	defer cancel()

	v, err := design.Check(seq, target, model, fold.WithContext(ctx))
	if err != nil {
		if errors.Is(err, design.ErrLengthMismatch) || isStructureError(err) {
			err = fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return DesignResult{Model: name}, err
	}

	return DesignResult{
		Target:     target,
		Sequence:   seq,
		Model:      name,
		Solved:     v.Solved,
		Unique:     v.Unique,
		Optimum:    v.Optimum,
		Structures: v.Structures,
		Count:      v.Count,
	}, nil
}

func isStructureError(err error) bool {
	return errors.Is(err, structure.ErrUnbalanced) || errors.Is(err, structure.ErrInvalidSymbol)
}
