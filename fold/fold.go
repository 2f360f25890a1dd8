package fold

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvfold/pairing"
	"github.com/katalvlaran/lvfold/structure"
)

// Enumerate fills the score table of seq and returns its co-optimal
// structures, subject to Options.MaxStructures.
func Enumerate(seq string, model pairing.Model, opts ...Option) ([]string, error) {
	tab, err := BuildScores(seq, model, opts...)
	if err != nil {
		return nil, err
	}
	en, err := NewEnumerator(tab, ForSequence(seq, model), opts...)
	if err != nil {
		return nil, err
	}

	return en.Enumerate()
}

// Fold runs the whole pipeline for one sequence: score fill, enumeration of
// co-optimal structures and exact count.
//
// When the enumeration cap is hit, the returned Result carries the first
// MaxStructures structures with Truncated set, and the error wraps
// ErrEnumerationLimitExceeded. Any other error leaves Result empty.
func Fold(seq string, model pairing.Model, opts ...Option) (Result, error) {
	tab, err := BuildScores(seq, model, opts...)
	if err != nil {
		return Result{}, err
	}
	en, err := NewEnumerator(tab, ForSequence(seq, model), opts...)
	if err != nil {
		return Result{}, err
	}
	structs, enumErr := en.Enumerate()
	if enumErr != nil && !errors.Is(enumErr, ErrEnumerationLimitExceeded) {
		return Result{}, enumErr
	}
	total, err := Count(seq, model, opts...)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Sequence:   seq,
		Model:      pairing.NameOf(model),
		Optimum:    tab.Optimum(),
		Structures: structs,
		Count:      total,
		Truncated:  enumErr != nil,
	}, enumErr
}

// Evaluate re-scores a dot-bracket structure against w by summing the
// weights of its pairs in increasing order of the 5' index.
//
// The sum is exact whenever the weights and their partial sums are exactly
// representable (e.g. the integer-valued shipped models); comparing it to
// a table optimum with == is only meaningful then.
//
// Errors: structure parse errors, ErrDimensionMismatch, ErrForbiddenPair.
func Evaluate(db string, w Weights) (float64, error) {
	if w == nil {
		return 0, ErrNilModel
	}
	partners, err := structure.Parse(db)
	if err != nil {
		return 0, err
	}
	if len(partners) != w.Len() {
		return 0, fmt.Errorf("fold: structure %d vs sequence %d: %w", len(partners), w.Len(), ErrDimensionMismatch)
	}

	total := 0.0
	for i, j := range partners {
		if j <= i {
			continue
		}
		if !w.Pairable(i, j) {
			return 0, fmt.Errorf("fold: pair (%d,%d): %w", i, j, ErrForbiddenPair)
		}
		total += w.Weight(i, j)
	}

	return total, nil
}
