package design

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvfold/fold"
	"github.com/katalvlaran/lvfold/pairing"
	"github.com/katalvlaran/lvfold/structure"
)

var (
	// ErrLengthMismatch indicates a candidate sequence whose length differs
	// from the target structure.
	ErrLengthMismatch = errors.New("design: sequence and target lengths differ")

	// ErrIndexOutOfRange indicates a mutation position outside the sequence.
	ErrIndexOutOfRange = errors.New("design: position out of range")
)

// Targets are sample puzzles, from easy to hard.
var Targets = []string{
	"(((((((..)))))))",
	"(((())))(((())))",
	"(.((.((..).)).))",
	"((((((())))(((())(()))))))",
	"(((())))(((())))(((())))(((())))(((())))(((())))",
}

// bases is the mutation cycle; complements[i] pairs with bases[i].
const (
	bases       = "ACGU"
	complements = "UGCA"
)

// Verdict is the outcome of folding a candidate against a target.
type Verdict struct {
	Solved     bool     // the target is the unique optimal structure
	Unique     bool     // exactly one optimal structure exists
	Optimum    float64  // best attainable score
	Structures []string // first optimal structure in traversal order
	Count      *big.Int // all admissible structures
}

// Seed returns the all-'A' sequence in which every target pair (i,j)
// becomes A at i and U at j.
func Seed(target string) (string, error) {
	partners, err := structure.Parse(target)
	if err != nil {
		return "", err
	}
	seq := make([]byte, len(partners))
	for i, j := range partners {
		if j != structure.NoPartner && j < i {
			seq[i] = 'U'
			continue
		}
		seq[i] = 'A'
	}

	return string(seq), nil
}

// Mutate advances the base at position i to the next one in A→C→G→U→A and,
// if i is paired in target, sets its partner to the complement.
func Mutate(seq, target string, i int) (string, error) {
	partners, err := structure.Parse(target)
	if err != nil {
		return "", err
	}
	if len(partners) != len(seq) {
		return "", fmt.Errorf("design: %d vs %d: %w", len(seq), len(partners), ErrLengthMismatch)
	}
	if i < 0 || i >= len(seq) {
		return "", fmt.Errorf("design: position %d: %w", i, ErrIndexOutOfRange)
	}

	out := []byte(seq)
	next := 0
	for idx := 0; idx < len(bases); idx++ {
		if bases[idx] == out[i] {
			next = (idx + 1) % len(bases)
			break
		}
	}
	out[i] = bases[next]
	if j := partners[i]; j != structure.NoPartner {
		out[j] = complements[next]
	}

	return string(out), nil
}

// Check folds seq under model and compares its optimal structures to
// target. Enumeration stops as soon as a second optimal structure shows
// up, so the verdict stays cheap even when the co-optimal set is huge.
//
// Errors: structure parse errors, ErrLengthMismatch, fold errors
// (e.g. cancellation through fold.WithContext).
func Check(seq, target string, model pairing.Model, opts ...fold.Option) (Verdict, error) {
	if len(seq) != len(target) {
		return Verdict{}, fmt.Errorf("design: %d vs %d: %w", len(seq), len(target), ErrLengthMismatch)
	}
	if _, err := structure.Parse(target); err != nil {
		return Verdict{}, err
	}

	opts = append(append([]fold.Option(nil), opts...), fold.WithMaxStructures(1))
	res, err := fold.Fold(seq, model, opts...)
	if err != nil && !errors.Is(err, fold.ErrEnumerationLimitExceeded) {
		return Verdict{}, err
	}

	unique := !res.Truncated && len(res.Structures) == 1

	return Verdict{
		Solved:     unique && res.Structures[0] == target,
		Unique:     unique,
		Optimum:    res.Optimum,
		Structures: res.Structures,
		Count:      res.Count,
	}, nil
}
