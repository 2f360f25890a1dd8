package fold

import (
	"math/big"

	"github.com/katalvlaran/lvfold/pairing"
)

// bigOne is the multiplicative identity for empty ranges. Never mutated.
var bigOne = big.NewInt(1)

// CountMatrix is the triangular table of exact structure counts.
// cnt[i][j] is the number of admissible non-crossing matchings of [i, j].
type CountMatrix struct {
	n    int        // sequence length
	data []*big.Int // flat row-major n×n; only i <= j cells are set
}

// Len returns the sequence length the table was built for.
func (c *CountMatrix) Len() int { return c.n }

// at returns the stored cell without copying; empty ranges yield bigOne.
func (c *CountMatrix) at(i, j int) *big.Int {
	if i > j {
		return bigOne
	}

	return c.data[i*c.n+j]
}

// At returns a copy of cnt[i][j]. Empty ranges (i > j) count 1;
// indices outside the table also return 1.
func (c *CountMatrix) At(i, j int) *big.Int {
	if i > j || i < 0 || j >= c.n {
		return big.NewInt(1)
	}

	return new(big.Int).Set(c.data[i*c.n+j])
}

// Total returns a copy of cnt[0][n-1]; the empty sequence has exactly one
// (empty) structure.
func (c *CountMatrix) Total() *big.Int {
	return c.At(0, c.n-1)
}

// BuildCounts fills the count table for seq under model.
// Only model.CanPair is consulted; scores are irrelevant to counting.
func BuildCounts(seq string, model pairing.Model, opts ...Option) (*CountMatrix, error) {
	if model == nil {
		return nil, ErrNilModel
	}

	return BuildCountsWeighted(ForSequence(seq, model), opts...)
}

// BuildCountsWeighted fills cnt[i][j] bottom-up by increasing window length:
//
//	cnt[i][i] = 1
//	cnt[i][j] = cnt[i+1][j] + Σ_{i<k≤j, Pairable(i,k)} cnt[i+1][k-1] · cnt[k+1][j]
//
// with empty ranges counting 1. Arithmetic is arbitrary precision, so the
// exponential growth of counts cannot overflow.
//
// The context is polled once per window length.
// Complexity: Θ(n³) big-integer operations, Θ(n²) cells.
func BuildCountsWeighted(w Weights, opts ...Option) (*CountMatrix, error) {
	if w == nil {
		return nil, ErrNilModel
	}
	o := gatherOptions(opts)

	n := w.Len()
	cnt := &CountMatrix{n: n, data: make([]*big.Int, n*n)}

	var (
		m, i, j, k   int
		inner, outer *big.Int
		cell         *big.Int
		prod         = new(big.Int) // scratch
	)
	for m = 1; m <= n; m++ {
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}
		for i = 0; i+m-1 < n; i++ {
			j = i + m - 1
			if i == j {
				cnt.data[i*n+j] = big.NewInt(1)
				continue
			}
			cell = new(big.Int).Set(cnt.at(i+1, j)) // leave i unpaired
			for k = i + 1; k <= j; k++ {
				if !w.Pairable(i, k) {
					continue
				}
				inner = cnt.at(i+1, k-1)
				outer = cnt.at(k+1, j)
				cell.Add(cell, prod.Mul(inner, outer))
			}
			cnt.data[i*n+j] = cell
		}
	}

	return cnt, nil
}

// Count returns the exact number of admissible structures of seq.
func Count(seq string, model pairing.Model, opts ...Option) (*big.Int, error) {
	cnt, err := BuildCounts(seq, model, opts...)
	if err != nil {
		return nil, err
	}

	return cnt.Total(), nil
}
