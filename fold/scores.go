package fold

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvfold/pairing"
)

// ScoreMatrix is the triangular table of optimal pairing scores.
// Only cells with i <= j are meaningful; it is stored as a flat row-major
// n×n slice for cache-friendly access, like a dense matrix.
type ScoreMatrix struct {
	n    int       // sequence length
	data []float64 // flat backing storage, length == n*n
}

// newScoreMatrix allocates an n×n zero table. Complexity: O(n²).
func newScoreMatrix(n int) *ScoreMatrix {
	return &ScoreMatrix{n: n, data: make([]float64, n*n)}
}

// Len returns the sequence length the table was built for.
func (t *ScoreMatrix) Len() int { return t.n }

// At returns tab[i][j]. Empty ranges (i > j) are the additive identity 0,
// as are indices outside the table.
// Complexity: O(1).
func (t *ScoreMatrix) At(i, j int) float64 {
	if i > j || i < 0 || j >= t.n {
		return 0
	}

	return t.data[i*t.n+j]
}

// Optimum returns tab[0][n-1], or 0 for the empty sequence.
func (t *ScoreMatrix) Optimum() float64 {
	if t.n == 0 {
		return 0
	}

	return t.data[t.n-1]
}

// String renders the upper triangle, one row per line, for debugging.
func (t *ScoreMatrix) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < t.n; i++ {
		b.WriteByte('[')
		for j = 0; j < t.n; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			if j < i {
				b.WriteString("-")
				continue
			}
			fmt.Fprintf(&b, "%g", t.data[i*t.n+j])
		}
		b.WriteString("]\n")
	}

	return b.String()
}

// pairValue is the candidate score of pairing i with k inside [i, j]:
// Weight(i,k) + tab[i+1][k-1] + tab[k+1][j], summed in exactly this order.
// The fill and the enumerator both go through here so that tie detection
// compares bit-identical values.
func pairValue(t *ScoreMatrix, w Weights, i, j, k int) float64 {
	inner := 0.0
	if k > i+1 {
		inner = t.data[(i+1)*t.n+k-1]
	}
	outer := 0.0
	if k < j {
		outer = t.data[(k+1)*t.n+j]
	}

	return w.Weight(i, k) + inner + outer
}

// BuildScores fills the optimal-score table for seq under model.
// It is BuildWeighted(ForSequence(seq, model), opts...).
func BuildScores(seq string, model pairing.Model, opts ...Option) (*ScoreMatrix, error) {
	if model == nil {
		return nil, ErrNilModel
	}

	return BuildWeighted(ForSequence(seq, model), opts...)
}

// BuildWeighted fills tab[i][j] bottom-up by increasing window length.
//
// Stage 1 (Validate): w must be non-nil.
// Stage 2 (Execute): for m = 1..n, for every window [i, j] of length m:
//
//	tab[i][j] = tab[i+1][j]
//	for k in (i, j]: if Pairable(i,k): tab[i][j] = max(tab[i][j], pairValue(i,j,k))
//
// Stage 3 (Finalize): return the read-only table.
//
// The context is polled once per window length.
// Complexity: Θ(n³) time, Θ(n²) memory.
func BuildWeighted(w Weights, opts ...Option) (*ScoreMatrix, error) {
	if w == nil {
		return nil, ErrNilModel
	}
	o := gatherOptions(opts)

	n := w.Len()
	tab := newScoreMatrix(n)

	var (
		m, i, j, k int
		best, cand float64
	)
	for m = 1; m <= n; m++ {
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}
		if m == 1 {
			continue // tab[i][i] = 0
		}
		for i = 0; i+m-1 < n; i++ {
			j = i + m - 1
			best = tab.data[(i+1)*n+j] // leave i unpaired
			for k = i + 1; k <= j; k++ {
				if !w.Pairable(i, k) {
					continue
				}
				cand = pairValue(tab, w, i, j, k)
				if cand > best {
					best = cand
				}
			}
			tab.data[i*n+j] = best
		}
	}

	return tab, nil
}
