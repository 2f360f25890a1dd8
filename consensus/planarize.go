package consensus

import (
	"github.com/katalvlaran/lvfold/fold"
	"github.com/katalvlaran/lvfold/structure"
)

// unitWeights admits exactly the pairs of a partner array, each worth 1.
type unitWeights struct {
	n     int
	pairs map[structure.Pair]struct{}
}

func (u unitWeights) Len() int { return u.n }

func (u unitWeights) Pairable(i, k int) bool {
	_, ok := u.pairs[structure.Pair{I: i, J: k}]
	return ok
}

func (u unitWeights) Weight(int, int) float64 { return 1 }

// Planarize returns a maximum-cardinality non-crossing subset of the pairs
// in partners, as a new partner array of the same length.
//
// A partner array that is already non-crossing is returned as a copy.
// Otherwise the folding fill runs with unit weights restricted to the
// existing pairs, and the first optimal witness is kept. Pairs of any span
// are eligible, including ones enclosing fewer than three positions.
// Entries pointing outside [0, n) are dropped.
// Complexity: O(n³) time, O(n²) memory in the crossing case.
func Planarize(partners []int) []int {
	n := len(partners)
	if !structure.IsSelfCrossing(partners) {
		out := make([]int, n)
		copy(out, partners)

		return out
	}

	w := unitWeights{n: n, pairs: make(map[structure.Pair]struct{})}
	for i, j := range partners {
		if j > i && j < n {
			w.pairs[structure.Pair{I: i, J: j}] = struct{}{}
		}
	}
	tab, err := fold.BuildWeighted(w)
	if err != nil {
		// Background context: the fill cannot fail.
		panic(err)
	}
	en, err := fold.NewEnumerator(tab, w)
	if err != nil {
		panic(err)
	}

	return en.Witness()
}
