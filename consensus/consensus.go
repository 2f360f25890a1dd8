package consensus

import (
	"github.com/katalvlaran/lvfold/fold"
	"github.com/katalvlaran/lvfold/structure"
)

// Input is one structure contributing to a consensus.
//
// Length is the number of positions the structure is known to cover; it
// lets trailing unpaired positions count towards L. Zero means "only what
// Pairs reach".
type Input struct {
	Length int
	Pairs  []structure.Pair
}

// FromDotBracket parses db into an Input covering len(db) positions.
func FromDotBracket(db string) (Input, error) {
	partners, err := structure.Parse(db)
	if err != nil {
		return Input{}, err
	}

	return Input{Length: len(partners), Pairs: structure.Pairs(partners)}, nil
}

// FromPairs wraps a raw pair list. Pairs may be given in either orientation.
func FromPairs(pairs ...structure.Pair) Input {
	return Input{Pairs: pairs}
}

// FrequencyTable holds, for every observed pair (i,j) with i < j, the number
// of inputs containing it. It implements fold.Weights.
type FrequencyTable struct {
	n      int
	counts map[structure.Pair]int
}

// Tabulate scans every input once and accumulates pair frequencies.
//
// Each pair is normalized to i < j. Pairs with i == j or a negative index
// are skipped. L is 1 + the largest index observed, where an input's
// Length-1 also counts as observed.
// Complexity: O(total pairs).
func Tabulate(inputs ...Input) *FrequencyTable {
	ft := &FrequencyTable{counts: make(map[structure.Pair]int)}
	maxIdx := -1

	var p structure.Pair
	for _, in := range inputs {
		if in.Length-1 > maxIdx {
			maxIdx = in.Length - 1
		}
		for _, raw := range in.Pairs {
			p = raw.Normalized()
			if p.I == p.J || p.I < 0 {
				continue
			}
			ft.counts[p]++
			if p.J > maxIdx {
				maxIdx = p.J
			}
		}
	}
	ft.n = maxIdx + 1

	return ft
}

// Len returns the inferred length L.
func (f *FrequencyTable) Len() int { return f.n }

// Pairable reports whether (i,k) was observed at least once.
func (f *FrequencyTable) Pairable(i, k int) bool {
	return f.counts[structure.Pair{I: i, J: k}] > 0
}

// Weight returns the observation count of (i,k) as a pair weight.
func (f *FrequencyTable) Weight(i, k int) float64 {
	return float64(f.counts[structure.Pair{I: i, J: k}])
}

// Count returns how many inputs contain the pair, in either orientation.
func (f *FrequencyTable) Count(i, j int) int {
	return f.counts[structure.Pair{I: i, J: j}.Normalized()]
}

// Pairs returns the observed pairs sorted by (I, J).
func (f *FrequencyTable) Pairs() []structure.Pair {
	out := make([]structure.Pair, 0, len(f.counts))
	for p := range f.counts {
		out = append(out, p)
	}
	structure.SortPairs(out)

	return out
}

// Extract computes a consensus partner array of length L.
//
// Stage 1 (Validate): tabulate the inputs.
// Stage 2 (Execute): fill the score table with frequencies as weights.
// Stage 3 (Finalize): backtrack a single witness; unpaired positions are -1.
//
// Errors: only the context error from fold.WithContext.
func Extract(inputs []Input, opts ...fold.Option) ([]int, error) {
	return ExtractFrom(Tabulate(inputs...), opts...)
}

// ExtractFrom runs the extraction on an existing table.
func ExtractFrom(ft *FrequencyTable, opts ...fold.Option) ([]int, error) {
	tab, err := fold.BuildWeighted(ft, opts...)
	if err != nil {
		return nil, err
	}
	en, err := fold.NewEnumerator(tab, ft, opts...)
	if err != nil {
		return nil, err
	}

	return en.Witness(), nil
}

// ExtractDotBracket is Extract followed by structure.Format.
func ExtractDotBracket(inputs []Input, opts ...fold.Option) (string, error) {
	partners, err := Extract(inputs, opts...)
	if err != nil {
		return "", err
	}

	return structure.Format(partners)
}

// Support returns the total frequency carried by the pairs of partners,
// i.e. the score the consensus attains.
func (f *FrequencyTable) Support(partners []int) int {
	total := 0
	for i, j := range partners {
		if j > i {
			total += f.Count(i, j)
		}
	}

	return total
}
