package consensus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfold/consensus"
	"github.com/katalvlaran/lvfold/structure"
)

func countPairs(partners []int) int {
	n := 0
	for i, j := range partners {
		if j > i {
			n++
		}
	}

	return n
}

// TestPlanarize_NonCrossingIsCopied returns an equal but distinct slice.
func TestPlanarize_NonCrossingIsCopied(t *testing.T) {
	in, err := structure.Parse("((..)).()")
	require.NoError(t, err)

	out := consensus.Planarize(in)
	assert.Equal(t, in, out)

	out[0] = structure.NoPartner
	assert.Equal(t, 5, in[0], "input must not be aliased")
}

// TestPlanarize_ShortSpansStayEligible: pairs closing tiny loops are kept
// like any other, and ties leave the lower index unpaired.
func TestPlanarize_ShortSpansStayEligible(t *testing.T) {
	assert.Equal(t, []int{-1, 3, -1, 1}, consensus.Planarize([]int{2, 3, 0, 1}))
	assert.Equal(t, []int{-1, 3, -1, 1, 5, 4}, consensus.Planarize([]int{2, 3, 0, 1, 5, 4}))
}

// TestPlanarize_Pseudoknot drops the fewest pairs.
func TestPlanarize_Pseudoknot(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		pairs []structure.Pair
		keep  int
	}{
		{name: "two crossing", n: 4, pairs: []structure.Pair{{I: 0, J: 2}, {I: 1, J: 3}}, keep: 1},
		{name: "H-type", n: 9, pairs: []structure.Pair{{I: 0, J: 5}, {I: 1, J: 4}, {I: 2, J: 8}, {I: 3, J: 7}}, keep: 2},
		{name: "knot plus hairpin", n: 12, pairs: []structure.Pair{{I: 0, J: 4}, {I: 2, J: 6}, {I: 8, J: 11}, {I: 9, J: 10}}, keep: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := structure.FromPairs(tc.n, tc.pairs)
			require.NoError(t, err)
			require.True(t, structure.IsSelfCrossing(in))

			out := consensus.Planarize(in)
			require.Len(t, out, tc.n)
			require.NoError(t, structure.Validate(out))
			assert.False(t, structure.IsSelfCrossing(out))
			assert.Equal(t, tc.keep, countPairs(out))
			for i, j := range out {
				if j != structure.NoPartner {
					assert.Equal(t, in[i], j, "planarized pair (%d,%d) not in input", i, j)
				}
			}
		})
	}
}
