package structure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfold/structure"
)

// TestParse_RoundTrip verifies Parse and Format are inverse on valid input.
func TestParse_RoundTrip(t *testing.T) {
	cases := []string{"", ".", "()", "(())", "()()", "((..)).(.)", "(.((.((..).)).))"}
	for _, db := range cases {
		partners, err := structure.Parse(db)
		require.NoError(t, err, db)
		require.Len(t, partners, len(db))

		got, err := structure.Format(partners)
		require.NoError(t, err, db)
		assert.Equal(t, db, got)
	}
}

// TestParse_Partners checks the partner array of a nested structure.
func TestParse_Partners(t *testing.T) {
	partners, err := structure.Parse("((.))")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, -1, 1, 0}, partners)
}

// TestParse_Errors covers unmatched brackets and foreign symbols.
func TestParse_Errors(t *testing.T) {
	_, err := structure.Parse("(()")
	assert.ErrorIs(t, err, structure.ErrUnbalanced)

	_, err = structure.Parse("())")
	assert.ErrorIs(t, err, structure.ErrUnbalanced)

	_, err = structure.Parse("(x)")
	assert.ErrorIs(t, err, structure.ErrInvalidSymbol)
}

// TestFormat_Rejects covers crossing, asymmetric and out-of-range arrays.
func TestFormat_Rejects(t *testing.T) {
	// (0,2) and (1,3) interleave
	_, err := structure.Format([]int{2, 3, 0, 1})
	assert.ErrorIs(t, err, structure.ErrCrossing)

	_, err = structure.Format([]int{1, -1})
	assert.ErrorIs(t, err, structure.ErrAsymmetric)

	_, err = structure.Format([]int{5, -1})
	assert.ErrorIs(t, err, structure.ErrOutOfRange)

	_, err = structure.Format([]int{0})
	assert.ErrorIs(t, err, structure.ErrOutOfRange)
}

// TestIsSelfCrossing distinguishes nested, sequential and interleaved pairs.
func TestIsSelfCrossing(t *testing.T) {
	assert.False(t, structure.IsSelfCrossing(nil))
	assert.False(t, structure.IsSelfCrossing([]int{3, 2, 1, 0}))
	assert.False(t, structure.IsSelfCrossing([]int{1, 0, 3, 2}))
	assert.True(t, structure.IsSelfCrossing([]int{2, 3, 0, 1}))
	assert.True(t, structure.IsSelfCrossing([]int{-1, 3, 4, 1, 2}))
}

// TestPairs_FromPairs converts back and forth between pair lists and partners.
func TestPairs_FromPairs(t *testing.T) {
	partners, err := structure.FromPairs(6, []structure.Pair{{I: 5, J: 0}, {I: 1, J: 4}})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, -1, -1, 1, 0}, partners)
	assert.Equal(t, []structure.Pair{{I: 0, J: 5}, {I: 1, J: 4}}, structure.Pairs(partners))

	_, err = structure.FromPairs(3, []structure.Pair{{I: 0, J: 3}})
	assert.ErrorIs(t, err, structure.ErrOutOfRange)

	_, err = structure.FromPairs(4, []structure.Pair{{I: 0, J: 3}, {I: 0, J: 2}})
	assert.ErrorIs(t, err, structure.ErrAsymmetric)
}

// TestSortPairs orders by I, then J.
func TestSortPairs(t *testing.T) {
	pairs := []structure.Pair{{I: 2, J: 5}, {I: 0, J: 9}, {I: 2, J: 3}}
	structure.SortPairs(pairs)
	assert.Equal(t, []structure.Pair{{I: 0, J: 9}, {I: 2, J: 3}, {I: 2, J: 5}}, pairs)
}
