package fold_test

import (
	"math/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfold/fold"
	"github.com/katalvlaran/lvfold/pairing"
	"github.com/katalvlaran/lvfold/structure"
)

// TestWitness_MemoryIsLinear: a single witness touches at most n windows,
// so its allocations stay far below one entry per window.
func TestWitness_MemoryIsLinear(t *testing.T) {
	const n = 600
	seq := randomSeq(rand.New(rand.NewSource(11)), n)
	w := fold.ForSequence(seq, pairing.Wobble)
	tab, err := fold.BuildWeighted(w)
	require.NoError(t, err)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	en, err := fold.NewEnumerator(tab, w)
	require.NoError(t, err)
	partners := en.Witness()

	runtime.ReadMemStats(&after)

	score, err := fold.Evaluate(mustFormat(t, partners), w)
	require.NoError(t, err)
	assert.Equal(t, tab.Optimum(), score)

	allocated := after.TotalAlloc - before.TotalAlloc
	assert.Less(t, allocated, uint64(n*n), "witness allocated %d bytes", allocated)
}

func mustFormat(t *testing.T, partners []int) string {
	t.Helper()
	db, err := structure.Format(partners)
	require.NoError(t, err)

	return db
}
