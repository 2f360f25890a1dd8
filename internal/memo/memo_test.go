package memo_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfold/fold"
	"github.com/katalvlaran/lvfold/internal/memo"
	"github.com/katalvlaran/lvfold/pairing"
)

func foldFunc(seq string) memo.ComputeFunc {
	return func(ctx context.Context) (fold.Result, error) {
		return fold.Fold(seq, pairing.Basic, fold.WithContext(ctx))
	}
}

func TestCache_HitReturnsCopy(t *testing.T) {
	c, err := memo.New(4)
	require.NoError(t, err)
	k := memo.Key{Sequence: "GCGC", Model: pairing.NameBasic, MaxStructures: 10}

	r, hit, err := c.GetOrCompute(context.Background(), k, foldFunc("GCGC"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, c.Len())

	r.Structures[0] = "mutated"
	r.Count.SetInt64(0)

	again, hit, err := c.GetOrCompute(context.Background(), k, func(context.Context) (fold.Result, error) {
		t.Fatal("compute must not run on a hit")
		return fold.Result{}, nil
	})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"()()", "(())"}, again.Structures)
	assert.Equal(t, int64(7), again.Count.Int64())
}

func TestCache_Eviction(t *testing.T) {
	c, err := memo.New(1)
	require.NoError(t, err)
	a := memo.Key{Sequence: "GC", Model: pairing.NameBasic}
	b := memo.Key{Sequence: "GG", Model: pairing.NameBasic}

	c.Add(a, fold.Result{Sequence: "GC"})
	c.Add(b, fold.Result{Sequence: "GG"})

	_, ok := c.Get(a)
	assert.False(t, ok)
	got, ok := c.Get(b)
	assert.True(t, ok)
	assert.Equal(t, "GG", got.Sequence)
}

func TestCache_ErrorsAndTruncationNotCached(t *testing.T) {
	c, err := memo.New(4)
	require.NoError(t, err)
	k := memo.Key{Sequence: "AAAAAAAAAA", Model: pairing.NamePromiscuous, MaxStructures: 2}

	r, _, err := c.GetOrCompute(context.Background(), k, func(ctx context.Context) (fold.Result, error) {
		return fold.Fold("AAAAAAAAAA", pairing.Promiscuous, fold.WithContext(ctx), fold.WithMaxStructures(2))
	})
	assert.ErrorIs(t, err, fold.ErrEnumerationLimitExceeded)
	assert.True(t, r.Truncated)
	assert.Equal(t, 0, c.Len())

	boom := errors.New("boom")
	_, _, err = c.GetOrCompute(context.Background(), memo.Key{Sequence: "GC"}, func(context.Context) (fold.Result, error) {
		return fold.Result{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestCache_Disabled(t *testing.T) {
	c, err := memo.New(0)
	require.NoError(t, err)
	k := memo.Key{Sequence: "GC", Model: pairing.NameBasic}

	for i := 0; i < 2; i++ {
		_, hit, err := c.GetOrCompute(context.Background(), k, foldFunc("GC"))
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Equal(t, 0, c.Len())

	var nilCache *memo.Cache
	_, hit, err := nilCache.GetOrCompute(context.Background(), k, foldFunc("GC"))
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_ConcurrentMissesComputeOnce(t *testing.T) {
	c, err := memo.New(4)
	require.NoError(t, err)
	k := memo.Key{Sequence: "GCGC", Model: pairing.NameBasic}

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func(ctx context.Context) (fold.Result, error) {
		calls.Add(1)
		<-release
		return fold.Fold("GCGC", pairing.Basic, fold.WithContext(ctx))
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, _, err := c.GetOrCompute(context.Background(), k, compute)
			assert.NoError(t, err)
			assert.Equal(t, 2.0, r.Optimum)
		}()
	}
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(8))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.Equal(t, 1, c.Len())
}

func TestCache_CanceledCallerDoesNotFailOthers(t *testing.T) {
	c, err := memo.New(4)
	require.NoError(t, err)
	k := memo.Key{Sequence: "GCGC", Model: pairing.NameBasic}

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	compute := func(ctx context.Context) (fold.Result, error) {
		once.Do(func() { close(started) })
		select {
		case <-release:
		case <-ctx.Done():
			return fold.Result{}, ctx.Err()
		}
		return fold.Fold("GCGC", pairing.Basic, fold.WithContext(ctx))
	}

	first, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrCompute(first, k, compute)
		firstErr <- err
	}()
	<-started

	type outcome struct {
		r   fold.Result
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		r, _, err := c.GetOrCompute(context.Background(), k, compute)
		second <- outcome{r, err}
	}()

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	time.Sleep(10 * time.Millisecond)
	close(release)

	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, 2.0, got.r.Optimum)
	assert.Equal(t, 1, c.Len())
}

func TestCache_CanceledBeforeLookup(t *testing.T) {
	c, err := memo.New(4)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = c.GetOrCompute(ctx, memo.Key{Sequence: "GC"}, foldFunc("GC"))
	assert.ErrorIs(t, err, context.Canceled)
}
