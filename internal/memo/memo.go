// Package memo caches fold results keyed by normalized sequence, model and
// enumeration cap. Concurrent misses on the same key are computed once.
package memo

import (
	"context"
	"fmt"
	"math/big"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/lvfold/fold"
)

// Key identifies one fold request.
type Key struct {
	Sequence      string // already normalized
	Model         string // canonical model name
	MaxStructures int
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%d|%s", k.Model, k.MaxStructures, k.Sequence)
}

// ComputeFunc produces the result for a key on a miss.
type ComputeFunc func(ctx context.Context) (fold.Result, error)

// Cache is a bounded LRU of fold results. A nil *Cache or one created with
// size 0 never stores anything and always computes.
type Cache struct {
	lru    *lru.Cache[Key, fold.Result]
	flight singleflight.Group
}

// New creates a cache holding up to size results.
func New(size int) (*Cache, error) {
	if size <= 0 {
		return &Cache{}, nil
	}
	c, err := lru.New[Key, fold.Result](size)
	if err != nil {
		return nil, fmt.Errorf("memo: %w", err)
	}

	return &Cache{lru: c}, nil
}

// Get returns a private copy of the cached result.
func (c *Cache) Get(k Key) (fold.Result, bool) {
	if c == nil || c.lru == nil {
		return fold.Result{}, false
	}
	r, ok := c.lru.Get(k)
	if !ok {
		return fold.Result{}, false
	}

	return clone(r), true
}

// Add stores r under k. Only complete, untruncated results should be added.
func (c *Cache) Add(k Key, r fold.Result) {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Add(k, clone(r))
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	if c == nil || c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// GetOrCompute returns the cached result for k, or runs compute once for
// all concurrent callers of the same key. The boolean reports a cache hit.
// Truncated results and errors are returned but never cached.
//
// The shared computation runs on a context detached from every caller, so
// compute must apply its own deadline. Each caller waits only as long as
// its own ctx allows; giving up does not cancel the computation for the
// others.
func (c *Cache) GetOrCompute(ctx context.Context, k Key, compute ComputeFunc) (fold.Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return fold.Result{}, false, err
	}
	if r, ok := c.Get(k); ok {
		return r, true, nil
	}
	if c == nil {
		r, err := compute(ctx)
		return r, false, err
	}

	detached := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(k.String(), func() (any, error) {
		if r, ok := c.Get(k); ok {
			return r, nil
		}
		r, err := compute(detached)
		if err == nil && !r.Truncated {
			c.Add(k, r)
		}

		return r, err
	})

	select {
	case <-ctx.Done():
		return fold.Result{}, false, ctx.Err()
	case res := <-ch:
		r, _ := res.Val.(fold.Result)
		return clone(r), false, res.Err
	}
}

// clone deep-copies the mutable parts of r.
func clone(r fold.Result) fold.Result {
	out := r
	if r.Structures != nil {
		out.Structures = append([]string(nil), r.Structures...)
	}
	if r.Count != nil {
		out.Count = new(big.Int).Set(r.Count)
	}

	return out
}
