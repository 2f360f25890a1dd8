package fold

import (
	"errors"
	"fmt"
	"iter"

	"github.com/katalvlaran/lvfold/structure"
)

// leaveUnpaired is the branch marker for "position i stays unpaired".
const leaveUnpaired = -1

// Enumerator walks every structure attaining a ScoreMatrix's optimum.
//
// It keeps one byte buffer of length n that the walk fills left to right;
// each complete structure is copied out as a string. Co-optimal branch
// choices are computed on first use and memoized per window, keyed
// i*n+j, so memory follows the windows actually visited: O(n) for
// Witness.
//
// An Enumerator may be walked any number of times, but not concurrently.
type Enumerator struct {
	tab     *ScoreMatrix
	w       Weights
	opts    Options
	n       int
	choices map[int][]int // window -> leaveUnpaired or k per branch
	buf     []byte
}

// NewEnumerator binds tab to the weights it was built from.
//
// Errors: ErrNilMatrix, ErrNilModel, ErrDimensionMismatch.
func NewEnumerator(tab *ScoreMatrix, w Weights, opts ...Option) (*Enumerator, error) {
	if tab == nil {
		return nil, ErrNilMatrix
	}
	if w == nil {
		return nil, ErrNilModel
	}
	if tab.Len() != w.Len() {
		return nil, fmt.Errorf("fold: table %d vs weights %d: %w", tab.Len(), w.Len(), ErrDimensionMismatch)
	}

	return &Enumerator{
		tab:     tab,
		w:       w,
		opts:    gatherOptions(opts),
		n:       tab.n,
		choices: make(map[int][]int),
		buf:     make([]byte, tab.n),
	}, nil
}

// choicesAt returns the co-optimal branches of window [i, j] (i < j) in
// traversal order: leaveUnpaired first, then every tying k ascending.
// Ties are exact float comparisons.
func (e *Enumerator) choicesAt(i, j int) []int {
	idx := i*e.n + j
	if c, ok := e.choices[idx]; ok {
		return c
	}

	target := e.tab.data[idx]
	c := make([]int, 0, 2)
	if target == e.tab.data[(i+1)*e.n+j] {
		c = append(c, leaveUnpaired)
	}
	var k int
	for k = i + 1; k <= j; k++ {
		if e.w.Pairable(i, k) && target == pairValue(e.tab, e.w, i, j, k) {
			c = append(c, k)
		}
	}
	e.choices[idx] = c

	return c
}

// walk writes every co-optimal sub-structure of [i, j] into buf[i..j] and
// calls cont once per completed sub-structure. For a pair (i,k) the inner
// range varies slowest, so the output order is the classic "for s1 in
// inner, for s2 in outer".
func (e *Enumerator) walk(i, j int, cont func() error) error {
	if err := e.opts.Ctx.Err(); err != nil {
		return err
	}
	if i > j {
		return cont()
	}
	if i == j {
		e.buf[i] = structure.Unpaired

		return cont()
	}

	var (
		k   int
		err error
	)
	for _, k = range e.choicesAt(i, j) {
		if k == leaveUnpaired {
			e.buf[i] = structure.Unpaired
			if err = e.walk(i+1, j, cont); err != nil {
				return err
			}
			continue
		}
		e.buf[i] = structure.Open
		e.buf[k] = structure.Close
		closing := k
		err = e.walk(i+1, k-1, func() error {
			return e.walk(closing+1, j, cont)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// Walk streams every co-optimal structure to fn in traversal order.
// Duplicates produced by distinct branch choices are not removed.
//
// Returning ErrStop from fn ends the walk and Walk returns nil; any other
// error aborts the walk and is returned. A canceled context returns its
// error. MaxStructures does not apply to Walk.
func (e *Enumerator) Walk(fn func(db string) error) error {
	err := e.walk(0, e.n-1, func() error {
		return fn(string(e.buf))
	})
	if errors.Is(err, ErrStop) {
		return nil
	}

	return err
}

// Structures exposes Walk as a range-over-func sequence. Breaking out of
// the loop stops the walk. If the walk fails (e.g. the context is
// canceled) a final ("", err) element is yielded.
func (e *Enumerator) Structures() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := e.Walk(func(db string) error {
			if !yield(db, nil) {
				return ErrStop
			}

			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// Enumerate materializes the co-optimal structures.
//
// With Options.MaxStructures > 0 and more structures available than the
// cap, it returns the first MaxStructures of them together with an error
// wrapping ErrEnumerationLimitExceeded.
func (e *Enumerator) Enumerate() ([]string, error) {
	limit := e.opts.MaxStructures
	out := make([]string, 0, 1)
	err := e.walk(0, e.n-1, func() error {
		if limit > 0 && len(out) == limit {
			return ErrEnumerationLimitExceeded
		}
		out = append(out, string(e.buf))

		return nil
	})
	if errors.Is(err, ErrEnumerationLimitExceeded) {
		return out, fmt.Errorf("fold: more than %d optimal structures: %w", limit, err)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Witness returns one optimal structure as a partner array: the first one
// in traversal order, i.e. the same structure Walk produces first.
// Intervals are processed with an explicit stack.
// Complexity: O(n²) time, O(n) memory.
func (e *Enumerator) Witness() []int {
	partners := make([]int, e.n)
	for i := range partners {
		partners[i] = structure.NoPartner
	}

	type span struct{ lo, hi int }
	stack := []span{{0, e.n - 1}}
	var (
		s span
		c []int
		k int
	)
	for len(stack) > 0 {
		s = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.lo >= s.hi {
			continue
		}
		c = e.choicesAt(s.lo, s.hi)
		if len(c) == 0 || c[0] == leaveUnpaired {
			stack = append(stack, span{s.lo + 1, s.hi})
			continue
		}
		k = c[0]
		partners[s.lo] = k
		partners[k] = s.lo
		stack = append(stack, span{s.lo + 1, k - 1}, span{k + 1, s.hi})
	}

	return partners
}
