package structure

import (
	"fmt"
	"sort"
)

// Parse converts a dot-bracket string into a partner array.
// Stage 1 (Validate): every symbol must be '.', '(' or ')'.
// Stage 2 (Execute): match brackets with a stack of open positions.
// Stage 3 (Finalize): any leftover '(' is ErrUnbalanced.
// Complexity: O(n).
func Parse(db string) ([]int, error) {
	n := len(db)
	partners := make([]int, n)
	stack := make([]int, 0, n/2)

	var i, open int
	for i = 0; i < n; i++ {
		partners[i] = NoPartner
		switch db[i] {
		case Unpaired:
		case Open:
			stack = append(stack, i)
		case Close:
			if len(stack) == 0 {
				return nil, fmt.Errorf("structure: ')' at %d: %w", i, ErrUnbalanced)
			}
			open = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			partners[open] = i
			partners[i] = open
		default:
			return nil, fmt.Errorf("structure: %q at %d: %w", db[i], i, ErrInvalidSymbol)
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("structure: '(' at %d: %w", stack[len(stack)-1], ErrUnbalanced)
	}

	return partners, nil
}

// Format converts a partner array into dot-bracket notation.
// It rejects out-of-range partners, asymmetric arrays and crossing pairs.
// Complexity: O(n).
func Format(partners []int) (string, error) {
	if err := Validate(partners); err != nil {
		return "", err
	}
	if IsSelfCrossing(partners) {
		return "", ErrCrossing
	}

	buf := make([]byte, len(partners))
	for i, j := range partners {
		switch {
		case j == NoPartner:
			buf[i] = Unpaired
		case i < j:
			buf[i] = Open
		default:
			buf[i] = Close
		}
	}

	return string(buf), nil
}

// Validate checks that partners is a well-formed (possibly crossing) matching:
// every entry is NoPartner or an in-range index, no position pairs with itself,
// and partner[partner[i]] == i.
func Validate(partners []int) error {
	n := len(partners)
	for i, j := range partners {
		if j == NoPartner {
			continue
		}
		if j < 0 || j >= n || j == i {
			return fmt.Errorf("structure: partner[%d]=%d: %w", i, j, ErrOutOfRange)
		}
		if partners[j] != i {
			return fmt.Errorf("structure: partner[%d]=%d but partner[%d]=%d: %w",
				i, j, j, partners[j], ErrAsymmetric)
		}
	}

	return nil
}

// IsSelfCrossing reports whether partners contains two interleaving pairs
// (i < k < j < l). Intervals are processed with an explicit stack, so deep
// nesting costs no recursion.
// Entries pointing outside [0, n) are treated as crossing.
// Complexity: O(n).
func IsSelfCrossing(partners []int) bool {
	type interval struct{ lo, hi int }

	stack := []interval{{0, len(partners) - 1}}
	var (
		p    interval
		k    int
		i, j int
	)
	for len(stack) > 0 {
		p = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.lo > p.hi {
			continue
		}
		if partners[p.lo] == NoPartner {
			stack = append(stack, interval{p.lo + 1, p.hi})
			continue
		}
		i, j = p.lo, p.hi
		k = partners[i]
		if k <= i || k > j {
			return true
		}
		stack = append(stack, interval{i + 1, k - 1}, interval{k + 1, j})
	}

	return false
}

// Pairs lists the pairs of a partner array in increasing order of I.
func Pairs(partners []int) []Pair {
	out := make([]Pair, 0, len(partners)/2)
	for i, j := range partners {
		if j != NoPartner && i < j {
			out = append(out, Pair{I: i, J: j})
		}
	}

	return out
}

// FromPairs builds a partner array of length n from a pair list.
// Pairs are normalized (I < J) before use. Two distinct pairs sharing an
// endpoint leave the array asymmetric and are reported as ErrAsymmetric.
func FromPairs(n int, pairs []Pair) ([]int, error) {
	partners := make([]int, n)
	for i := range partners {
		partners[i] = NoPartner
	}

	var p Pair
	for _, p = range pairs {
		p = p.Normalized()
		if p.I < 0 || p.J >= n || p.I == p.J {
			return nil, fmt.Errorf("structure: pair (%d,%d) with n=%d: %w", p.I, p.J, n, ErrOutOfRange)
		}
		partners[p.I] = p.J
		partners[p.J] = p.I
	}
	if err := Validate(partners); err != nil {
		return nil, err
	}

	return partners, nil
}

// SortPairs orders pairs by (I, J) in place.
func SortPairs(pairs []Pair) {
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].I != pairs[b].I {
			return pairs[a].I < pairs[b].I
		}

		return pairs[a].J < pairs[b].J
	})
}
