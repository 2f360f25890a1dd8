package structure

import "errors"

// Dot-bracket alphabet.
const (
	Unpaired = '.' // unpaired position
	Open     = '(' // 5' end of a pair
	Close    = ')' // 3' end of a pair
)

// NoPartner marks an unpaired position in a partner array.
const NoPartner = -1

var (
	// ErrUnbalanced indicates a dot-bracket string whose brackets do not match.
	ErrUnbalanced = errors.New("structure: unbalanced brackets")

	// ErrInvalidSymbol indicates a symbol outside {'.', '(', ')'}.
	ErrInvalidSymbol = errors.New("structure: invalid dot-bracket symbol")

	// ErrCrossing indicates that a partner array contains interleaving pairs,
	// which dot-bracket notation cannot express.
	ErrCrossing = errors.New("structure: crossing pairs")

	// ErrAsymmetric indicates partner[i] == j without partner[j] == i.
	ErrAsymmetric = errors.New("structure: partner array is not symmetric")

	// ErrOutOfRange indicates a pair index outside [0, n).
	ErrOutOfRange = errors.New("structure: index out of range")
)

// Pair is one base pair with I < J.
type Pair struct {
	I, J int
}

// Normalized returns p with its endpoints ordered so that I <= J.
func (p Pair) Normalized() Pair {
	if p.I > p.J {
		return Pair{I: p.J, J: p.I}
	}

	return p
}
