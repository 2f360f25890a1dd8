package pairing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownModel is returned by ByName for a name with no registered model.
var ErrUnknownModel = errors.New("pairing: unknown model")

// ErrBadPairKey is returned by NewTable for a key that is not exactly two symbols.
var ErrBadPairKey = errors.New("pairing: pair key must be two symbols")

// Model decides admissibility and weight of a pair of symbols.
//
// Both methods must be total, deterministic and side-effect free.
// Score is only consulted when CanPair holds.
type Model interface {
	CanPair(a, b byte) bool
	Score(a, b byte) float64
}

// Table is a Model backed by a lookup of ordered symbol pairs.
// The zero value admits nothing.
type Table struct {
	name   string
	scores map[[2]byte]float64
}

// NewTable builds a Table from two-symbol keys such as "GC" to scores.
// Keys are taken literally (case-sensitive, ordered); list both "GC" and
// "CG" for a symmetric model.
//
// Errors: ErrBadPairKey for keys that are not exactly two bytes long.
func NewTable(name string, scores map[string]float64) (Table, error) {
	t := Table{name: name, scores: make(map[[2]byte]float64, len(scores))}
	for key, s := range scores {
		if len(key) != 2 {
			return Table{}, fmt.Errorf("pairing: key %q: %w", key, ErrBadPairKey)
		}
		t.scores[[2]byte{key[0], key[1]}] = s
	}

	return t, nil
}

// mustTable is NewTable for package-level literals.
func mustTable(name string, scores map[string]float64) Table {
	t, err := NewTable(name, scores)
	if err != nil {
		panic(err)
	}

	return t
}

// Name returns the model name given at construction.
func (t Table) Name() string { return t.name }

// CanPair reports whether (a,b) is listed.
func (t Table) CanPair(a, b byte) bool {
	_, ok := t.scores[[2]byte{a, b}]

	return ok
}

// Score returns the listed weight of (a,b), or -Inf when the pair is forbidden.
func (t Table) Score(a, b byte) float64 {
	s, ok := t.scores[[2]byte{a, b}]
	if !ok {
		return math.Inf(-1)
	}

	return s
}

// Len returns the number of admissible ordered pairs.
func (t Table) Len() int { return len(t.scores) }

// Canonical model names.
const (
	NameBasic       = "basic"
	NameWobble      = "wobble"
	NamePromiscuous = "promiscuous"
)

var (
	// Basic admits the four Watson–Crick pairs at 1.0 each.
	Basic = mustTable(NameBasic, map[string]float64{
		"GC": 1, "CG": 1,
		"UA": 1, "AU": 1,
	})

	// Wobble is the Nussinov-style weighting: G-C 3, A-U 2, G-U 1.
	Wobble = mustTable(NameWobble, map[string]float64{
		"GC": 3, "CG": 3,
		"UA": 2, "AU": 2,
		"GU": 1, "UG": 1,
	})

	// Promiscuous admits nearly every pair in three tiers.
	Promiscuous = mustTable(NamePromiscuous, map[string]float64{
		"UA": 3, "AU": 3, "GC": 3, "CG": 3,
		"AG": 2, "GA": 2, "UC": 2, "CU": 2, "AA": 2, "UU": 2,
		"UG": 1, "GU": 1, "AC": 1, "CA": 1,
	})
)

// registry maps lower-case names (and aliases) to models.
var registry = map[string]Table{
	NameBasic:       Basic,
	NameWobble:      Wobble,
	"nussinov":      Wobble,
	NamePromiscuous: Promiscuous,
	"inria":         Promiscuous,
}

// Default is the model used when none is configured.
const Default = NameBasic

// ByName resolves a model by case-insensitive name or alias.
// An empty name resolves to Default.
func ByName(name string) (Model, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Default
	}
	t, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("pairing: %q: %w", name, ErrUnknownModel)
	}

	return t, nil
}

// Names lists the canonical model names in sorted order.
func Names() []string {
	names := []string{NameBasic, NameWobble, NamePromiscuous}
	sort.Strings(names)

	return names
}

// NameOf returns the registered name of m, or "custom" for models that do
// not carry one.
func NameOf(m Model) string {
	if n, ok := m.(interface{ Name() string }); ok && n.Name() != "" {
		return n.Name()
	}

	return "custom"
}

// Normalize prepares raw user text for folding: whitespace is removed and
// letters are upper-cased. DNA input is not translated; T stays T.
func Normalize(seq string) string {
	var b strings.Builder
	b.Grow(len(seq))
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			continue
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
	}

	return b.String()
}
