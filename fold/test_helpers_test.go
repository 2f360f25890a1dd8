package fold_test

import (
	"math/big"
	"math/rand"

	"github.com/katalvlaran/lvfold/fold"
	"github.com/katalvlaran/lvfold/pairing"
)

// alphabet used by the randomized tests.
const alphabet = "ACGU"

// randomSeq draws a deterministic sequence of length n from r.
func randomSeq(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}

	return string(b)
}

// allStructures lists every admissible structure of seq[i..j] by plain
// recursion, without any table. Only for short sequences.
func allStructures(seq string, m pairing.Model, i, j int) []string {
	if i > j {
		return []string{""}
	}
	if i == j {
		return []string{"."}
	}
	var out []string
	for _, s := range allStructures(seq, m, i+1, j) {
		out = append(out, "."+s)
	}
	for k := i + 1; k <= j; k++ {
		if !m.CanPair(seq[i], seq[k]) {
			continue
		}
		for _, s1 := range allStructures(seq, m, i+1, k-1) {
			for _, s2 := range allStructures(seq, m, k+1, j) {
				out = append(out, "("+s1+")"+s2)
			}
		}
	}

	return out
}

// bruteOptimal returns the best score and every structure attaining it.
func bruteOptimal(seq string, m pairing.Model) (float64, []string) {
	w := fold.ForSequence(seq, m)
	all := allStructures(seq, m, 0, len(seq)-1)
	best := 0.0
	scores := make([]float64, len(all))
	for idx, db := range all {
		s, err := fold.Evaluate(db, w)
		if err != nil {
			panic(err)
		}
		scores[idx] = s
		if s > best {
			best = s
		}
	}
	var opt []string
	for idx, db := range all {
		if scores[idx] == best {
			opt = append(opt, db)
		}
	}

	return best, opt
}

// motzkin returns the n-th Motzkin number: the number of non-crossing
// matchings on n points when every pair is allowed.
func motzkin(n int) *big.Int {
	m := make([]*big.Int, n+1)
	m[0] = big.NewInt(1)
	prod := new(big.Int)
	for l := 1; l <= n; l++ {
		m[l] = new(big.Int).Set(m[l-1])
		for a := 0; a <= l-2; a++ {
			m[l].Add(m[l], prod.Mul(m[a], m[l-2-a]))
		}
	}

	return m[n]
}

// models under test.
var models = []pairing.Table{pairing.Basic, pairing.Wobble, pairing.Promiscuous}
