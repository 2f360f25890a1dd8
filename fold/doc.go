// Package fold predicts RNA secondary structures by maximizing the total
// pairing score over non-crossing matchings (Nussinov-style folding), and
// counts every admissible structure exactly.
//
// 🚀 What does it compute?
//
//	Given a sequence s and a pairing.Model, fold fills a triangular table
//	tab[i][j] = best total score of a non-crossing matching of s[i..j]:
//
//	  tab[i][j] = max( tab[i+1][j],                                  // i unpaired
//	                   max_{i<k≤j, CanPair(s[i],s[k])}
//	                       Score(s[i],s[k]) + tab[i+1][k-1] + tab[k+1][j] )
//
//	with empty ranges contributing 0. tab[0][n-1] is the global optimum.
//	The same recurrence with (+, ×) over big integers counts all admissible
//	structures, regardless of score.
//
// ✨ Key features:
//   - one shared engine over the index-level Weights strategy; sequences,
//     consensus frequency tables and planarization all plug into it
//   - exact (bitwise) tie detection: every co-optimal structure is found
//   - lazy enumeration: Walk streams structures one at a time from a single
//     buffer; Structures exposes the same stream as an iter.Seq2
//   - hard cap with a recoverable ErrEnumerationLimitExceeded
//   - arbitrary-precision counting with math/big
//   - cancellation via context, polled once per window length in the fills
//     and once per recursive call in the enumerator
//
// ⚙️ Usage:
//
//	tab, err := fold.BuildScores("GCGC", pairing.Basic)
//	fmt.Println(tab.Optimum()) // 2
//
//	en, _ := fold.NewEnumerator(tab, fold.ForSequence("GCGC", pairing.Basic))
//	all, err := en.Enumerate() // ["()()", "(())"]
//
//	total, _ := fold.Count("GCGC", pairing.Basic) // 7
//
// Complexity:
//
//   - BuildScores / BuildCounts: Θ(n³) time, Θ(n²) memory.
//   - Enumerate: output-sensitive; the number of co-optimal structures can
//     grow super-exponentially, hence the cap.
//   - Witness: O(n²) time, O(n) extra memory.
//
// Every call allocates its own tables; nothing is shared between calls, so
// independent calls may run concurrently. A single Enumerator must not be
// walked from two goroutines at once.
package fold
