// Package lvfold predicts, enumerates and counts non-crossing base pairings
// of RNA-like sequences, and extracts consensus structures.
//
// 🚀 What is lvfold?
//
//	A small, pure-Go folding toolkit built around one dynamic program:
//		• Pairing models: Basic (Watson–Crick), Wobble, Promiscuous, or your own table
//		• Score fill: maximum total pair weight over every window, Θ(n³)
//		• Enumeration: every co-optimal structure, streamed or capped
//		• Counting: exact number of admissible structures (math/big)
//		• Consensus: maximum-support structure over a set of structures
//		• Planarization and inverse-folding checks
//
// ✨ Why lvfold?
//
//   - Exact: ties are detected bit-for-bit, counts never overflow
//   - Cancellable: every fill and walk honors a context
//   - Reusable: the same engine runs on sequences, frequency tables and pair sets
//
// Packages:
//
//	pairing/   — pairing models and the name registry
//	fold/      — score fill, enumerator, witness, counting
//	structure/ — dot-bracket and partner-array conversions, crossing checks
//	consensus/ — frequency tabulation, consensus extraction, planarization
//	design/    — seeds, mutations and uniqueness verdicts for target structures
//	cmd/lvfold — CLI and HTTP server
//
// Quick example:
//
//	res, _ := fold.Fold("GCGC", pairing.Basic)
//	// res.Optimum == 2, res.Structures == ["()()", "(())"], res.Count == 7
package lvfold
