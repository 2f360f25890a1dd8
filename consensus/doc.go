// Package consensus extracts a single representative structure from a
// collection of structures over the same sequence.
//
// 🚀 What it does
//
//   - Tabulate counts how often each base pair (i,j) is observed across the
//     inputs and infers the working length L.
//   - Extract runs the ordinary folding fill with those frequencies as pair
//     weights: only observed pairs may form, and a pair contributes the
//     number of inputs that contain it. The result is one maximum-support
//     non-crossing structure, recovered with fold.Enumerator.Witness.
//   - Planarize drops the fewest pairs needed to make a partner array
//     non-crossing, using the same engine with unit weights.
//
// ✨ Example
//
//	a, _ := consensus.FromDotBracket("(..)")
//	b, _ := consensus.FromDotBracket("(())")
//	partners, _ := consensus.Extract([]consensus.Input{a, b})
//	// partners == [3 2 1 0]
//
// ⚙️ Notes
//
// Inputs are trusted: pairs are normalized to i < j, self-pairs and negative
// indices are skipped, and nothing else is validated. Extract returns a
// partner array (-1 for unpaired positions), not a dot-bracket string;
// ExtractDotBracket formats it.
package consensus
