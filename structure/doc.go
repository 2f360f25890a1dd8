// Package structure converts between the two representations of an RNA
// secondary structure used throughout lvfold:
//
//   - dot-bracket strings over {'.', '(', ')'}, and
//   - partner arrays, where partner[i] == j means i and j are paired and
//     partner[i] == -1 means i is unpaired.
//
// ✨ Key features:
//   - Parse / Format between the two forms with strict validation
//   - Pairs / FromPairs to move between partner arrays and (i,j) lists
//   - IsSelfCrossing detects pseudoknots with an explicit interval stack
//
// The package has no dependencies on the folding engine; it is the shared
// vocabulary of fold, consensus and design.
//
// Complexity: every function is O(n) time and O(n) memory.
package structure
