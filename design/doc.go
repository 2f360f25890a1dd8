// Package design supports the inverse folding puzzle: find a sequence whose
// unique optimal structure is a given target.
//
// Seed builds a starting sequence that pairs every target pair as A-U,
// Mutate cycles one base while keeping its target partner complementary,
// and Check folds a candidate and reports whether the target is its only
// optimal structure.
//
// Targets lists a few ready-made puzzles of increasing difficulty.
package design
