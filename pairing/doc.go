// Package pairing defines which symbol pairs may form a base pair and how
// much each admissible pair is worth.
//
// 🚀 What is a pairing model?
//
//	A Model is a pure function of two symbols: CanPair(a,b) says whether
//	a may pair with b, Score(a,b) says how much that pair contributes to
//	a structure's total. The folding engine maximizes the total score
//	over non-crossing matchings, so the model alone decides what "best"
//	means.
//
// ✨ Shipped models:
//   - Basic        — Watson–Crick only (G-C, C-G, A-U, U-A), 1.0 each
//   - Wobble       — Basic plus G-U/U-G; G-C 3, A-U 2, G-U 1
//   - Promiscuous  — 14 admissible pairs in three weight tiers (3/2/1)
//
// ⚙️ Usage:
//
//	m, err := pairing.ByName("wobble")
//	if err != nil {
//	  // handle ErrUnknownModel
//	}
//	ok := m.CanPair('G', 'U') // true
//
// Models are called as model(seq[i], seq[k]) with i < k only. All shipped
// models are symmetric; custom Table values may be asymmetric.
package pairing
