// Package genome defines the chromosome encoding shared by every EVRP
// solver component.
//
// A chromosome is a flat, ordered sequence of genes. A gene is either a
// reference to a problem node (depot, customer or charging station, tagged
// with its Kind) or a route separator. Splitting the sequence at every
// separator yields the routes assigned to individual vehicles:
//
//	D0 C3 C7 D0 | D1 S2 C5 D1
//	└── route 0 ──┘ └── route 1 ──┘
//
// Invariants:
//   - Every customer node appears in exactly one route across the whole
//     chromosome. Operators that break this invariant are buggy; the encoding
//     itself does not enforce it (see Validate for the cheap structural check).
//   - A node gene carries the node's table index and its resolved Kind; the
//     Kind is assigned once when the instance is parsed and never re-derived.
//
// Degenerate shapes (leading, trailing or doubled separators) are produced by
// external operators from time to time and are tolerated everywhere:
// SplitRoutes silently drops the empty segments they create, and
// JoinRoutes(SplitRoutes(c)) == c holds for every chromosome whose separators
// are well-formed.
//
// The package has no dependencies and performs no I/O; all functions are
// side-effect free unless documented otherwise.
package genome
