// Package dist provides the pairwise distance lookup consumed by the fitness
// evaluator, the repair engine and the GA operators.
//
// The provider is a dense, row-major, symmetric matrix keyed by node index.
// It is built once per problem instance (Euclidean norm over 2D coordinates)
// and then shared read-only; every lookup is O(1), which matters because the
// repair lookahead queries it O(chromosome length²) times per generation.
//
// Missing pairs resolve to the explicit Unreachable sentinel (+Inf), never to
// zero, so an impossible hop can never be mistaken for a free one.
//
// Concurrency: a Matrix is immutable after construction (Set is only for
// hand-built test fixtures) and safe for concurrent readers.
package dist
