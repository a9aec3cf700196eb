package dist

import (
	"errors"
	"math"
)

// Sentinel errors returned by Matrix construction and mutation.
var (
	// ErrOutOfRange indicates a node index outside [0, Len).
	ErrOutOfRange = errors.New("dist: node index out of range")

	// ErrBadDistance indicates an attempt to store a negative or NaN distance.
	// +Inf is legal: it is the unreachable sentinel.
	ErrBadDistance = errors.New("dist: distance must be non-negative and not NaN")
)

// Matrix is a symmetric pairwise distance lookup over node indices 0..n-1.
//
// The zero diagonal and symmetry are maintained by construction: Set writes
// both (a,b) and (b,a), and Between(a,a) is always 0. Off-diagonal cells
// default to Unreachable until written.
type Matrix struct {
	n     int
	cells []float64 // row-major n×n
}

// Unreachable returns the sentinel distance (+Inf) for node pairs with no
// known path.
func Unreachable() float64 { return math.Inf(1) }

// IsUnreachable reports whether d is the unreachable sentinel.
func IsUnreachable(d float64) bool { return math.IsInf(d, 1) }

// New returns an n×n matrix with a zero diagonal and every off-diagonal cell
// set to Unreachable. Intended for tests and sparse hand-built topologies;
// production instances use NewEuclidean.
func New(n int) *Matrix {
	if n < 0 {
		n = 0
	}
	m := &Matrix{n: n, cells: make([]float64, n*n)}
	inf := Unreachable()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				m.cells[i*n+j] = inf
			}
		}
	}

	return m
}

// NewEuclidean builds the full pairwise matrix from 2D coordinates:
// cell (i,j) = sqrt((xi−xj)² + (yi−yj)²). Each unordered pair is computed
// once and mirrored, so symmetry holds exactly (bit-for-bit).
//
// Complexity: O(n²) time, O(n²) space.
func NewEuclidean(coords [][2]float64) *Matrix {
	n := len(coords)
	m := &Matrix{n: n, cells: make([]float64, n*n)}
	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = math.Hypot(coords[i][0]-coords[j][0], coords[i][1]-coords[j][1])
			m.cells[i*n+j] = d
			m.cells[j*n+i] = d
		}
	}

	return m
}

// Len returns the node count n.
func (m *Matrix) Len() int { return m.n }

// Between returns the distance between nodes a and b.
//
// Lookup policy (exactly the contract the evaluator and repair rely on):
//   - a == b          ⇒ 0, even for out-of-range indices;
//   - index out of range ⇒ Unreachable, never a panic;
//   - missing pair    ⇒ Unreachable.
//
// Complexity: O(1).
func (m *Matrix) Between(a, b int) float64 {
	if a == b {
		return 0
	}
	if a < 0 || b < 0 || a >= m.n || b >= m.n {
		return Unreachable()
	}

	return m.cells[a*m.n+b]
}

// Set stores distance d for the unordered pair {a,b}, mirroring it into both
// cells. The diagonal cannot be overwritten; Set(a,a,·) is rejected as out of
// range to keep Between(a,a)==0 unconditionally true.
//
// Returns ErrOutOfRange or ErrBadDistance; never mutates on error.
func (m *Matrix) Set(a, b int, d float64) error {
	if a < 0 || b < 0 || a >= m.n || b >= m.n || a == b {
		return ErrOutOfRange
	}
	if math.IsNaN(d) || d < 0 {
		return ErrBadDistance
	}
	m.cells[a*m.n+b] = d
	m.cells[b*m.n+a] = d

	return nil
}
