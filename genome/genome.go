package genome

import (
	"strconv"
	"strings"
)

// Gene is one element of a chromosome: a reference to a problem node
// (identified by its index in the instance node table) tagged with the node's
// Kind, or a route separator.
type Gene struct {
	// Node is the index into the instance node table. Negative for separators.
	Node int

	// Kind is the resolved role of the referenced node, or KindSeparator.
	Kind Kind
}

// Separator returns the route-separator gene.
func Separator() Gene { return Gene{Node: -1, Kind: KindSeparator} }

// IsSeparator reports whether g marks a route boundary.
func (g Gene) IsSeparator() bool { return g.Kind == KindSeparator }

// String renders the gene as its kind tag plus node index ("D0", "C17", "S3"),
// or "|" for a separator. Intended for logs and test diagnostics.
func (g Gene) String() string {
	if g.IsSeparator() {
		return "|"
	}

	return g.Kind.String() + strconv.Itoa(g.Node)
}

// Chromosome is one candidate solution: a flat gene sequence with separators
// between per-vehicle routes.
type Chromosome []Gene

// Route is the ordered visit sequence assigned to one vehicle. It conceptually
// begins and ends at a depot, with customers and station visits in between;
// the encoding tolerates shapes that violate that expectation.
type Route []Gene

// SplitRoutes cuts c at every separator and returns the resulting routes in
// order. Empty segments — produced by leading, trailing or doubled
// separators — are dropped, so the result never contains an empty route.
//
// The returned routes alias fresh storage; mutating them does not affect c.
//
// Complexity: O(len(c)) time and space.
func SplitRoutes(c Chromosome) []Route {
	routes := make([]Route, 0, 4)
	var cur Route
	for _, g := range c {
		if g.IsSeparator() {
			if len(cur) > 0 {
				routes = append(routes, cur)
				cur = nil
			}

			continue
		}
		cur = append(cur, g)
	}
	if len(cur) > 0 {
		routes = append(routes, cur)
	}

	return routes
}

// JoinRoutes is the inverse of SplitRoutes: it concatenates routes into a flat
// chromosome with exactly one separator between consecutive non-empty routes
// and no leading or trailing separator. Empty routes are skipped so the output
// separators are always well-formed.
//
// Round-trip law: JoinRoutes(SplitRoutes(c)) == c for every c whose
// separators are not doubled, leading or trailing.
//
// Complexity: O(total genes) time and space.
func JoinRoutes(routes []Route) Chromosome {
	var n int
	for _, r := range routes {
		n += len(r)
	}
	out := make(Chromosome, 0, n+len(routes))
	for _, r := range routes {
		if len(r) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, Separator())
		}
		out = append(out, r...)
	}

	return out
}

// Clone returns a deep copy of c. Gene values are immutable, so a flat copy
// of the slice suffices.
func (c Chromosome) Clone() Chromosome {
	if c == nil {
		return nil
	}
	out := make(Chromosome, len(c))
	copy(out, c)

	return out
}

// Customers returns the node indices of every customer gene in traversal
// order. Duplicates are preserved: a healthy chromosome has none, and callers
// checking the conservation invariant rely on seeing them.
func (c Chromosome) Customers() []int {
	out := make([]int, 0, len(c))
	for _, g := range c {
		if g.Kind == KindCustomer {
			out = append(out, g.Node)
		}
	}

	return out
}

// CustomerCounts returns the customer multiset of c: node index → number of
// occurrences. Used to verify that operators conserve customers.
func (c Chromosome) CustomerCounts() map[int]int {
	out := make(map[int]int)
	for _, g := range c {
		if g.Kind == KindCustomer {
			out[g.Node]++
		}
	}

	return out
}

// Validate performs the cheap structural check on c: every non-separator gene
// must carry a non-negative node index and a known Kind. It does not verify
// the customer-conservation invariant (that requires the instance).
//
// Returns ErrNegativeNode or ErrUnknownKind on the first offending gene.
func Validate(c Chromosome) error {
	for _, g := range c {
		if g.Kind > KindSeparator {
			return ErrUnknownKind
		}
		if !g.IsSeparator() && g.Node < 0 {
			return ErrNegativeNode
		}
	}

	return nil
}

// String renders the chromosome as space-separated gene tags, e.g.
// "D0 C3 C7 D0 | D1 C5 D1". Intended for logs and test diagnostics.
func (c Chromosome) String() string {
	var b strings.Builder
	for i, g := range c {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(g.String())
	}

	return b.String()
}
