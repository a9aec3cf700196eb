package genome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltroute/voltroute/genome"
)

// chrom builds a chromosome from (node, kind) shorthand for test fixtures.
func chrom(genes ...genome.Gene) genome.Chromosome {
	return genome.Chromosome(genes)
}

func depot(n int) genome.Gene    { return genome.Gene{Node: n, Kind: genome.KindDepot} }
func customer(n int) genome.Gene { return genome.Gene{Node: n, Kind: genome.KindCustomer} }
func station(n int) genome.Gene  { return genome.Gene{Node: n, Kind: genome.KindStation} }

// TestSplitRoutes_Basic verifies a two-route chromosome splits at the
// separator with route contents preserved in order.
func TestSplitRoutes_Basic(t *testing.T) {
	c := chrom(depot(0), customer(2), depot(0), genome.Separator(), depot(1), customer(3), depot(1))

	routes := genome.SplitRoutes(c)
	require.Len(t, routes, 2)
	assert.Equal(t, genome.Route{depot(0), customer(2), depot(0)}, routes[0])
	assert.Equal(t, genome.Route{depot(1), customer(3), depot(1)}, routes[1])
}

// TestSplitRoutes_DropsEmptySegments ensures leading, trailing and doubled
// separators never produce empty routes.
func TestSplitRoutes_DropsEmptySegments(t *testing.T) {
	c := chrom(
		genome.Separator(),
		depot(0), customer(2), depot(0),
		genome.Separator(), genome.Separator(),
		depot(1), depot(1),
		genome.Separator(),
	)

	routes := genome.SplitRoutes(c)
	require.Len(t, routes, 2)
	for _, r := range routes {
		assert.NotEmpty(t, r)
	}
}

// TestJoinRoutes_RoundTrip checks JoinRoutes(SplitRoutes(c)) == c for a
// well-formed chromosome.
func TestJoinRoutes_RoundTrip(t *testing.T) {
	c := chrom(depot(0), customer(2), station(5), depot(0), genome.Separator(), depot(1), customer(3), depot(1))

	assert.Equal(t, c, genome.JoinRoutes(genome.SplitRoutes(c)))
}

// TestJoinRoutes_SkipsEmptyRoutes ensures empty routes contribute neither
// genes nor separators.
func TestJoinRoutes_SkipsEmptyRoutes(t *testing.T) {
	routes := []genome.Route{
		nil,
		{depot(0), customer(2), depot(0)},
		{},
		{depot(1), depot(1)},
	}

	got := genome.JoinRoutes(routes)
	want := chrom(depot(0), customer(2), depot(0), genome.Separator(), depot(1), depot(1))
	assert.Equal(t, want, got)
}

// TestClone_Independence verifies mutating a clone leaves the original intact.
func TestClone_Independence(t *testing.T) {
	c := chrom(depot(0), customer(2), depot(0))

	clone := c.Clone()
	clone[1] = customer(9)

	assert.Equal(t, customer(2), c[1], "original must not observe clone mutation")
	assert.Nil(t, genome.Chromosome(nil).Clone())
}

// TestCustomers_OrderAndDuplicates checks customer extraction preserves
// traversal order and duplicates.
func TestCustomers_OrderAndDuplicates(t *testing.T) {
	c := chrom(depot(0), customer(4), station(7), customer(2), genome.Separator(), depot(1), customer(4), depot(1))

	assert.Equal(t, []int{4, 2, 4}, c.Customers())
	assert.Equal(t, map[int]int{4: 2, 2: 1}, c.CustomerCounts())
}

// TestValidate_Errors exercises the structural check's sentinels.
func TestValidate_Errors(t *testing.T) {
	assert.NoError(t, genome.Validate(chrom(depot(0), customer(1), genome.Separator())))

	bad := chrom(genome.Gene{Node: -3, Kind: genome.KindCustomer})
	assert.ErrorIs(t, genome.Validate(bad), genome.ErrNegativeNode)

	unknown := chrom(genome.Gene{Node: 1, Kind: genome.Kind(42)})
	assert.ErrorIs(t, genome.Validate(unknown), genome.ErrUnknownKind)
}

// TestString_Rendering pins the log format of genes and chromosomes.
func TestString_Rendering(t *testing.T) {
	c := chrom(depot(0), customer(3), station(7), genome.Separator(), depot(1))

	assert.Equal(t, "D0 C3 S7 | D1", c.String())
	assert.Equal(t, "|", genome.Separator().String())
}
