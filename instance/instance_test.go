package instance_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltroute/voltroute/genome"
	"github.com/voltroute/voltroute/instance"
)

func nodeSet() []instance.Node {
	return []instance.Node{
		{ID: "D1", Kind: genome.KindDepot, X: 0, Y: 0},
		{ID: "C1", Kind: genome.KindCustomer, X: 3, Y: 4, Demand: 10},
		{ID: "C2", Kind: genome.KindCustomer, X: 6, Y: 0, Demand: 5},
		{ID: "S1", Kind: genome.KindStation, X: 3, Y: 0},
	}
}

// TestBuild_IndexesRoles verifies role index slices, identifier lookup and
// the gene view.
func TestBuild_IndexesRoles(t *testing.T) {
	inst, err := instance.Build(nodeSet(), 2, 100, 150)
	require.NoError(t, err)

	assert.Equal(t, 4, inst.Len())
	assert.Equal(t, []int{0}, inst.Depots())
	assert.Equal(t, []int{1, 2}, inst.Customers())
	assert.Equal(t, []int{3}, inst.Stations())
	assert.Equal(t, 2, inst.Vehicles())
	assert.Equal(t, 100, inst.Capacity())
	assert.Equal(t, 150.0, inst.EnergyCapacity())

	i, ok := inst.IndexOf("S1")
	require.True(t, ok)
	assert.Equal(t, 3, i)
	assert.Equal(t, genome.Gene{Node: 3, Kind: genome.KindStation}, inst.Gene(3))
}

// TestBuild_Validation exercises every Build sentinel.
func TestBuild_Validation(t *testing.T) {
	_, err := instance.Build(nil, 1, 0, 100)
	assert.ErrorIs(t, err, instance.ErrNoNodes)

	_, err = instance.Build(nodeSet(), 0, 0, 100)
	assert.ErrorIs(t, err, instance.ErrNoVehicles)

	_, err = instance.Build(nodeSet(), 1, 0, 0)
	assert.ErrorIs(t, err, instance.ErrBadEnergy)

	dup := append(nodeSet(), instance.Node{ID: "C1", Kind: genome.KindCustomer})
	_, err = instance.Build(dup, 1, 0, 100)
	assert.ErrorIs(t, err, instance.ErrDuplicateID)

	neg := nodeSet()
	neg[1].Demand = -1
	_, err = instance.Build(neg, 1, 0, 100)
	assert.ErrorIs(t, err, instance.ErrNegativeDemand)

	sep := nodeSet()
	sep[2].Kind = genome.KindSeparator
	_, err = instance.Build(sep, 1, 0, 100)
	assert.ErrorIs(t, err, instance.ErrSeparatorKind)

	noDepot := nodeSet()[1:]
	_, err = instance.Build(noDepot, 1, 0, 100)
	assert.ErrorIs(t, err, instance.ErrNoDepot)
}

// TestDistanceMatrix checks the Euclidean provider over the node table.
func TestDistanceMatrix(t *testing.T) {
	inst, err := instance.Build(nodeSet(), 1, 0, 100)
	require.NoError(t, err)

	m := inst.DistanceMatrix()
	assert.Equal(t, 5.0, m.Between(0, 1)) // (0,0) → (3,4)
	assert.Equal(t, 3.0, m.Between(0, 3)) // (0,0) → (3,0)
	assert.Equal(t, m.Between(1, 2), m.Between(2, 1))

	// Memoized: repeated calls share one matrix instead of rebuilding it.
	assert.Same(t, m, inst.DistanceMatrix())
}

const sampleEVRP = `
VEHICLES: 2
CAPACITY: 100
ENERGY_CAPACITY: 300
NODE_COORD_SECTION
1 0.0 0.0
2 10.0 0.0
3 0.0 10.0
4 5.0 5.0
DEMAND_SECTION
2 19
3 21
STATIONS_COORD_SECTION
4
DEPOT_SECTION
1
-1
EOF
`

// TestParseEVRP_Roles verifies header values and role resolution: depots from
// DEPOT_SECTION, stations from STATIONS_COORD_SECTION, the rest customers
// with demands attached.
func TestParseEVRP_Roles(t *testing.T) {
	inst, err := instance.ParseEVRP(strings.NewReader(sampleEVRP))
	require.NoError(t, err)

	assert.Equal(t, 2, inst.Vehicles())
	assert.Equal(t, 100, inst.Capacity())
	assert.Equal(t, 300.0, inst.EnergyCapacity())
	assert.Equal(t, 4, inst.Len())

	require.Len(t, inst.Depots(), 1)
	assert.Equal(t, "D1", inst.Node(inst.Depots()[0]).ID)

	require.Len(t, inst.Stations(), 1)
	assert.Equal(t, "S4", inst.Node(inst.Stations()[0]).ID)

	require.Len(t, inst.Customers(), 2)
	c2, ok := inst.IndexOf("C2")
	require.True(t, ok)
	assert.Equal(t, 19, inst.Node(c2).Demand)
}

// TestParseEVRP_Defaults checks the fallback values when the fleet and energy
// headers are absent.
func TestParseEVRP_Defaults(t *testing.T) {
	minimal := `
NODE_COORD_SECTION
1 0.0 0.0
2 1.0 1.0
DEPOT_SECTION
1
-1
EOF
`
	inst, err := instance.ParseEVRP(strings.NewReader(minimal))
	require.NoError(t, err)

	assert.Equal(t, 1, inst.Vehicles())
	assert.Equal(t, 100.0, inst.EnergyCapacity())
}

// TestParseEVRP_Errors covers missing coordinates and malformed headers.
func TestParseEVRP_Errors(t *testing.T) {
	_, err := instance.ParseEVRP(strings.NewReader("DEPOT_SECTION\n1\n-1\nEOF\n"))
	assert.ErrorIs(t, err, instance.ErrMissingCoords)

	_, err = instance.ParseEVRP(strings.NewReader("VEHICLES: many\n"))
	assert.ErrorIs(t, err, instance.ErrBadHeader)
}
