package repair_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltroute/voltroute/dist"
	"github.com/voltroute/voltroute/fitness"
	"github.com/voltroute/voltroute/genome"
	"github.com/voltroute/voltroute/repair"
)

func depot(n int) genome.Gene    { return genome.Gene{Node: n, Kind: genome.KindDepot} }
func customer(n int) genome.Gene { return genome.Gene{Node: n, Kind: genome.KindCustomer} }
func station(n int) genome.Gene  { return genome.Gene{Node: n, Kind: genome.KindStation} }

// withoutStations strips station visits, leaving the depot/customer skeleton.
func withoutStations(c genome.Chromosome) genome.Chromosome {
	out := make(genome.Chromosome, 0, len(c))
	for _, g := range c {
		if g.Kind != genome.KindStation {
			out = append(out, g)
		}
	}

	return out
}

// TestRepair_NoOpOnFeasibleRoute verifies a route the battery already covers
// comes back unchanged.
func TestRepair_NoOpOnFeasibleRoute(t *testing.T) {
	m := dist.NewEuclidean([][2]float64{{0, 0}, {2, 0}, {50, 50}})
	c := genome.Chromosome{depot(0), customer(1), depot(0)}

	got := repair.Repair(c, m, []int{2}, 100, 1)
	assert.Equal(t, c, got)
}

// TestRepair_InsertsStationBeforeStarvedHop checks the canonical detour: the
// return leg exceeds the remaining charge, so the nearest reachable station
// is inserted and the repaired route becomes feasible.
func TestRepair_InsertsStationBeforeStarvedHop(t *testing.T) {
	m := dist.New(3) // 0 depot, 1 customer, 2 station
	require.NoError(t, m.Set(0, 1, 80))
	require.NoError(t, m.Set(1, 2, 10))
	require.NoError(t, m.Set(2, 0, 30))
	c := genome.Chromosome{depot(0), customer(1), depot(0)}

	got := repair.Repair(c, m, []int{2}, 100, 1)
	want := genome.Chromosome{depot(0), customer(1), station(2), depot(0)}
	assert.Equal(t, want, got)

	score := fitness.Evaluate(got, m, fitness.Params{
		BatteryCapacity: 100, ConsumptionRate: 1, ChargingRate: 1,
		DistanceWeight: 0.6, ChargingWeight: 0.4,
	})
	assert.Less(t, score, fitness.Infeasible, "repaired route must be feasible")
}

// TestRepair_ConservesCustomersAndOrder verifies repair only ever adds
// station visits: the depot/customer skeleton survives byte for byte.
func TestRepair_ConservesCustomersAndOrder(t *testing.T) {
	m := dist.New(6)
	require.NoError(t, m.Set(0, 1, 70))
	require.NoError(t, m.Set(1, 2, 70))
	require.NoError(t, m.Set(2, 0, 70))
	require.NoError(t, m.Set(1, 4, 20))
	require.NoError(t, m.Set(4, 2, 55))
	require.NoError(t, m.Set(2, 4, 55))
	require.NoError(t, m.Set(4, 0, 60))
	require.NoError(t, m.Set(0, 5, 15))
	require.NoError(t, m.Set(5, 3, 40))
	require.NoError(t, m.Set(0, 3, 50))
	require.NoError(t, m.Set(3, 0, 50))
	c := genome.Chromosome{
		depot(0), customer(1), customer(2), depot(0),
		genome.Separator(),
		depot(0), customer(3), depot(0),
	}

	got := repair.Repair(c, m, []int{4, 5}, 100, 1)

	assert.Equal(t, c.CustomerCounts(), got.CustomerCounts(), "customer multiset must be conserved")
	assert.Equal(t, withoutStations(c), withoutStations(got), "repair may only add stations")
}

// TestRepair_DeadEndForcesHop verifies the failure policy: with no station
// reachable the hop is forced and the result stays infeasible for the
// evaluator to penalize.
func TestRepair_DeadEndForcesHop(t *testing.T) {
	m := dist.New(2)
	require.NoError(t, m.Set(0, 1, 150))
	c := genome.Chromosome{depot(0), customer(1), depot(0)}

	got := repair.Repair(c, m, nil, 100, 1)
	assert.Equal(t, c, got, "no stations to insert: structure unchanged")

	p := fitness.DefaultParams()
	assert.Equal(t, fitness.Infeasible, fitness.Evaluate(got, m, p))
}

// TestRepair_TerminatesOnAdversarialGeometry runs repair where the only
// station can never make the pending hop affordable; the walk must still
// finish and keep the skeleton.
func TestRepair_TerminatesOnAdversarialGeometry(t *testing.T) {
	m := dist.New(3)
	require.NoError(t, m.Set(0, 1, 150)) // hop beyond capacity from anywhere
	require.NoError(t, m.Set(0, 2, 5))
	require.NoError(t, m.Set(2, 1, 150))
	c := genome.Chromosome{depot(0), customer(1), depot(0)}

	got := repair.Repair(c, m, []int{2}, 100, 1)
	assert.Equal(t, c.CustomerCounts(), got.CustomerCounts())
	assert.Equal(t, withoutStations(c), withoutStations(got))
}

// TestRepair_EmptyAndNil covers degenerate inputs.
func TestRepair_EmptyAndNil(t *testing.T) {
	m := dist.New(1)

	assert.Empty(t, repair.Repair(nil, m, nil, 100, 1))
	assert.Empty(t, repair.Repair(genome.Chromosome{}, m, nil, 100, 1))
}
