package instance

import (
	"errors"
	"sync"

	"github.com/voltroute/voltroute/dist"
	"github.com/voltroute/voltroute/genome"
)

// Sentinel errors returned by Build and the parsers.
var (
	// ErrNoNodes indicates an empty node table.
	ErrNoNodes = errors.New("instance: no nodes")

	// ErrNoDepot indicates an instance without a single depot node.
	ErrNoDepot = errors.New("instance: no depot node")

	// ErrNoVehicles indicates a non-positive vehicle count.
	ErrNoVehicles = errors.New("instance: vehicle count must be positive")

	// ErrDuplicateID indicates two nodes sharing one identifier.
	ErrDuplicateID = errors.New("instance: duplicate node identifier")

	// ErrSeparatorKind indicates a node tagged with the separator kind,
	// which is an encoding artifact and never a node role.
	ErrSeparatorKind = errors.New("instance: node tagged as route separator")

	// ErrNegativeDemand indicates a customer with negative demand.
	ErrNegativeDemand = errors.New("instance: negative customer demand")

	// ErrBadEnergy indicates a non-positive battery capacity.
	ErrBadEnergy = errors.New("instance: energy capacity must be positive")
)

// Node is one location of the problem: identifier, resolved role, 2D
// coordinate and (for customers) a demand quantity. A node's role never
// changes during a run.
type Node struct {
	ID     string
	Kind   genome.Kind
	X, Y   float64
	Demand int
}

// Instance is one immutable EVRP problem: the node table (indexed 0..n-1,
// the index is the canonical node key used by every other package) plus
// fleet and energy parameters.
type Instance struct {
	nodes []Node
	byID  map[string]int

	depots    []int
	customers []int
	stations  []int

	vehicles       int
	capacity       int
	energyCapacity float64

	distOnce sync.Once
	dist     *dist.Matrix
}

// Build validates the node table and assembles an Instance.
//
// Requirements: at least one node, at least one depot, vehicles ≥ 1,
// energyCapacity > 0, unique identifiers, no separator-tagged nodes, and
// non-negative customer demands. capacity (cargo) is carried as parsed and
// not interpreted by the energy core.
func Build(nodes []Node, vehicles, capacity int, energyCapacity float64) (*Instance, error) {
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}
	if vehicles <= 0 {
		return nil, ErrNoVehicles
	}
	if energyCapacity <= 0 {
		return nil, ErrBadEnergy
	}

	in := &Instance{
		nodes:          nodes,
		byID:           make(map[string]int, len(nodes)),
		vehicles:       vehicles,
		capacity:       capacity,
		energyCapacity: energyCapacity,
	}
	for i, n := range nodes {
		if _, dup := in.byID[n.ID]; dup {
			return nil, ErrDuplicateID
		}
		in.byID[n.ID] = i

		switch n.Kind {
		case genome.KindDepot:
			in.depots = append(in.depots, i)
		case genome.KindCustomer:
			if n.Demand < 0 {
				return nil, ErrNegativeDemand
			}
			in.customers = append(in.customers, i)
		case genome.KindStation:
			in.stations = append(in.stations, i)
		default:
			return nil, ErrSeparatorKind
		}
	}
	if len(in.depots) == 0 {
		return nil, ErrNoDepot
	}

	return in, nil
}

// Len returns the node count.
func (in *Instance) Len() int { return len(in.nodes) }

// Node returns the node at table index i.
func (in *Instance) Node(i int) Node { return in.nodes[i] }

// IndexOf resolves an identifier to its table index.
func (in *Instance) IndexOf(id string) (int, bool) {
	i, ok := in.byID[id]

	return i, ok
}

// Depots returns the table indices of all depot nodes.
// The returned slice is shared; callers must not mutate it.
func (in *Instance) Depots() []int { return in.depots }

// Customers returns the table indices of all customer nodes.
// The returned slice is shared; callers must not mutate it.
func (in *Instance) Customers() []int { return in.customers }

// Stations returns the table indices of all charging-station nodes.
// The returned slice is shared; callers must not mutate it.
func (in *Instance) Stations() []int { return in.stations }

// Vehicles returns the fleet size.
func (in *Instance) Vehicles() int { return in.vehicles }

// Capacity returns the cargo capacity per vehicle (carried, not interpreted
// by the energy core).
func (in *Instance) Capacity() int { return in.capacity }

// EnergyCapacity returns the usable battery capacity per vehicle.
func (in *Instance) EnergyCapacity() float64 { return in.energyCapacity }

// Gene returns the chromosome gene referencing node i — index plus the role
// resolved at parse time.
func (in *Instance) Gene(i int) genome.Gene {
	return genome.Gene{Node: i, Kind: in.nodes[i].Kind}
}

// DistanceMatrix returns the dense Euclidean distance provider over the node
// table, built on first call and memoized; the result is shared read-only
// afterwards, so every caller sees the same matrix.
//
// Complexity: O(n²) on the first call, O(1) after.
func (in *Instance) DistanceMatrix() *dist.Matrix {
	in.distOnce.Do(func() {
		coords := make([][2]float64, len(in.nodes))
		for i, n := range in.nodes {
			coords[i] = [2]float64{n.X, n.Y}
		}
		in.dist = dist.NewEuclidean(coords)
	})

	return in.dist
}
