package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/voltroute/voltroute/genome"
)

// Sentinel errors returned by the EVRP-format parser.
var (
	// ErrMissingCoords indicates an input without a NODE_COORD_SECTION.
	ErrMissingCoords = errors.New("instance: missing NODE_COORD_SECTION")

	// ErrBadHeader indicates a malformed "KEY: value" header line.
	ErrBadHeader = errors.New("instance: malformed header line")
)

// Section and header tokens of the EVRP text format.
const (
	hdrVehicles  = "VEHICLES:"
	hdrCapacity  = "CAPACITY:"
	hdrEnergyCap = "ENERGY_CAPACITY:"

	secNodeCoords    = "NODE_COORD_SECTION"
	secDemands       = "DEMAND_SECTION"
	secStationCoords = "STATIONS_COORD_SECTION"
	secDepots        = "DEPOT_SECTION"

	tokEndOfSection = "-1"
	tokEOF          = "EOF"
)

// ParseEVRPFile reads path and delegates to ParseEVRP.
func ParseEVRPFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instance: open %s: %w", path, err)
	}
	defer f.Close()

	return ParseEVRP(f)
}

// ParseEVRP parses the EVRP text format:
//
//	VEHICLES: 6
//	CAPACITY: 100
//	ENERGY_CAPACITY: 300
//	NODE_COORD_SECTION
//	1 37.0 52.0
//	...
//	DEMAND_SECTION
//	2 19
//	...
//	STATIONS_COORD_SECTION
//	31
//	...
//	DEPOT_SECTION
//	1
//	-1
//	EOF
//
// Roles are resolved here, once: ids listed under DEPOT_SECTION become
// depots, ids under STATIONS_COORD_SECTION become stations, and every other
// coordinate node becomes a customer (with its demand from DEMAND_SECTION,
// defaulting to zero). Display identifiers are the conventional D/C/S prefix
// plus the numeric id from the file.
//
// Unknown header lines and blank lines are skipped; section bodies end at the
// next section token, a bare "-1", "EOF", or end of input.
func ParseEVRP(r io.Reader) (*Instance, error) {
	var (
		coords   = make(map[int][2]float64)
		order    []int // coordinate ids, sorted before node construction
		demands  = make(map[int]int)
		depots   = make(map[int]bool)
		stations = make(map[int]bool)

		vehicles       int
		capacity       int
		energyCapacity float64

		section string
		err     error
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		switch line {
		case secNodeCoords, secDemands, secStationCoords, secDepots:
			section = line

			continue
		case tokEndOfSection, tokEOF:
			section = ""

			continue
		}

		switch {
		case strings.HasPrefix(line, hdrVehicles):
			if vehicles, err = headerInt(line, hdrVehicles); err != nil {
				return nil, err
			}

			continue
		case strings.HasPrefix(line, hdrCapacity):
			if capacity, err = headerInt(line, hdrCapacity); err != nil {
				return nil, err
			}

			continue
		case strings.HasPrefix(line, hdrEnergyCap):
			var e int
			if e, err = headerInt(line, hdrEnergyCap); err != nil {
				return nil, err
			}
			energyCapacity = float64(e)

			continue
		}

		fields := strings.Fields(line)
		switch section {
		case secNodeCoords:
			if len(fields) < 3 {
				continue
			}
			id, errID := strconv.Atoi(fields[0])
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errID != nil || errX != nil || errY != nil {
				continue
			}
			if _, seen := coords[id]; !seen {
				order = append(order, id)
			}
			coords[id] = [2]float64{x, y}

		case secDemands:
			if len(fields) < 2 {
				continue
			}
			id, errID := strconv.Atoi(fields[0])
			dm, errD := strconv.Atoi(fields[1])
			if errID == nil && errD == nil {
				demands[id] = dm
			}

		case secStationCoords:
			if id, errID := strconv.Atoi(fields[0]); errID == nil {
				stations[id] = true
			}

		case secDepots:
			if id, errID := strconv.Atoi(fields[0]); errID == nil {
				depots[id] = true
			}
		}
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("instance: read: %w", err)
	}
	if len(coords) == 0 {
		return nil, ErrMissingCoords
	}

	// Stations may be listed without coordinates of their own in some edited
	// files; only ids with coordinates become nodes.
	sort.Ints(order)
	nodes := make([]Node, 0, len(order))
	for _, id := range order {
		c := coords[id]
		n := Node{X: c[0], Y: c[1]}
		switch {
		case depots[id]:
			n.Kind = genome.KindDepot
			n.ID = "D" + strconv.Itoa(id)
		case stations[id]:
			n.Kind = genome.KindStation
			n.ID = "S" + strconv.Itoa(id)
		default:
			n.Kind = genome.KindCustomer
			n.ID = "C" + strconv.Itoa(id)
			n.Demand = demands[id]
		}
		nodes = append(nodes, n)
	}

	if vehicles == 0 {
		vehicles = 1
	}
	if energyCapacity == 0 {
		energyCapacity = 100
	}

	return Build(nodes, vehicles, capacity, energyCapacity)
}

// headerInt parses the integer value of a "KEY: value" header line.
func headerInt(line, prefix string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, prefix)))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadHeader, line)
	}

	return v, nil
}
