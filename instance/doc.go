// Package instance models one EVRP problem instance — the node table with
// resolved roles, coordinates and demands, plus the fleet and energy
// parameters — and parses the two on-disk formats it ships in.
//
// Roles are resolved exactly once, here: the builder and both parsers tag
// every node with its genome.Kind (depot, customer or station), and no other
// component ever derives a role from an identifier string again.
//
// Supported inputs:
//   - the EVRP text format (VEHICLES/CAPACITY/ENERGY_CAPACITY headers and
//     NODE_COORD_SECTION / DEMAND_SECTION / STATIONS_COORD_SECTION /
//     DEPOT_SECTION blocks), see ParseEVRP;
//   - a permissive nodes CSV (index/x/y/demand with flexible headers,
//     semicolon or comma separated, comma decimals tolerated), see
//     LoadNodesCSV. Malformed rows are collected into a typed RowError list
//     and surfaced to the caller instead of being dropped silently.
//
// An Instance is immutable after Build and safe to share across concurrent
// evaluations.
package instance
