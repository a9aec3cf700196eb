// Package repair restores energy feasibility of EVRP chromosomes by inserting
// charging-station visits.
//
// Crossover and mutation know nothing about batteries, so their offspring
// routinely schedule hops the vehicle cannot complete. Repair walks each route
// with the same battery simulation the fitness evaluator uses (the shared
// lookahead lives in the fitness package) and, whenever the next hop is not
// coverable, detours to the nearest charging station that is still reachable
// with the remaining charge. The pending hop is then re-checked from the
// station — the walk does not advance until the hop is covered or declared a
// dead end.
//
// Repair is strictly additive: it only inserts station visits, never reorders
// or drops existing stops, so the customer multiset and the route grouping of
// the input are preserved. A genuinely unsatisfiable hop is forced through
// with an emptied battery and left in place for the evaluator to penalize;
// repair never fabricates energy and never fails.
package repair
