// Package fitness evaluates EVRP chromosomes by simulating the vehicle
// battery along every route.
//
// The score is a weighted sum of normalized totals,
//
//	fitness = w_distance·(total_distance/100) + w_charging·(total_charging_time/100),
//
// lower is better. A chromosome that cannot be physically executed — an
// unreachable hop, or a hop whose energy cost exceeds the remaining battery
// with no charge available — scores the Infeasible sentinel instead.
// Infeasibility is a normal, frequent outcome in early generations; it is
// data, not an error.
//
// Charging model (partial/lookahead): a station tops the battery up only by
// the shortfall needed to reach the next station or depot, never
// unconditionally to full. The exact same lookahead (EnergyToNextStop) is
// shared with the repair engine, so evaluation and repair can never disagree
// about how much energy a leg requires.
//
// Evaluate never mutates its input and holds no state between calls; it is
// safe to score a whole population concurrently against one shared matrix.
package fitness
