package fitness

import (
	"math"

	"github.com/voltroute/voltroute/dist"
	"github.com/voltroute/voltroute/genome"
)

// Infeasible is the sentinel fitness of a chromosome that cannot be executed:
// an unreachable hop, or a battery-starved hop with no charge available.
// It is far above any legitimate score (totals are divided by 100), so plain
// `score < Infeasible` distinguishes feasible solutions.
const Infeasible = 1e6

// normScale ties distance and time units to a comparable magnitude in the
// weighted sum. Fixed by the reference outputs; do not tune.
const normScale = 100.0

// roundScale stabilizes the final score to 1e-9 absolute precision so results
// are reproducible across platforms and optimization levels.
const roundScale = 1e9

// Params bundles the energy model and objective weights for one evaluation.
// It replaces any notion of process-wide configuration: every call receives
// an explicit immutable value.
//
// The weights are independent; they need not sum to 1.
type Params struct {
	// BatteryCapacity is the usable energy of a full battery. The battery is
	// reset to this value at the start of every route.
	BatteryCapacity float64

	// ConsumptionRate is energy consumed per unit distance.
	ConsumptionRate float64

	// ChargingRate is energy replenished per unit time at a station.
	// Zero or negative means instantaneous charging (zero charge time),
	// not a division fault.
	ChargingRate float64

	// DistanceWeight scales the normalized total distance.
	DistanceWeight float64

	// ChargingWeight scales the normalized total charging time.
	ChargingWeight float64
}

// DefaultParams mirrors the reference configuration: unit rates, a battery of
// 100, and a 60/40 distance/charging split.
func DefaultParams() Params {
	return Params{
		BatteryCapacity: 100,
		ConsumptionRate: 1,
		ChargingRate:    1,
		DistanceWeight:  0.6,
		ChargingWeight:  0.4,
	}
}

// Evaluate scores c against the energy model in p. Routes are simulated
// independently (battery reset to full at each route start); the first
// unreachable or battery-starved hop anywhere aborts the whole chromosome
// with Infeasible — no partial credit.
//
// Contract: c is never mutated; the score is computed fresh on every call and
// must not be cached across operator applications.
//
// Complexity: O(L·S) time where L is the chromosome length and S the longest
// station-to-stop span (the lookahead), O(1) extra space beyond SplitRoutes.
func Evaluate(c genome.Chromosome, d *dist.Matrix, p Params) float64 {
	totalDistance, totalCharging, ok := Totals(c, d, p)
	if !ok {
		return Infeasible
	}
	score := p.DistanceWeight*(totalDistance/normScale) + p.ChargingWeight*(totalCharging/normScale)

	return round1e9(score)
}

// Totals runs the battery simulation and returns the raw accumulators behind
// the score: total traveled distance and total charging time. ok is false
// when the chromosome is infeasible, in which case both totals are zero.
//
// Exposed separately so reporting surfaces can show the physical quantities
// without re-deriving them from the weighted score.
func Totals(c genome.Chromosome, d *dist.Matrix, p Params) (totalDistance, totalCharging float64, ok bool) {
	for _, route := range genome.SplitRoutes(c) {
		battery := p.BatteryCapacity
		for i := 0; i < len(route)-1; i++ {
			hop := d.Between(route[i].Node, route[i+1].Node)
			if dist.IsUnreachable(hop) {
				return 0, 0, false
			}
			totalDistance += hop
			need := hop * p.ConsumptionRate

			// A station charges just enough to reach the next stop; the
			// charge time is paid even when the requirement exceeds the
			// battery headroom (the later feasibility check then fails).
			if route[i].Kind == genome.KindStation {
				required, reachable := EnergyToNextStop(route, i, d, p.ConsumptionRate)
				if !reachable {
					return 0, 0, false
				}
				shortfall := math.Max(0, required-battery)
				if p.ChargingRate > 0 {
					totalCharging += shortfall / p.ChargingRate
				}
				battery = math.Min(battery+shortfall, p.BatteryCapacity)
			}

			if battery < need {
				return 0, 0, false
			}
			battery -= need
		}
	}

	return totalDistance, totalCharging, true
}

// EnergyToNextStop sums the consumption of consecutive hops starting at
// route[from], stopping as soon as a hop ends at a station or depot
// (inclusive of that hop). This is the single lookahead shared by the
// evaluator (charging shortfall at a station) and the repair engine (how much
// to charge before departing a stop); keeping one implementation is what
// keeps their semantics identical.
//
// ok is false when any hop in the span is unreachable.
//
// Complexity: O(span) time, O(1) space.
func EnergyToNextStop(route genome.Route, from int, d *dist.Matrix, consumptionRate float64) (energy float64, ok bool) {
	for j := from; j < len(route)-1; j++ {
		hop := d.Between(route[j].Node, route[j+1].Node)
		if dist.IsUnreachable(hop) {
			return 0, false
		}
		energy += hop * consumptionRate
		if route[j+1].Kind.IsStop() {
			break
		}
	}

	return energy, true
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
