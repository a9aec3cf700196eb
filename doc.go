// Package voltroute is a genetic-algorithm heuristic solver for the electric
// vehicle routing problem with charging stations (EVRP).
//
// 🚀 What is voltroute?
//
//	A solver library plus two binaries that bring together:
//		• Encoding: flat chromosomes with route separators (genome/)
//		• Distances: a symmetric Euclidean matrix with an unreachable sentinel (dist/)
//		• Evaluation: battery simulation with partial charging at stations (fitness/)
//		• Repair: energy-aware station insertion for broken routes (repair/)
//		• Search: elitist GA with BCRC crossover and border-customer mutation (ga/)
//		• Instances: .evrp files, node CSV tables and inline HTTP payloads (instance/, httpapi/)
//
// ✨ Why choose voltroute?
//
//   - Deterministic – a seed fully pins the run; no time-based randomness anywhere
//   - Coherent – evaluator and repair share one battery lookahead, so a repaired
//     route is feasible under the same model that scores it
//   - Rock-solid guarantees – sentinel errors, no panics on user input, no
//     logging inside the algorithm packages
//
// Under the hood, everything is organized as:
//
//	genome/   — chromosome encoding & route split/join
//	dist/     — pairwise distance provider
//	fitness/  — weighted distance + charging-time objective
//	repair/   — energy feasibility repair
//	ga/       — population, operators & the generation loop
//	instance/ — problem parsing & validation
//	config/   — file + environment configuration
//	httpapi/  — HTTP solve surface
//	cmd/      — the api server and the solve CLI
//
// Quick ASCII example:
//
//	D1──C3──S2──C7──D1 | D4──C5──D4
//
//	two vehicle routes, the second needing no charging stop.
//
//	go get github.com/voltroute/voltroute
package voltroute
