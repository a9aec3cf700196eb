// Package httpapi exposes the solver over HTTP: POST /solve runs the genetic
// search over an inline instance, GET /healthz reports liveness.
package httpapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/voltroute/voltroute/config"
	"github.com/voltroute/voltroute/fitness"
	"github.com/voltroute/voltroute/ga"
	"github.com/voltroute/voltroute/genome"
	"github.com/voltroute/voltroute/instance"
)

// Handler serves the solver endpoints.
type Handler struct {
	cfg      config.Config
	log      *slog.Logger
	validate *validator.Validate
}

// NewHandler builds a Handler bound to cfg; log must be non-nil.
func NewHandler(cfg config.Config, log *slog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		log:      log,
		validate: validator.New(),
	}
}

// Register mounts the solver routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.Health)
	app.Post("/solve", h.Solve)
}

// Health reports liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Solve parses an inline instance, runs the genetic search under the
// configured timeout and returns the best solution found.
func (h *Handler) Solve(c *fiber.Ctx) error {
	var req SolveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	inst, err := buildInstance(req)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	var opts ga.Options
	opts = h.cfg.SolverOptions()
	if req.Population > 0 {
		opts.PopulationSize = req.Population
	}
	if req.Generations > 0 {
		opts.Generations = req.Generations
	}
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}

	solver, err := ga.New(inst, opts)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.cfg.Server.SolveTimeout)
	defer cancel()

	var started time.Time
	started = time.Now()

	res, runErr := solver.Run(ctx)
	if runErr != nil && res.Best == nil {
		return fiber.NewError(fiber.StatusGatewayTimeout, "solve canceled before any solution was found")
	}

	h.log.Info("solve finished",
		"nodes", inst.Len(),
		"generations", res.Generations,
		"fitness", res.BestFitness,
		"infeasible_replaced", res.InfeasibleReplaced,
		"elapsed", time.Since(started),
		"timed_out", runErr != nil,
	)

	return c.JSON(h.buildResponse(inst, opts, res, started))
}

// buildInstance maps request nodes into a validated problem instance.
func buildInstance(req SolveRequest) (*instance.Instance, error) {
	var nodes []instance.Node
	nodes = make([]instance.Node, 0, len(req.Nodes))

	for _, n := range req.Nodes {
		var kind genome.Kind
		switch n.Role {
		case "depot":
			kind = genome.KindDepot
		case "station":
			kind = genome.KindStation
		default:
			kind = genome.KindCustomer
		}
		nodes = append(nodes, instance.Node{
			ID:     n.ID,
			Kind:   kind,
			X:      n.X,
			Y:      n.Y,
			Demand: n.Demand,
		})
	}

	var vehicles int
	vehicles = req.Vehicles
	if vehicles == 0 {
		vehicles = 1
	}

	var energy float64
	energy = req.EnergyCapacity
	if energy == 0 {
		energy = 100
	}

	return instance.Build(nodes, vehicles, req.Capacity, energy)
}

// buildResponse flattens the best chromosome into per-route results.
func (h *Handler) buildResponse(inst *instance.Instance, opts ga.Options, res ga.Result, started time.Time) SolveResponse {
	var resp SolveResponse
	resp = SolveResponse{
		Fitness:            res.BestFitness,
		Feasible:           res.BestFitness < fitness.Infeasible,
		Generations:        res.Generations,
		InfeasibleReplaced: res.InfeasibleReplaced,
		ElapsedMS:          time.Since(started).Milliseconds(),
	}

	var d = inst.DistanceMatrix()
	for _, route := range genome.SplitRoutes(res.Best) {
		var rr RouteResult
		rr.Stops = make([]string, 0, len(route))
		for _, g := range route {
			rr.Stops = append(rr.Stops, inst.Node(g.Node).ID)
		}

		distance, charging, ok := fitness.Totals(genome.Chromosome(route), d, opts.Fitness)
		if ok {
			rr.Distance = distance
			rr.ChargingTime = charging
			resp.TotalDistance += distance
			resp.TotalChargingTime += charging
		}

		resp.Routes = append(resp.Routes, rr)
	}

	return resp
}
