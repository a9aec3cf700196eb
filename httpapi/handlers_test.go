package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltroute/voltroute/config"
	"github.com/voltroute/voltroute/httpapi"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	httpapi.NewHandler(config.Default(), logger).Register(app)

	return app
}

// TestHealth verifies the liveness endpoint.
func TestHealth(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestSolve_SmallInstance posts an inline instance and checks the response:
// feasible, every node ID resolvable, totals populated.
func TestSolve_SmallInstance(t *testing.T) {
	app := newTestApp()

	reqBody := httpapi.SolveRequest{
		Nodes: []httpapi.NodeSpec{
			{ID: "D1", Role: "depot", X: 0, Y: 0},
			{ID: "C1", Role: "customer", X: 1, Y: 1, Demand: 5},
			{ID: "C2", Role: "customer", X: 2, Y: 0, Demand: 3},
			{ID: "S1", Role: "station", X: 1, Y: 0},
		},
		Vehicles:       1,
		EnergyCapacity: 100,
		Population:     10,
		Generations:    4,
		Seed:           1,
	}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 30_000)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out httpapi.SolveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.True(t, out.Feasible)
	assert.Equal(t, 4, out.Generations)
	assert.Greater(t, out.TotalDistance, 0.0)
	require.NotEmpty(t, out.Routes)

	visited := map[string]int{}
	for _, r := range out.Routes {
		require.NotEmpty(t, r.Stops)
		for _, id := range r.Stops {
			visited[id]++
		}
	}
	assert.Equal(t, 1, visited["C1"])
	assert.Equal(t, 1, visited["C2"])
}

// TestSolve_BadRequests covers body parsing and validation failures.
func TestSolve_BadRequests(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Missing nodes fails validation.
	body, err := json.Marshal(httpapi.SolveRequest{})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A node table without a depot is structurally invalid.
	body, err = json.Marshal(httpapi.SolveRequest{
		Nodes: []httpapi.NodeSpec{
			{ID: "C1", Role: "customer", X: 0, Y: 0},
			{ID: "C2", Role: "customer", X: 1, Y: 1},
		},
	})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
