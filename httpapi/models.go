package httpapi

// NodeSpec is one node of an inline problem instance.
type NodeSpec struct {
	ID     string  `json:"id"     validate:"required"`
	Role   string  `json:"role"   validate:"required,oneof=depot customer station"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Demand int     `json:"demand" validate:"min=0"`
}

// SolveRequest carries an inline instance plus optional solver overrides.
// Zero-valued overrides fall back to the server's configured defaults.
type SolveRequest struct {
	Nodes          []NodeSpec `json:"nodes"          validate:"required,min=2,dive"`
	Vehicles       int        `json:"vehicles"       validate:"min=0"`
	Capacity       int        `json:"capacity"       validate:"min=0"`
	EnergyCapacity float64    `json:"energyCapacity" validate:"min=0"`

	Population  int   `json:"population"  validate:"min=0"`
	Generations int   `json:"generations" validate:"min=0"`
	Seed        int64 `json:"seed"`
}

// RouteResult is one vehicle route of the best solution.
type RouteResult struct {
	Stops        []string `json:"stops"`
	Distance     float64  `json:"distance"`
	ChargingTime float64  `json:"chargingTime"`
}

// SolveResponse is the outcome of one solve call.
type SolveResponse struct {
	Routes             []RouteResult `json:"routes"`
	Fitness            float64       `json:"fitness"`
	Feasible           bool          `json:"feasible"`
	TotalDistance      float64       `json:"totalDistance"`
	TotalChargingTime  float64       `json:"totalChargingTime"`
	Generations        int           `json:"generations"`
	InfeasibleReplaced int           `json:"infeasibleReplaced"`
	ElapsedMS          int64         `json:"elapsedMs"`
}
