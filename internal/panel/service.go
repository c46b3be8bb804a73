package panel

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Run couples a stored simulation with its identity and inputs.
type Run struct {
	ID        string         `json:"run_id"`
	CreatedAt time.Time      `json:"created_at"` // always UTC
	Params    ParameterSet   `json:"-"`
	Result    *ResultSummary `json:"results"`
}

// Store is the contract the in-memory run store (and any future
// persistent store) must satisfy.
type Store interface {
	SaveRun(run Run)
	GetRun(id string) (Run, error)
}

// Service orchestrates simulation runs: it enforces the step ceiling,
// executes the solver, and persists completed runs for later retrieval.
type Service struct {
	store    Store
	maxSteps int
}

// NewService creates a Service. maxSteps bounds NSteps per run; values
// <= 0 fall back to the package ceiling.
func NewService(store Store, maxSteps int) *Service {
	if maxSteps <= 0 || maxSteps > MaxSteps {
		maxSteps = MaxSteps
	}
	return &Service{store: store, maxSteps: maxSteps}
}

// Simulate validates the step ceiling, runs a fresh solver over p, and
// stores the completed run. Each invocation owns independent grids;
// concurrent calls need no coordination.
func (s *Service) Simulate(ctx context.Context, p ParameterSet) (Run, error) {
	if p.NSteps > s.maxSteps {
		return Run{}, &ValidationError{Field: "n_steps", Value: float64(p.NSteps), Min: 0, Max: float64(s.maxSteps)}
	}

	solver := NewSolver(p)
	result, err := solver.Run(ctx)
	if err != nil {
		return Run{}, err
	}

	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Params:    p,
		Result:    result,
	}
	if s.store != nil {
		s.store.SaveRun(run)
	}

	log.Printf("panel: run %s complete in %.2f ms (T mean %.2f K, P total %.2f W)",
		run.ID, result.RuntimeMS, result.TemperatureMean, result.PowerTotal)
	return run, nil
}

// GetRun retrieves a previously stored run by id.
func (s *Service) GetRun(id string) (Run, error) {
	return s.store.GetRun(id)
}
