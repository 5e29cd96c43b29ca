package simulation

import (
	"context"

	"github.com/satria-nugraha/corridorsim/pkg/scenario"
	"go.uber.org/zap"
)

// Environment drives one simulation run: it performs every vehicle placement through
// the scenario's route table and steps the backend. A placement whose origin has no
// registered route is aborted and the error propagated; the environment never invents
// a default route.
type Environment struct {
	sc      *scenario.Scenario
	backend Backend
	params  scenario.EnvParams
	log     *zap.Logger

	byVehicle map[string]scenario.Placement
	step      int
}

func NewEnvironment(sc *scenario.Scenario, backend Backend, params scenario.EnvParams,
	log *zap.Logger) *Environment {
	return &Environment{
		sc:        sc,
		backend:   backend,
		params:    params,
		log:       log,
		byVehicle: make(map[string]scenario.Placement),
	}
}

// Reset tears the backend down and performs all initial placements. Returns the
// number of vehicles inserted.
func (e *Environment) Reset(ctx context.Context) (int, error) {
	if err := e.backend.Teardown(ctx); err != nil {
		return 0, err
	}
	e.step = 0
	e.byVehicle = make(map[string]scenario.Placement)

	placements, err := e.sc.InitialPlacements()
	if err != nil {
		return 0, err
	}
	for _, p := range placements {
		if err := e.backend.AddVehicle(ctx, p); err != nil {
			return len(e.byVehicle), err
		}
		e.byVehicle[p.VehicleID] = p
	}

	e.log.Info("environment reset",
		zap.String("scenario", e.sc.Name()),
		zap.Int("vehicles", len(placements)),
		zap.Float64("target_velocity", e.params.TargetVelocity))
	return len(placements), nil
}

// Step advances the backend one time step and reinserts departed vehicles on their
// origin segment. The respawn path looks the route up again, so a table/distribution
// mismatch surfaces here too instead of silently dropping the vehicle.
func (e *Environment) Step(ctx context.Context) error {
	departures, err := e.backend.Step(ctx)
	if err != nil {
		return err
	}
	e.step++

	for _, dep := range departures {
		prev, ok := e.byVehicle[dep.VehicleID]
		if !ok {
			e.log.Warn("departure for unknown vehicle", zap.String("vehicle", dep.VehicleID))
			continue
		}
		route, err := e.sc.RouteFor(prev.SegmentID)
		if err != nil {
			return err
		}
		respawn := scenario.Placement{
			VehicleID: prev.VehicleID,
			TypeName:  prev.TypeName,
			SegmentID: prev.SegmentID,
			PositionM: 0,
			Route:     route,
		}
		if err := e.backend.AddVehicle(ctx, respawn); err != nil {
			return err
		}
		e.byVehicle[respawn.VehicleID] = respawn
	}
	return nil
}

// StepCount reports how many steps ran since the last Reset.
func (e *Environment) StepCount() int {
	return e.step
}

func (e *Environment) Scenario() *scenario.Scenario {
	return e.sc
}

// EnvParams exposes the control parameters (target velocity, accel bounds) to the
// controller layer driving the backend.
func (e *Environment) EnvParams() scenario.EnvParams {
	return e.params
}

func (e *Environment) Terminate(ctx context.Context) error {
	return e.backend.Teardown(ctx)
}
