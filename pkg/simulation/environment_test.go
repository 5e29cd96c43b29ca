package simulation

import (
	"context"
	"errors"
	"testing"

	"github.com/satria-nugraha/corridorsim/pkg/geo"
	"github.com/satria-nugraha/corridorsim/pkg/logger"
	"github.com/satria-nugraha/corridorsim/pkg/network"
	"github.com/satria-nugraha/corridorsim/pkg/routing"
	"github.com/satria-nugraha/corridorsim/pkg/scenario"
	"go.uber.org/zap"
)

func testScenario(t *testing.T, opts ...scenario.Option) *scenario.Scenario {
	t.Helper()
	segments := []network.Segment{
		{ID: "A", From: geo.NewCoordinate(-7.80, 110.360), To: geo.NewCoordinate(-7.80, 110.364), Lanes: 1, SpeedLimit: 30},
		{ID: "B", From: geo.NewCoordinate(-7.80, 110.364), To: geo.NewCoordinate(-7.80, 110.368), Lanes: 1, SpeedLimit: 30},
		{ID: "C", From: geo.NewCoordinate(-7.80, 110.368), To: geo.NewCoordinate(-7.80, 110.372), Lanes: 1, SpeedLimit: 30},
	}
	c, err := network.NewCorridor(segments)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	types := []scenario.VehicleType{{Name: "ovm", Count: 4, AccelController: "ovm"}}
	sc, err := scenario.New("env-test", c, types,
		scenario.DefaultNetParams(), scenario.DefaultCfgParams(), scenario.InitialConfig{}, opts...)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return sc
}

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	log, err := logger.New()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return log
}

func TestEnvironmentReset(t *testing.T) {
	backend := NewLoopbackBackend(scenario.DefaultSimParams())
	env := NewEnvironment(testScenario(t), backend, scenario.DefaultEnvParams(), testLogger(t))

	n, err := env.Reset(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if n != 4 {
		t.Errorf("placed %d vehicles, want 4", n)
	}
	if backend.VehicleCount() != 4 {
		t.Errorf("backend holds %d vehicles, want 4", backend.VehicleCount())
	}

	// reset is repeatable: the previous population is torn down first
	n, err = env.Reset(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if n != 4 || backend.VehicleCount() != 4 {
		t.Errorf("second reset placed %d vehicles, backend holds %d", n, backend.VehicleCount())
	}
}

func TestEnvironmentRespawn(t *testing.T) {
	// singleton routes: every vehicle departs after one step and must be reinserted
	// on its origin segment
	backend := NewLoopbackBackend(scenario.DefaultSimParams())
	sc := testScenario(t, scenario.WithRouteStrategy(routing.SingletonRoutes))
	env := NewEnvironment(sc, backend, scenario.DefaultEnvParams(), testLogger(t))

	if _, err := env.Reset(context.Background()); err != nil {
		t.Fatalf("err: %v", err)
	}

	for s := 0; s < 5; s++ {
		if err := env.Step(context.Background()); err != nil {
			t.Fatalf("step %d: %v", s, err)
		}
		if backend.VehicleCount() != 4 {
			t.Fatalf("step %d: backend holds %d vehicles, want 4", s, backend.VehicleCount())
		}
	}
	if env.StepCount() != 5 {
		t.Errorf("step count = %d, want 5", env.StepCount())
	}
}

type failingBackend struct {
	*LoopbackBackend
	failAfter int
	inserted  int
}

var errBackendDown = errors.New("simulator connection lost")

func (b *failingBackend) AddVehicle(ctx context.Context, p scenario.Placement) error {
	if b.inserted >= b.failAfter {
		return errBackendDown
	}
	b.inserted++
	return b.LoopbackBackend.AddVehicle(ctx, p)
}

func TestEnvironmentResetPropagatesPlacementError(t *testing.T) {
	backend := &failingBackend{LoopbackBackend: NewLoopbackBackend(scenario.DefaultSimParams()), failAfter: 2}
	env := NewEnvironment(testScenario(t), backend, scenario.DefaultEnvParams(), testLogger(t))

	_, err := env.Reset(context.Background())
	if !errors.Is(err, errBackendDown) {
		t.Fatalf("err = %v, want backend failure", err)
	}
}
