package simulation

import (
	"context"
	"sync"

	"github.com/satria-nugraha/corridorsim/pkg/scenario"
	"github.com/satria-nugraha/corridorsim/pkg/util"
)

// Departure reports a vehicle that left the network during a step.
type Departure struct {
	VehicleID string
	SegmentID string // last segment the vehicle was on
}

// Backend is the narrow surface of the external microsimulator. Process lifecycle,
// vehicle dynamics and network parsing all live behind it.
type Backend interface {
	AddVehicle(ctx context.Context, p scenario.Placement) error
	Step(ctx context.Context) ([]Departure, error)
	Teardown(ctx context.Context) error
}

// LoopbackBackend is an in-process Backend that advances every vehicle one segment
// per step along its assigned route. It carries no vehicle dynamics; it exists so the
// placement and respawn paths can run without a simulator attached.
type LoopbackBackend struct {
	mu       sync.Mutex
	params   scenario.SimParams
	simTime  float64
	vehicles map[string]*loopbackVehicle
}

type loopbackVehicle struct {
	placement scenario.Placement
	routePos  int
}

func NewLoopbackBackend(params scenario.SimParams) *LoopbackBackend {
	return &LoopbackBackend{
		params:   params,
		vehicles: make(map[string]*loopbackVehicle),
	}
}

func (b *LoopbackBackend) AddVehicle(ctx context.Context, p scenario.Placement) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.vehicles[p.VehicleID]; ok {
		return util.WrapErrorf(nil, util.ErrConflict, "vehicle %q already inserted", p.VehicleID)
	}
	if len(p.Route) == 0 || p.Route[0] != p.SegmentID {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"vehicle %q route does not start on its insertion segment", p.VehicleID)
	}
	b.vehicles[p.VehicleID] = &loopbackVehicle{placement: p}
	return nil
}

func (b *LoopbackBackend) Step(ctx context.Context) ([]Departure, error) {
	if util.StopConcurrentOperation(ctx) {
		return nil, ctx.Err()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.simTime += b.params.TimeStep

	var departures []Departure
	for id, v := range b.vehicles {
		v.routePos++
		if v.routePos >= len(v.placement.Route) {
			departures = append(departures, Departure{
				VehicleID: id,
				SegmentID: v.placement.Route[len(v.placement.Route)-1],
			})
			delete(b.vehicles, id)
		}
	}
	return departures, nil
}

func (b *LoopbackBackend) Teardown(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.simTime = 0
	b.vehicles = make(map[string]*loopbackVehicle)
	return nil
}

// SimTime is the simulated time in seconds since the last teardown.
func (b *LoopbackBackend) SimTime() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.simTime
}

// VehicleCount reports how many vehicles are currently in the network.
func (b *LoopbackBackend) VehicleCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.vehicles)
}
