package scenario

import (
	"fmt"
	"math/rand"

	"github.com/satria-nugraha/corridorsim/pkg"
	"github.com/satria-nugraha/corridorsim/pkg/network"
	"github.com/satria-nugraha/corridorsim/pkg/routing"
	"github.com/satria-nugraha/corridorsim/pkg/util"
)

// Scenario ties a corridor, a vehicle population and a route table together. The
// route table is built exactly once here, before any simulation stepping, and the
// origin distribution is checked against it so a configuration mismatch fails at
// construction instead of mid-run.
type Scenario struct {
	name     string
	corridor *network.Corridor
	types    []VehicleType

	netParams NetParams
	cfgParams CfgParams
	initial   InitialConfig

	strategy routing.Strategy
	table    *routing.RouteTable
	origins  []string
}

type Option func(*Scenario)

// WithRouteStrategy replaces the default corridor-suffix routing, e.g. with
// routing.SingletonRoutes or a custom function.
func WithRouteStrategy(s routing.Strategy) Option {
	return func(sc *Scenario) {
		sc.strategy = s
	}
}

func New(name string, corridor *network.Corridor, types []VehicleType,
	netParams NetParams, cfgParams CfgParams, initial InitialConfig,
	opts ...Option) (*Scenario, error) {

	if name == "" {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "scenario: empty name")
	}
	if corridor == nil {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "scenario %s: nil corridor", name)
	}
	if len(types) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "scenario %s: no vehicle types", name)
	}
	if err := validateParams(netParams, cfgParams, initial, types); err != nil {
		return nil, err
	}

	sc := &Scenario{
		name:      name,
		corridor:  corridor,
		types:     types,
		netParams: netParams,
		cfgParams: cfgParams,
		initial:   initial,
		strategy:  routing.CorridorSuffixes,
	}
	for _, opt := range opts {
		opt(sc)
	}

	table, err := sc.strategy(corridor.ChainIDs())
	if err != nil {
		return nil, err
	}
	sc.table = table

	origins := initial.Distribution
	if len(origins) == 0 {
		origins = corridor.ChainIDs()
	}
	for _, origin := range origins {
		if !table.Has(origin) {
			return nil, util.WrapErrorf(nil, routing.ErrUnknownOrigin,
				"scenario %s: origin distribution segment %q has no route", name, origin)
		}
	}
	sc.origins = origins

	return sc, nil
}

func (sc *Scenario) Name() string {
	return sc.name
}

func (sc *Scenario) Corridor() *network.Corridor {
	return sc.corridor
}

func (sc *Scenario) VehicleTypes() []VehicleType {
	return sc.types
}

func (sc *Scenario) NetParams() NetParams {
	return sc.netParams
}

func (sc *Scenario) CfgParams() CfgParams {
	return sc.cfgParams
}

// Origins returns the configured origin distribution, in chain order.
func (sc *Scenario) Origins() []string {
	return sc.origins
}

// RouteFor returns the fixed route a vehicle placed on origin will follow.
func (sc *Scenario) RouteFor(origin string) (routing.Route, error) {
	return sc.table.Lookup(origin)
}

// RouteTable exposes the built table to read-only consumers (API layer).
func (sc *Scenario) RouteTable() *routing.RouteTable {
	return sc.table
}

// VehicleCount is the total population over all types.
func (sc *Scenario) VehicleCount() int {
	var n int
	for _, vt := range sc.types {
		n += vt.Count
	}
	return n
}

// Placement is one vehicle's initial state: the segment it starts on, its position
// along that segment in meters, and the route it will follow.
type Placement struct {
	VehicleID string
	TypeName  string
	SegmentID string
	PositionM float64
	Route     routing.Route
}

// InitialPlacements spreads the vehicle population over the origin distribution,
// round-robin across origins with even spacing along each segment. With Shuffle set,
// the origin order is permuted deterministically from Seed.
func (sc *Scenario) InitialPlacements() ([]Placement, error) {
	origins := make([]string, len(sc.origins))
	copy(origins, sc.origins)
	if sc.initial.Shuffle {
		rng := rand.New(rand.NewSource(sc.initial.Seed))
		rng.Shuffle(len(origins), func(i, j int) {
			origins[i], origins[j] = origins[j], origins[i]
		})
	}

	spacing := sc.initial.SpacingM
	if spacing < pkg.MIN_VEHICLE_SPACING_METER {
		spacing = pkg.MIN_VEHICLE_SPACING_METER
	}

	placements := make([]Placement, 0, sc.VehicleCount())
	slot := 0
	for _, vt := range sc.types {
		for k := 0; k < vt.Count; k++ {
			origin := origins[slot%len(origins)]
			route, err := sc.table.Lookup(origin)
			if err != nil {
				return nil, err
			}

			seg, _ := sc.corridor.Segment(origin)
			pos := float64(slot/len(origins)) * spacing
			if seg.LengthM > 0 && pos > seg.LengthM {
				return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
					"scenario %s: segment %q cannot fit the configured population", sc.name, origin)
			}

			placements = append(placements, Placement{
				VehicleID: fmt.Sprintf("%s_%d", vt.Name, k),
				TypeName:  vt.Name,
				SegmentID: origin,
				PositionM: pos,
				Route:     route,
			})
			slot++
		}
	}
	return placements, nil
}
