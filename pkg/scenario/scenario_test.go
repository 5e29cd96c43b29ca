package scenario

import (
	"errors"
	"testing"

	"github.com/satria-nugraha/corridorsim/pkg/geo"
	"github.com/satria-nugraha/corridorsim/pkg/network"
	"github.com/satria-nugraha/corridorsim/pkg/routing"
	"github.com/satria-nugraha/corridorsim/pkg/util"
)

func testCorridor(t *testing.T) *network.Corridor {
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
	return c
}

func testTypes() []VehicleType {
	return []VehicleType{
		{Name: "ovm", Count: 6, AccelController: "ovm", LaneChangeController: "static"},
	}
}

func TestNewScenario(t *testing.T) {
	sc, err := New("corridor-test", testCorridor(t), testTypes(),
		DefaultNetParams(), DefaultCfgParams(), InitialConfig{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if sc.VehicleCount() != 6 {
		t.Errorf("vehicle count = %d, want 6", sc.VehicleCount())
	}
	// empty distribution defaults to the whole chain
	if len(sc.Origins()) != 3 {
		t.Errorf("origins = %v, want the full chain", sc.Origins())
	}

	route, err := sc.RouteFor("B")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(route) != 2 || route[0] != "B" || route[1] != "C" {
		t.Errorf("route for B = %v, want [B C]", route)
	}
}

func TestNewScenarioDistributionMismatch(t *testing.T) {
	_, err := New("corridor-test", testCorridor(t), testTypes(),
		DefaultNetParams(), DefaultCfgParams(),
		InitialConfig{Distribution: []string{"A", "Z"}})
	if err == nil {
		t.Fatal("scenario construction should fail")
	}
	if !errors.Is(util.ErrorCode(err), routing.ErrUnknownOrigin) {
		t.Errorf("error code = %v, want ErrUnknownOrigin", util.ErrorCode(err))
	}
}

func TestNewScenarioInvalidParams(t *testing.T) {
	net := DefaultNetParams()
	net.Lanes = 0
	_, err := New("corridor-test", testCorridor(t), testTypes(),
		net, DefaultCfgParams(), InitialConfig{})
	if !errors.Is(util.ErrorCode(err), util.ErrBadParamInput) {
		t.Errorf("error code = %v, want ErrBadParamInput", util.ErrorCode(err))
	}

	cfg := DefaultCfgParams()
	cfg.EndTime = 0
	_, err = New("corridor-test", testCorridor(t), testTypes(),
		DefaultNetParams(), cfg, InitialConfig{})
	if !errors.Is(util.ErrorCode(err), util.ErrBadParamInput) {
		t.Errorf("error code = %v, want ErrBadParamInput", util.ErrorCode(err))
	}
}

func TestWithRouteStrategy(t *testing.T) {
	sc, err := New("corridor-test", testCorridor(t), testTypes(),
		DefaultNetParams(), DefaultCfgParams(), InitialConfig{},
		WithRouteStrategy(routing.SingletonRoutes))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	route, err := sc.RouteFor("A")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(route) != 1 || route[0] != "A" {
		t.Errorf("singleton route for A = %v", route)
	}
}

func TestInitialPlacements(t *testing.T) {
	sc, err := New("corridor-test", testCorridor(t), testTypes(),
		DefaultNetParams(), DefaultCfgParams(),
		InitialConfig{Distribution: []string{"A", "B"}, SpacingM: 10})
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	placements, err := sc.InitialPlacements()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(placements) != 6 {
		t.Fatalf("placements = %d, want 6", len(placements))
	}

	perOrigin := make(map[string]int)
	for _, p := range placements {
		perOrigin[p.SegmentID]++
		if p.Route.Origin() != p.SegmentID {
			t.Errorf("placement %s route starts at %s, segment %s", p.VehicleID, p.Route.Origin(), p.SegmentID)
		}
		if p.PositionM < 0 {
			t.Errorf("placement %s at negative position", p.VehicleID)
		}
	}
	if perOrigin["A"] != 3 || perOrigin["B"] != 3 {
		t.Errorf("round robin distribution = %v", perOrigin)
	}
}

func TestInitialPlacementsShuffleDeterministic(t *testing.T) {
	build := func() []Placement {
		sc, err := New("corridor-test", testCorridor(t), testTypes(),
			DefaultNetParams(), DefaultCfgParams(),
			InitialConfig{Shuffle: true, Seed: 42})
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		placements, err := sc.InitialPlacements()
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		return placements
	}

	first, second := build(), build()
	for i := range first {
		if first[i].SegmentID != second[i].SegmentID || first[i].PositionM != second[i].PositionM {
			t.Fatalf("shuffle with fixed seed not deterministic at %d", i)
		}
	}
}
