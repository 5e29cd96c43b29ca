package usecases

import (
	"github.com/satria-nugraha/corridorsim/pkg/geo"
	"github.com/satria-nugraha/corridorsim/pkg/routing"
	"github.com/satria-nugraha/corridorsim/pkg/scenario"
	"go.uber.org/zap"
)

type ScenarioService struct {
	log          *zap.Logger
	sc           *scenario.Scenario
	spatialIndex SpatialIndex
	searchRadius float64 // km
}

func NewScenarioService(log *zap.Logger, sc *scenario.Scenario, spatialIndex SpatialIndex,
	searchRadius float64) *ScenarioService {
	return &ScenarioService{
		log:          log,
		sc:           sc,
		spatialIndex: spatialIndex,
		searchRadius: searchRadius,
	}
}

// RouteFor returns the fixed route for origin, its length in meters and its encoded
// polyline geometry.
func (s *ScenarioService) RouteFor(origin string) (routing.Route, float64, string, error) {
	route, err := s.sc.RouteFor(origin)
	if err != nil {
		return nil, 0, "", err
	}

	lengthM, coords := s.routeGeometry(route)
	return route, lengthM, geo.PolylineFromCoords(coords), nil
}

// RouteNear snaps (lat, lon) to the nearest corridor segment and returns that
// segment's route.
func (s *ScenarioService) RouteNear(lat, lon float64) (string, routing.Route, float64, string, error) {
	seg, err := s.spatialIndex.NearestSegment(lat, lon, s.searchRadius)
	if err != nil {
		return "", nil, 0, "", err
	}

	route, lengthM, polyline, err := s.RouteFor(seg.ID)
	if err != nil {
		return "", nil, 0, "", err
	}
	return seg.ID, route, lengthM, polyline, nil
}

func (s *ScenarioService) Scenario() *scenario.Scenario {
	return s.sc
}

func (s *ScenarioService) routeGeometry(route routing.Route) (float64, []geo.Coordinate) {
	corridor := s.sc.Corridor()

	var lengthM float64
	coords := make([]geo.Coordinate, 0, len(route)+1)
	for i, id := range route {
		seg, ok := corridor.Segment(id)
		if !ok {
			continue
		}
		if i == 0 {
			coords = append(coords, seg.From)
		}
		coords = append(coords, seg.To)
		lengthM += seg.LengthM
	}
	return lengthM, coords
}
