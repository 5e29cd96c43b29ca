package controllers

import (
	"github.com/satria-nugraha/corridorsim/pkg/routing"
	"github.com/satria-nugraha/corridorsim/pkg/scenario"
)

type ScenarioService interface {
	// RouteFor returns the fixed route registered for origin together with its
	// length in meters and encoded polyline geometry.
	RouteFor(origin string) (routing.Route, float64, string, error)
	// RouteNear snaps a coordinate to the nearest corridor segment and returns that
	// segment's route.
	RouteNear(lat, lon float64) (string, routing.Route, float64, string, error)
	Scenario() *scenario.Scenario
}
