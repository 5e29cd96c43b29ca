package controllers

import (
	"github.com/satria-nugraha/corridorsim/pkg/routing"
	"github.com/satria-nugraha/corridorsim/pkg/scenario"
)

type routeRequest struct {
	Origin string `json:"origin" validate:"required"`
}

type nearestRouteRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type routeResponse struct {
	Origin   string   `json:"origin"`
	Segments []string `json:"segments"`
	LengthM  float64  `json:"length_m"`
	Polyline string   `json:"polyline"`
}

func NewRouteResponse(origin string, route routing.Route, lengthM float64, polyline string) routeResponse {
	return routeResponse{
		Origin:   origin,
		Segments: route,
		LengthM:  lengthM,
		Polyline: polyline,
	}
}

type vehicleTypeResponse struct {
	Name                 string `json:"name"`
	Count                int    `json:"count"`
	AccelController      string `json:"accel_controller,omitempty"`
	LaneChangeController string `json:"lane_change_controller,omitempty"`
}

type scenarioResponse struct {
	Name         string                `json:"name"`
	Chain        []string              `json:"chain"`
	Origins      []string              `json:"origins"`
	VehicleCount int                   `json:"vehicle_count"`
	LengthM      float64               `json:"length_m"`
	VehicleTypes []vehicleTypeResponse `json:"vehicle_types"`
}

func NewScenarioResponse(sc *scenario.Scenario) scenarioResponse {
	types := make([]vehicleTypeResponse, 0, len(sc.VehicleTypes()))
	for _, vt := range sc.VehicleTypes() {
		types = append(types, vehicleTypeResponse{
			Name:                 vt.Name,
			Count:                vt.Count,
			AccelController:      vt.AccelController,
			LaneChangeController: vt.LaneChangeController,
		})
	}
	return scenarioResponse{
		Name:         sc.Name(),
		Chain:        sc.Corridor().ChainIDs(),
		Origins:      sc.Origins(),
		VehicleCount: sc.VehicleCount(),
		LengthM:      sc.Corridor().Length(),
		VehicleTypes: types,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
