package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/satria-nugraha/corridorsim/pkg/geo"
	"github.com/satria-nugraha/corridorsim/pkg/http/router/routerhelper"
	"github.com/satria-nugraha/corridorsim/pkg/http/usecases"
	"github.com/satria-nugraha/corridorsim/pkg/logger"
	"github.com/satria-nugraha/corridorsim/pkg/network"
	"github.com/satria-nugraha/corridorsim/pkg/scenario"
	"github.com/satria-nugraha/corridorsim/pkg/spatialindex"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *httprouter.Router {
	t.Helper()

	log, err := logger.New()
	require.NoError(t, err)

	segments := []network.Segment{
		{ID: "A", From: geo.NewCoordinate(-7.80, 110.360), To: geo.NewCoordinate(-7.80, 110.364), Lanes: 1, SpeedLimit: 30},
		{ID: "B", From: geo.NewCoordinate(-7.80, 110.364), To: geo.NewCoordinate(-7.80, 110.368), Lanes: 1, SpeedLimit: 30},
		{ID: "C", From: geo.NewCoordinate(-7.80, 110.368), To: geo.NewCoordinate(-7.80, 110.372), Lanes: 1, SpeedLimit: 30},
	}
	corridor, err := network.NewCorridor(segments)
	require.NoError(t, err)

	sc, err := scenario.New("api-test", corridor,
		[]scenario.VehicleType{{Name: "ovm", Count: 2}},
		scenario.DefaultNetParams(), scenario.DefaultCfgParams(), scenario.InitialConfig{})
	require.NoError(t, err)

	rt := spatialindex.NewRtree()
	rt.Build(corridor, 0.05, log)

	service := usecases.NewScenarioService(log, sc, rt, 0.5)

	router := httprouter.New()
	group := routerhelper.NewRouteGroup(router, "/api")
	New(service, log).Routes(group)
	return router
}

func TestRouteEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/route?origin=B", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Origin   string   `json:"origin"`
			Segments []string `json:"segments"`
			LengthM  float64  `json:"length_m"`
			Polyline string   `json:"polyline"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "B", body.Data.Origin)
	require.Equal(t, []string{"B", "C"}, body.Data.Segments)
	require.Greater(t, body.Data.LengthM, 0.0)
	require.NotEmpty(t, body.Data.Polyline)
}

func TestRouteEndpointUnknownOrigin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/route?origin=Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouteEndpointMissingOrigin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/route", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNearestRouteEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/route/nearest?lat=-7.8001&lon=110.366", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Origin string `json:"origin"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "B", body.Data.Origin)
}

func TestScenarioEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scenario", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Name         string   `json:"name"`
			Chain        []string `json:"chain"`
			VehicleCount int      `json:"vehicle_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "api-test", body.Data.Name)
	require.Equal(t, []string{"A", "B", "C"}, body.Data.Chain)
	require.Equal(t, 2, body.Data.VehicleCount)
}
