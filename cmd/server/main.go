package main

import (
	"context"
	"flag"

	"github.com/satria-nugraha/corridorsim/pkg/http"
	"github.com/satria-nugraha/corridorsim/pkg/http/usecases"
	"github.com/satria-nugraha/corridorsim/pkg/logger"
	"github.com/satria-nugraha/corridorsim/pkg/network"
	"github.com/satria-nugraha/corridorsim/pkg/scenario"
	"github.com/satria-nugraha/corridorsim/pkg/spatialindex"
	"go.uber.org/zap"
)

var (
	corridorPath          = flag.String("corridor", "./data/corridor.json", "corridor definition file")
	vehicles              = flag.Int("vehicles", 22, "vehicle count")
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
	snapRadius            = flag.Float64("snap_radius", 0.5, "search radius in km for nearest-segment snapping")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	corridor, err := network.LoadCorridor(*corridorPath)
	if err != nil {
		log.Fatal("load corridor", zap.Error(err))
	}

	types := []scenario.VehicleType{
		{Name: "ovm", Count: *vehicles, AccelController: "ovm", LaneChangeController: "static"},
	}
	sc, err := scenario.New("corridor-api", corridor, types,
		scenario.DefaultNetParams(), scenario.DefaultCfgParams(), scenario.InitialConfig{})
	if err != nil {
		log.Fatal("build scenario", zap.Error(err))
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(corridor, *leafBoundingBoxRadius, log)

	api := http.NewServer(log)

	scenarioService := usecases.NewScenarioService(log, sc, rtree, *snapRadius)
	ctx, cleanup := context.WithCancel(context.Background())

	if _, err := api.Use(ctx, log, false, scenarioService); err != nil {
		log.Fatal("start api", zap.Error(err))
	}

	signal := http.GracefulShutdown()

	log.Info("corridorsim API server stopped", zap.String("signal", signal.String()))
	cleanup()
}
