package main

import (
	"context"
	"flag"
	"os"

	"github.com/satria-nugraha/corridorsim/pkg"
	"github.com/satria-nugraha/corridorsim/pkg/geo"
	"github.com/satria-nugraha/corridorsim/pkg/logger"
	"github.com/satria-nugraha/corridorsim/pkg/network"
	"github.com/satria-nugraha/corridorsim/pkg/scenario"
	"github.com/satria-nugraha/corridorsim/pkg/simulation"
	"go.uber.org/zap"
)

var (
	corridorPath = flag.String("corridor", "", "corridor definition file; empty runs the built-in demo corridor")
	runs         = flag.Int("runs", 1, "number of independent runs")
	steps        = flag.Int("steps", pkg.DEFAULT_SIMULATION_STEPS, "time steps per run")
	vehicles     = flag.Int("vehicles", 22, "vehicle count")
	shuffle      = flag.Bool("shuffle", false, "shuffle the origin distribution")
	seed         = flag.Int64("seed", 0, "shuffle seed")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	corridor, err := loadCorridor()
	if err != nil {
		log.Fatal("load corridor", zap.Error(err))
	}

	types := []scenario.VehicleType{
		{Name: "ovm", Count: *vehicles, AccelController: "ovm", LaneChangeController: "static"},
	}
	sc, err := scenario.New("corridor-demo", corridor, types,
		scenario.DefaultNetParams(), scenario.DefaultCfgParams(),
		scenario.InitialConfig{Shuffle: *shuffle, Seed: *seed})
	if err != nil {
		log.Fatal("build scenario", zap.Error(err))
	}

	newEnv := func() (*simulation.Environment, error) {
		backend := simulation.NewLoopbackBackend(scenario.DefaultSimParams())
		return simulation.NewEnvironment(sc, backend, scenario.DefaultEnvParams(), log), nil
	}
	exp := simulation.NewExperiment(newEnv, log)

	results, err := exp.Run(context.Background(), *runs, *steps)
	if err != nil {
		log.Fatal("experiment failed", zap.Error(err))
	}
	for _, res := range results {
		log.Info("run result",
			zap.Int("run", res.Run),
			zap.Int("steps", res.Steps),
			zap.Int("vehicles", res.Vehicles))
	}
	os.Exit(0)
}

func loadCorridor() (*network.Corridor, error) {
	if *corridorPath != "" {
		return network.LoadCorridor(*corridorPath)
	}
	return demoCorridor()
}

// demoCorridor is a 14 segment one-way street imported from OSM, the corridor the
// default route table is usually demonstrated on.
func demoCorridor() (*network.Corridor, error) {
	base := geo.NewCoordinate(37.7875, -122.4008)
	segments := make([]network.Segment, 0, 14)
	prev := base
	for i := 0; i < 14; i++ {
		next := geo.NewCoordinate(prev.Lat+0.0008, prev.Lon+0.0004)
		segments = append(segments, network.Segment{
			ID:         segmentID(i),
			From:       prev,
			To:         next,
			Lanes:      pkg.DEFAULT_LANES,
			SpeedLimit: pkg.DEFAULT_SPEED_LIMIT_MPS,
		})
		prev = next
	}
	return network.NewCorridor(segments)
}

func segmentID(i int) string {
	ids := []string{
		"route_0", "route_1", "route_2", "route_3", "route_4", "route_5", "route_6",
		"route_7", "route_8", "route_9", "route_10", "route_11", "route_12", "route_13",
	}
	return ids[i]
}
