package simulation

import (
	"context"

	"github.com/satria-nugraha/corridorsim/pkg/concurrent"
	"github.com/satria-nugraha/corridorsim/pkg/util"
	"go.uber.org/zap"
)

// EnvironmentFactory builds a fresh environment (with its own backend) for one run.
type EnvironmentFactory func() (*Environment, error)

// RunResult summarizes one completed run.
type RunResult struct {
	Run      int
	Steps    int
	Vehicles int
	Err      error
}

// Experiment executes repeated runs of a scenario, each Reset + steps loop on its own
// environment so runs can execute in parallel.
type Experiment struct {
	newEnv EnvironmentFactory
	log    *zap.Logger
}

func NewExperiment(newEnv EnvironmentFactory, log *zap.Logger) *Experiment {
	return &Experiment{newEnv: newEnv, log: log}
}

// Run executes runs independent runs of steps time steps each. With more than one
// run the runs execute on a worker pool; results come back ordered by run index. The
// first run error is returned after all runs finish.
func (ex *Experiment) Run(ctx context.Context, runs, steps int) ([]RunResult, error) {
	if runs <= 0 || steps <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"experiment: runs and steps must be positive (got %d, %d)", runs, steps)
	}

	results := make([]RunResult, runs)
	if runs == 1 {
		results[0] = ex.runOnce(ctx, 0, steps)
	} else {
		pool := concurrent.NewWorkerPool[int, RunResult](util.Min(runs, 4), runs)
		pool.Start(func(run int) RunResult {
			return ex.runOnce(ctx, run, steps)
		})
		for run := 0; run < runs; run++ {
			pool.AddJob(run)
		}
		pool.Close()
		pool.Wait()
		for res := range pool.CollectResults() {
			results[res.Run] = res
		}
	}

	for _, res := range results {
		if res.Err != nil {
			return results, res.Err
		}
	}
	return results, nil
}

func (ex *Experiment) runOnce(ctx context.Context, run, steps int) RunResult {
	res := RunResult{Run: run}

	env, err := ex.newEnv()
	if err != nil {
		res.Err = err
		return res
	}
	defer env.Terminate(context.WithoutCancel(ctx))

	vehicles, err := env.Reset(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	res.Vehicles = vehicles

	for s := 0; s < steps; s++ {
		if util.StopConcurrentOperation(ctx) {
			res.Err = ctx.Err()
			return res
		}
		if err := env.Step(ctx); err != nil {
			res.Err = err
			return res
		}
		res.Steps++
	}

	ex.log.Info("run finished",
		zap.Int("run", run),
		zap.Int("steps", res.Steps),
		zap.Int("vehicles", res.Vehicles))
	return res
}
