package simulation

import (
	"context"
	"testing"

	"github.com/satria-nugraha/corridorsim/pkg/scenario"
	"github.com/stretchr/testify/require"
)

func TestExperimentRun(t *testing.T) {
	log := testLogger(t)
	sc := testScenario(t)

	newEnv := func() (*Environment, error) {
		return NewEnvironment(sc, NewLoopbackBackend(scenario.DefaultSimParams()), scenario.DefaultEnvParams(), log), nil
	}
	exp := NewExperiment(newEnv, log)

	results, err := exp.Run(context.Background(), 3, 5)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for run, res := range results {
		require.Equal(t, run, res.Run)
		require.Equal(t, 5, res.Steps)
		require.Equal(t, 4, res.Vehicles)
		require.NoError(t, res.Err)
	}
}

func TestExperimentRunRejectsBadCounts(t *testing.T) {
	log := testLogger(t)
	exp := NewExperiment(func() (*Environment, error) {
		return NewEnvironment(testScenario(t), NewLoopbackBackend(scenario.DefaultSimParams()), scenario.DefaultEnvParams(), log), nil
	}, log)

	_, err := exp.Run(context.Background(), 0, 10)
	require.Error(t, err)
	_, err = exp.Run(context.Background(), 1, 0)
	require.Error(t, err)
}

func TestExperimentRunCanceled(t *testing.T) {
	log := testLogger(t)
	sc := testScenario(t)
	exp := NewExperiment(func() (*Environment, error) {
		return NewEnvironment(sc, NewLoopbackBackend(scenario.DefaultSimParams()), scenario.DefaultEnvParams(), log), nil
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := exp.Run(ctx, 1, 100)
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, results[0].Steps, 100)
}
