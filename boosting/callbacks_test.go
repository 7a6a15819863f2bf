package boosting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/boostviz/pkg/errors"
	"github.com/YuminosukeSato/boostviz/pkg/log"
)

func TestRecordEvaluation(t *testing.T) {
	var recorded []float64
	res, err := Run(context.Background(), params(6, 0.2, 2),
		WithLogger(quietLogger()),
		WithCallbacks(RecordEvaluation(&recorded)),
	)
	require.NoError(t, err)

	require.Len(t, recorded, 6)
	for k, mse := range recorded {
		assert.Equal(t, res.History[k+1].MSE, mse)
	}
}

func TestLogEvaluation(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelInfo)

	_, err := Run(context.Background(), params(5, 0.1, 2),
		WithLogger(quietLogger()),
		WithCallbacks(LogEvaluation(logger, 2)),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, logger.CountMessages("Boosting evaluation"))
	assert.True(t, logger.ContainsField(log.IterationKey, float64(1)))
	assert.True(t, logger.ContainsField(log.IterationKey, float64(3)))
}

func TestStopTraining(t *testing.T) {
	stopAtTwo := func(env *CallbackEnv) error {
		if env.Round == 2 {
			env.StopTraining = true
		}
		return nil
	}

	res, err := Run(context.Background(), params(10, 0.1, 3),
		WithLogger(quietLogger()),
		WithCallbacks(stopAtTwo),
	)
	require.NoError(t, err)

	assert.Len(t, res.Trees, 3)
	assert.Len(t, res.History, 4)
	assert.Equal(t, res.History[3].Predictions, res.FinalPredictions)
}

func TestCallbackError(t *testing.T) {
	sentinel := errors.New("callback failed")
	failing := func(env *CallbackEnv) error {
		if env.Round == 1 {
			return sentinel
		}
		return nil
	}

	res, err := Run(context.Background(), params(5, 0.1, 3),
		WithLogger(quietLogger()),
		WithCallbacks(failing),
	)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, sentinel))
	assert.Contains(t, err.Error(), "round 1")
}

func TestCallbackEnv(t *testing.T) {
	var seen []*CallbackEnv
	capture := func(env *CallbackEnv) error {
		snapshot := *env
		seen = append(seen, &snapshot)
		return nil
	}

	p := params(3, 0.1, 2)
	res, err := Run(context.Background(), p, WithLogger(quietLogger()), WithCallbacks(capture))
	require.NoError(t, err)

	require.Len(t, seen, 3)
	for k, env := range seen {
		assert.Equal(t, k, env.Round)
		assert.Same(t, res.Trees[k], env.Tree)
		assert.Equal(t, res.History[k+1].Predictions, env.Predictions)
		assert.Equal(t, p, env.Params)
	}
}

func TestEarlyStopping(t *testing.T) {
	cb := EarlyStopping(2)
	env := &CallbackEnv{}

	for _, mse := range []float64{5, 4, 4.5} {
		env.MSE = mse
		require.NoError(t, cb(env))
		assert.False(t, env.StopTraining)
	}

	env.MSE = 4.2
	require.NoError(t, cb(env))
	assert.True(t, env.StopTraining)
}

func TestTimeLimit(t *testing.T) {
	env := &CallbackEnv{}

	require.NoError(t, TimeLimit(time.Hour)(env))
	assert.False(t, env.StopTraining)

	expired := TimeLimit(time.Nanosecond)
	time.Sleep(time.Millisecond)
	require.NoError(t, expired(env))
	assert.True(t, env.StopTraining)
}
