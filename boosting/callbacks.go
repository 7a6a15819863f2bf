package boosting

import (
	"math"
	"time"

	"github.com/YuminosukeSato/boostviz/pkg/log"
	"github.com/YuminosukeSato/boostviz/tree"
)

// CallbackEnv contains the environment for callbacks
type CallbackEnv struct {
	Params Params
	Round  int        // zero-based round that just finished
	Tree   *tree.Tree // tree fitted in this round
	MSE    float64    // training MSE after this round

	// Predictions are the running predictions after this round. They are
	// shared with the recorded history and must not be modified.
	Predictions []float64

	// StopTraining ends the run after the current round when set.
	StopTraining bool
}

// Callback is a function that can be called during training
type Callback func(env *CallbackEnv) error

// LogEvaluation logs the training MSE every period rounds
func LogEvaluation(logger log.Logger, period int) Callback {
	if period <= 0 {
		period = 1
	}
	return func(env *CallbackEnv) error {
		if (env.Round+1)%period == 0 {
			logger.Info("Boosting evaluation",
				log.IterationKey, env.Round,
				log.LossKey, env.MSE,
				log.RMSEKey, math.Sqrt(env.MSE),
			)
		}
		return nil
	}
}

// RecordEvaluation records the training MSE of every round
func RecordEvaluation(history *[]float64) Callback {
	return func(env *CallbackEnv) error {
		*history = append(*history, env.MSE)
		return nil
	}
}

// EarlyStopping stops training when the MSE has not improved for rounds
// consecutive rounds.
func EarlyStopping(rounds int) Callback {
	bestScore := math.Inf(1)
	roundsNoImprove := 0

	return func(env *CallbackEnv) error {
		if env.MSE < bestScore {
			bestScore = env.MSE
			roundsNoImprove = 0
			return nil
		}
		roundsNoImprove++
		if roundsNoImprove >= rounds {
			env.StopTraining = true
		}
		return nil
	}
}

// TimeLimit stops training after a specified duration
func TimeLimit(maxDuration time.Duration) Callback {
	startTime := time.Now()
	return func(env *CallbackEnv) error {
		if time.Since(startTime) > maxDuration {
			env.StopTraining = true
		}
		return nil
	}
}
