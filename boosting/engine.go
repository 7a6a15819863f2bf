package boosting

import (
	"context"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/boostviz/dataset"
	"github.com/YuminosukeSato/boostviz/metrics"
	"github.com/YuminosukeSato/boostviz/pkg/errors"
	"github.com/YuminosukeSato/boostviz/pkg/log"
	"github.com/YuminosukeSato/boostviz/stats"
	"github.com/YuminosukeSato/boostviz/tree"
)

// boundsPadding is the fraction of the value range added on each side of the
// display bounds.
const boundsPadding = 0.1

// Step is one recorded snapshot of a run.
type Step struct {
	Predictions []float64  // running predictions, one per sample
	Tree        *tree.Tree // tree added in this step, nil for step 0
	MSE         float64    // training MSE of Predictions
}

// Bounds is a padded value range that keeps chart axes fixed across steps.
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the bounds.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// RunResult is the complete output of one boosting run.
type RunResult struct {
	Params Params

	X []float64
	Y []float64

	// InitialPrediction is the mean of Y, the prediction of step 0.
	InitialPrediction float64

	Trees            []*tree.Tree // len(History)-1 trees, IDs 0..len-1
	History          []Step
	FinalPredictions []float64
	Metrics          metrics.Report
	Bounds           Bounds
}

// Rounds returns the number of trees that were fitted.
func (r *RunResult) Rounds() int {
	return len(r.Trees)
}

// Run generates the synthetic sine dataset described by params and boosts it.
func Run(ctx context.Context, params Params, opts ...Option) (*RunResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ds, err := dataset.Sine(params.NSamples, params.Noise, params.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "boosting: generate dataset")
	}
	return RunOn(ctx, ds, params, opts...)
}

// RunOn boosts a caller-supplied dataset. NSamples, Seed and Noise of params
// are ignored.
//
// The context is checked before every round; a canceled run returns the
// context error and no result.
func RunOn(ctx context.Context, ds dataset.Dataset, params Params, opts ...Option) (res *RunResult, err error) {
	defer errors.Recover(&err, "boosting.RunOn")

	if err := params.validateBoosting(); err != nil {
		return nil, err
	}
	n := ds.Len()
	if n == 0 {
		return nil, errors.NewValueError("boosting.RunOn", "empty sample set")
	}
	if len(ds.Y) != n {
		return nil, errors.NewDimensionError("boosting.RunOn", n, len(ds.Y), 0)
	}

	cfg := newConfig(opts)
	logger := cfg.logger.With(
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
	)
	logger.Info("Starting boosting run",
		log.SamplesKey, n,
		log.NEstimatorsKey, params.NEstimators,
		log.LearningRateKey, params.LearningRate,
		log.MaxDepthKey, params.MaxDepth,
	)
	start := time.Now()

	X := append([]float64(nil), ds.X...)
	y := append([]float64(nil), ds.Y...)

	initial := stats.Mean(y)
	predictions := stats.Fill(initial, n)
	mse, err := stats.MSE(y, predictions)
	if err != nil {
		return nil, err
	}
	if err := errors.CheckScalar("initial_mse", mse, 0); err != nil {
		return nil, err
	}

	history := make([]Step, 0, params.NEstimators+1)
	history = append(history, Step{Predictions: clone(predictions), MSE: mse})
	trees := make([]*tree.Tree, 0, params.NEstimators)

	residuals := make([]float64, n)
	env := &CallbackEnv{Params: params}

	for m := 0; m < params.NEstimators; m++ {
		if err := ctx.Err(); err != nil {
			logger.Warn("Boosting run canceled", log.IterationKey, m, "error", err)
			return nil, errors.Wrapf(err, "boosting: canceled before round %d", m)
		}

		floats.SubTo(residuals, y, predictions)

		t, treePred, err := tree.Build(X, residuals, params.MaxDepth, m)
		if err != nil {
			return nil, errors.Wrapf(err, "boosting: round %d", m)
		}
		floats.AddScaled(predictions, params.LearningRate, treePred)
		if err := errors.CheckNumericalStability("round_predictions", predictions, m); err != nil {
			logger.Error("Numerical instability", log.IterationKey, m, "error", err)
			return nil, err
		}

		mse, err = stats.MSE(y, predictions)
		if err != nil {
			return nil, err
		}
		if err := errors.CheckScalar("round_mse", mse, m); err != nil {
			logger.Error("Numerical instability", log.IterationKey, m, "error", err)
			return nil, err
		}

		step := Step{Predictions: clone(predictions), Tree: t, MSE: mse}
		trees = append(trees, t)
		history = append(history, step)

		logger.Debug("Boosting round finished",
			log.IterationKey, m,
			log.LossKey, mse,
			log.TreeIDKey, t.ID,
			log.TreeLeavesKey, len(t.Leaves()),
			log.TreeDepthKey, t.Depth(),
		)

		if len(cfg.callbacks) == 0 {
			continue
		}
		env.Round, env.Tree, env.MSE, env.Predictions = m, t, mse, step.Predictions
		for _, cb := range cfg.callbacks {
			if err := cb(env); err != nil {
				return nil, errors.Wrapf(err, "boosting: callback at round %d", m)
			}
		}
		if env.StopTraining {
			logger.Info("Training stopped by callback", log.IterationKey, m)
			break
		}
	}

	final := clone(predictions)
	report, err := metrics.Evaluate(y, final)
	if err != nil {
		return nil, err
	}

	res = &RunResult{
		Params:            params,
		X:                 X,
		Y:                 y,
		InitialPrediction: initial,
		Trees:             trees,
		History:           history,
		FinalPredictions:  final,
		Metrics:           report,
		Bounds:            displayBounds(y, history),
	}

	logger.Info("Boosting run completed",
		"trees", len(trees),
		log.LossKey, report.MSE,
		log.RMSEKey, report.RMSE,
		log.R2ScoreKey, report.R2,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

// displayBounds returns the min and max over y and every prediction of every
// step, padded by boundsPadding of the range on each side.
func displayBounds(y []float64, history []Step) Bounds {
	series := make([][]float64, 0, len(history)+1)
	series = append(series, y)
	for _, step := range history {
		series = append(series, step.Predictions)
	}
	lo, hi := stats.MinMax(series...)
	pad := (hi - lo) * boundsPadding
	return Bounds{Min: lo - pad, Max: hi + pad}
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
