package boosting

import (
	"math"

	"github.com/YuminosukeSato/boostviz/dataset"
	"github.com/YuminosukeSato/boostviz/pkg/errors"
)

// Params holds the hyperparameters of a boosting run.
type Params struct {
	// Boosting
	NEstimators  int     `json:"n_estimators"`  // number of boosting rounds, 0 keeps the mean baseline only
	LearningRate float64 `json:"learning_rate"` // shrinkage applied to each tree's output
	MaxDepth     int     `json:"max_depth"`     // split levels per tree

	// Synthetic data
	NSamples int     `json:"n_samples"` // number of generated samples
	Seed     uint64  `json:"seed"`      // seed of the noise source
	Noise    float64 `json:"noise"`     // half-width of the uniform target noise
}

// DefaultParams returns the parameters of the reference demo: 10 trees of
// depth 3 with learning rate 0.1 over 100 noisy samples.
func DefaultParams() Params {
	return Params{
		NEstimators:  10,
		LearningRate: 0.1,
		MaxDepth:     3,
		NSamples:     dataset.DefaultSamples,
		Seed:         42,
		Noise:        dataset.DefaultNoise,
	}
}

// Validate checks every parameter, including those only used to generate
// synthetic data.
func (p Params) Validate() error {
	if err := p.validateBoosting(); err != nil {
		return err
	}
	if p.NSamples <= 0 {
		return errors.NewValidationError("n_samples", "must be positive", p.NSamples)
	}
	if p.Noise < 0 || math.IsNaN(p.Noise) || math.IsInf(p.Noise, 0) {
		return errors.NewValidationError("noise", "must be a finite non-negative number", p.Noise)
	}
	return nil
}

func (p Params) validateBoosting() error {
	if p.NEstimators < 0 {
		return errors.NewValidationError("n_estimators", "must be non-negative", p.NEstimators)
	}
	if p.LearningRate <= 0 || math.IsNaN(p.LearningRate) || math.IsInf(p.LearningRate, 0) {
		return errors.NewValidationError("learning_rate", "must be a finite positive number", p.LearningRate)
	}
	if p.MaxDepth <= 0 {
		return errors.NewValidationError("max_depth", "must be positive", p.MaxDepth)
	}
	return nil
}
