// Package dataset generates and validates the 1-D sample sets the boosting
// engine trains on.
package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/boostviz/pkg/errors"
)

const (
	// DefaultSamples is the size of the synthetic sample set.
	DefaultSamples = 100
	// DefaultNoise is the half-width of the uniform target noise.
	DefaultNoise = 1.0

	xMin  = -5.0
	xSpan = 10.0
)

// Dataset is a pair of parallel feature and target slices of equal length.
type Dataset struct {
	X []float64
	Y []float64
}

// New validates X and y and returns a Dataset holding copies of them.
func New(X, y []float64) (Dataset, error) {
	if len(X) == 0 {
		return Dataset{}, errors.NewValueError("dataset.New", "empty sample set")
	}
	if len(X) != len(y) {
		return Dataset{}, errors.NewDimensionError("dataset.New", len(X), len(y), 0)
	}
	for i := range X {
		if math.IsNaN(X[i]) || math.IsInf(X[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return Dataset{}, errors.NewValueError("dataset.New", "samples must be finite")
		}
	}
	return Dataset{X: clone(X), Y: clone(y)}, nil
}

// Len returns the number of samples.
func (d Dataset) Len() int {
	return len(d.X)
}

// SineTarget is the noise-free target function sin(x)*x.
func SineTarget(x float64) float64 {
	return math.Sin(x) * x
}

// Sine generates n evenly spaced samples X[i] = (i/n)*10 - 5 with targets
// sin(x)*x plus noise drawn uniformly from [-noise, noise]. The noise source
// is seeded, so equal arguments always produce equal datasets.
func Sine(n int, noise float64, seed uint64) (Dataset, error) {
	if n <= 0 {
		return Dataset{}, errors.NewValidationError("n_samples", "must be positive", n)
	}
	if noise < 0 || math.IsNaN(noise) || math.IsInf(noise, 0) {
		return Dataset{}, errors.NewValidationError("noise", "must be a finite non-negative number", noise)
	}

	var dist *distuv.Uniform
	if noise > 0 {
		dist = &distuv.Uniform{Min: -noise, Max: noise, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
	}

	X := make([]float64, n)
	y := make([]float64, n)
	for i := range X {
		X[i] = float64(i)/float64(n)*xSpan + xMin
		y[i] = SineTarget(X[i])
		if dist != nil {
			y[i] += dist.Rand()
		}
	}
	return Dataset{X: X, Y: y}, nil
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
