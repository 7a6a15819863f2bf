package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/boostviz/pkg/errors"
)

func TestSine_Grid(t *testing.T) {
	ds, err := Sine(DefaultSamples, 0, 1)
	require.NoError(t, err)
	require.Equal(t, 100, ds.Len())

	assert.Equal(t, -5.0, ds.X[0])
	assert.InDelta(t, 4.9, ds.X[99], 1e-12)
	for i, x := range ds.X {
		assert.Equal(t, SineTarget(x), ds.Y[i])
	}
}

func TestSine_NoiseWithinBounds(t *testing.T) {
	ds, err := Sine(500, 0.5, 7)
	require.NoError(t, err)

	differs := false
	for i, x := range ds.X {
		diff := ds.Y[i] - SineTarget(x)
		assert.LessOrEqual(t, math.Abs(diff), 0.5)
		if diff != 0 {
			differs = true
		}
	}
	assert.True(t, differs, "noise should perturb at least one target")
}

func TestSine_Seeded(t *testing.T) {
	a, err := Sine(100, 1, 42)
	require.NoError(t, err)
	b, err := Sine(100, 1, 42)
	require.NoError(t, err)
	c, err := Sine(100, 1, 43)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Y, c.Y)
	assert.Equal(t, a.X, c.X)
}

func TestSine_InvalidArguments(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		noise float64
		param string
	}{
		{"zero samples", 0, 1, "n_samples"},
		{"negative noise", 10, -1, "noise"},
		{"nan noise", 10, math.NaN(), "noise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sine(tt.n, tt.noise, 0)
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}
}

func TestNew(t *testing.T) {
	X := []float64{1, 2, 3}
	y := []float64{4, 5, 6}

	ds, err := New(X, y)
	require.NoError(t, err)
	X[0] = 100
	assert.Equal(t, 1.0, ds.X[0], "dataset must own its slices")

	_, err = New(nil, nil)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))

	_, err = New([]float64{1, 2}, []float64{1})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = New([]float64{1, math.Inf(1)}, []float64{1, 2})
	assert.True(t, errors.As(err, &valueErr))
}
