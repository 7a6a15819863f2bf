package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/boostviz/boosting"
	"github.com/YuminosukeSato/boostviz/pkg/errors"
	"github.com/YuminosukeSato/boostviz/pkg/log"
)

func runResult(t *testing.T, nEstimators int) *boosting.RunResult {
	t.Helper()
	logger, _ := log.NewTestLogger(log.LevelError)

	p := boosting.DefaultParams()
	p.NEstimators = nEstimators
	res, err := boosting.Run(context.Background(), p, boosting.WithLogger(logger))
	require.NoError(t, err)
	return res
}

func TestCursor_StartsAtBaseline(t *testing.T) {
	res := runResult(t, 3)
	c, err := FromResult(res)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 4, c.Len())
	assert.True(t, c.AtStart())
	assert.False(t, c.AtEnd())
	assert.Nil(t, c.Current().Tree)
	assert.Equal(t, "Step 0: Initial Prediction (Mean)", c.Label())
}

func TestCursor_CurrentIsIdempotent(t *testing.T) {
	c, err := FromResult(runResult(t, 2))
	require.NoError(t, err)
	c.Next()

	first := c.Current()
	second := c.Current()
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Index())
}

func TestCursor_SaturatesAtBounds(t *testing.T) {
	res := runResult(t, 3)
	c, err := New(res.History)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.False(t, c.Previous())
		assert.Equal(t, 0, c.Index())
	}

	for i := 1; i <= 3; i++ {
		assert.True(t, c.Next())
		assert.Equal(t, i, c.Index())
		assert.Same(t, res.Trees[i-1], c.Current().Tree)
	}
	assert.True(t, c.AtEnd())

	for i := 0; i < 3; i++ {
		assert.False(t, c.Next())
		assert.Equal(t, 3, c.Index())
	}
	assert.Equal(t, "Step 3: After Tree 3", c.Label())

	assert.True(t, c.Previous())
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, res.History[2], c.Current())
}

func TestCursor_SingleStep(t *testing.T) {
	c, err := FromResult(runResult(t, 0))
	require.NoError(t, err)

	assert.True(t, c.AtStart())
	assert.True(t, c.AtEnd())
	assert.False(t, c.Next())
	assert.False(t, c.Previous())
}

func TestCursor_SeekAndReset(t *testing.T) {
	c, err := FromResult(runResult(t, 5))
	require.NoError(t, err)

	assert.Equal(t, 3, c.Seek(3))
	assert.Equal(t, "Step 3: After Tree 3", c.Label())
	assert.Equal(t, 5, c.Seek(99))
	assert.True(t, c.AtEnd())
	assert.Equal(t, 0, c.Seek(-4))

	c.Seek(4)
	c.Reset()
	assert.Equal(t, 0, c.Index())
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))

	_, err = FromResult(nil)
	assert.True(t, errors.As(err, &valueErr))
}
