// Package history provides step-by-step playback over the recorded steps of
// a boosting run.
package history

import (
	"fmt"

	"github.com/YuminosukeSato/boostviz/boosting"
	"github.com/YuminosukeSato/boostviz/pkg/errors"
)

// Cursor walks forward and backward over a run's history. Moves past either
// end are no-ops. A Cursor is not safe for concurrent use.
type Cursor struct {
	steps []boosting.Step
	index int
}

// New returns a cursor positioned at step 0.
func New(steps []boosting.Step) (*Cursor, error) {
	if len(steps) == 0 {
		return nil, errors.NewValueError("history.New", "no steps to play back")
	}
	return &Cursor{steps: steps}, nil
}

// FromResult returns a cursor over res.History.
func FromResult(res *boosting.RunResult) (*Cursor, error) {
	if res == nil {
		return nil, errors.NewValueError("history.FromResult", "nil run result")
	}
	return New(res.History)
}

// Next advances one step and reports whether the cursor moved.
func (c *Cursor) Next() bool {
	if c.index >= len(c.steps)-1 {
		return false
	}
	c.index++
	return true
}

// Previous goes back one step and reports whether the cursor moved.
func (c *Cursor) Previous() bool {
	if c.index <= 0 {
		return false
	}
	c.index--
	return true
}

// Current returns the step at the cursor.
func (c *Cursor) Current() boosting.Step {
	return c.steps[c.index]
}

// Index returns the position of the cursor, 0 being the mean baseline.
func (c *Cursor) Index() int { return c.index }

// Len returns the number of steps.
func (c *Cursor) Len() int { return len(c.steps) }

// AtStart reports whether the cursor is on step 0.
func (c *Cursor) AtStart() bool { return c.index == 0 }

// AtEnd reports whether the cursor is on the last step.
func (c *Cursor) AtEnd() bool { return c.index == len(c.steps)-1 }

// Seek moves the cursor to step i, clamped to the valid range, and returns
// the resulting index.
func (c *Cursor) Seek(i int) int {
	switch {
	case i < 0:
		i = 0
	case i > len(c.steps)-1:
		i = len(c.steps) - 1
	}
	c.index = i
	return i
}

// Reset moves the cursor back to step 0.
func (c *Cursor) Reset() {
	c.index = 0
}

// Label describes the current step for display.
func (c *Cursor) Label() string {
	return StepLabel(c.index)
}

// StepLabel returns "Step 0: Initial Prediction (Mean)" for the baseline and
// "Step k: After Tree k" otherwise.
func StepLabel(i int) string {
	if i == 0 {
		return "Step 0: Initial Prediction (Mean)"
	}
	return fmt.Sprintf("Step %d: After Tree %d", i, i)
}
