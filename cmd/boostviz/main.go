// Command boostviz trains a step-by-step gradient-boosting ensemble on a noisy
// sine curve and renders every step of the run.
//
// Usage:
//
//	boostviz -n-estimators 10 -learning-rate 0.1 -max-depth 3 -out out/
//	boostviz -config params.json -interactive
//
// Charts are written as PNG and the first trees as Graphviz diagrams.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/boostviz/boosting"
	"github.com/YuminosukeSato/boostviz/history"
	"github.com/YuminosukeSato/boostviz/pkg/errors"
	"github.com/YuminosukeSato/boostviz/pkg/log"
	"github.com/YuminosukeSato/boostviz/render"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.GetLogger().Error("boostviz failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if err := log.SetupLogger(stderr, opts.logLevel, opts.logConsole); err != nil {
		return err
	}
	logger := log.GetLoggerWithName("cmd")

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", opts.outDir)
	}

	res, err := boosting.Run(ctx, opts.params,
		boosting.WithCallbacks(boosting.LogEvaluation(logger, 1)),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Trees: %d  MSE: %.4f  RMSE: %.4f  R²: %.4f\n",
		res.Rounds(), res.Metrics.MSE, res.Metrics.RMSE, res.Metrics.R2)

	var paths []string
	err = errors.SafeExecute("render", func() error {
		if err := renderCharts(res, opts.outDir); err != nil {
			return err
		}
		written, err := render.RenderTrees(res, opts.outDir, format, opts.treeLimit)
		paths = written
		return err
	})
	if err != nil {
		return err
	}
	logger.Info("Output written",
		"dir", opts.outDir,
		"tree_diagrams", len(paths),
	)

	if !opts.interactive {
		return nil
	}
	return playback(res, opts.outDir, stdin, stdout)
}

func renderCharts(res *boosting.RunResult, dir string) error {
	overview, err := render.OverviewPlot(res)
	if err != nil {
		return err
	}
	if err := render.SavePlot(overview, filepath.Join(dir, "overview.png")); err != nil {
		return err
	}

	curve, err := render.LearningCurvePlot(res)
	if err != nil {
		return err
	}
	if err := render.SavePlot(curve, filepath.Join(dir, "learning_curve.png")); err != nil {
		return err
	}

	residuals, err := render.ResidualPlot(res)
	if err != nil {
		return err
	}
	if err := render.SavePlot(residuals, filepath.Join(dir, "residuals.png")); err != nil {
		return err
	}
	return saveStep(res, 0, dir)
}

// playback reads commands from in and re-renders the current step after every
// move. It returns when in is exhausted or on "q".
func playback(res *boosting.RunResult, dir string, in io.Reader, out io.Writer) error {
	cursor, err := history.FromResult(res)
	if err != nil {
		return err
	}
	logger := log.GetLoggerWithName("playback").With(log.OperationKey, log.OperationPlayback)

	printStep(out, cursor)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		var moved bool
		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "n", "next":
			moved = cursor.Next()
		case "p", "prev", "previous":
			moved = cursor.Previous()
		case "q", "quit":
			return nil
		default:
			fmt.Fprintln(out, "commands: n (next), p (previous), q (quit)")
			continue
		}

		if moved {
			if err := saveStep(res, cursor.Index(), dir); err != nil {
				return err
			}
		}
		logger.Debug("Cursor moved", log.StepKey, cursor.Index(), "moved", moved)
		printStep(out, cursor)
	}
	return scanner.Err()
}

func printStep(out io.Writer, c *history.Cursor) {
	step := c.Current()
	fmt.Fprintf(out, "%s  (MSE: %.4f)\n", c.Label(), step.MSE)
}

func saveStep(res *boosting.RunResult, step int, dir string) error {
	p, err := render.PredictionsPlot(res, step)
	if err != nil {
		return err
	}
	return render.SavePlot(p, filepath.Join(dir, "step.png"))
}
