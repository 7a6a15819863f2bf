package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/YuminosukeSato/boostviz/boosting"
	"github.com/YuminosukeSato/boostviz/pkg/errors"
	"github.com/YuminosukeSato/boostviz/render"
)

// options holds everything the command reads from flags and the config file.
type options struct {
	params      boosting.Params
	configPath  string
	outDir      string
	format      string
	treeLimit   int
	logLevel    string
	logConsole  bool
	interactive bool
}

func parseFlags(args []string) (*options, error) {
	defaults := boosting.DefaultParams()
	opts := &options{}

	fs := flag.NewFlagSet("boostviz", flag.ContinueOnError)
	nEstimators := fs.Int("n-estimators", defaults.NEstimators, "number of boosting rounds")
	learningRate := fs.Float64("learning-rate", defaults.LearningRate, "shrinkage applied to each tree")
	maxDepth := fs.Int("max-depth", defaults.MaxDepth, "maximum depth of each tree")
	nSamples := fs.Int("n-samples", defaults.NSamples, "number of synthetic samples")
	seed := fs.Uint64("seed", defaults.Seed, "seed of the target noise")
	noise := fs.Float64("noise", defaults.Noise, "half-width of the uniform target noise")
	fs.StringVar(&opts.configPath, "config", "", "JSON file with hyperparameters; flags override it")
	fs.StringVar(&opts.outDir, "out", "out", "directory for charts and tree diagrams")
	fs.StringVar(&opts.format, "format", "svg", "tree diagram format: dot|svg|png")
	fs.IntVar(&opts.treeLimit, "trees", render.DefaultTreeLimit, "number of tree diagrams to render; 0 renders none")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	fs.BoolVar(&opts.logConsole, "log-console", true, "human-readable log output")
	fs.BoolVar(&opts.interactive, "interactive", false, "step through the history from stdin (n=next, p=previous, q=quit)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	params := defaults
	if opts.configPath != "" {
		loaded, err := loadParams(opts.configPath, params)
		if err != nil {
			return nil, err
		}
		params = loaded
	}

	// explicitly set flags win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n-estimators":
			params.NEstimators = *nEstimators
		case "learning-rate":
			params.LearningRate = *learningRate
		case "max-depth":
			params.MaxDepth = *maxDepth
		case "n-samples":
			params.NSamples = *nSamples
		case "seed":
			params.Seed = *seed
		case "noise":
			params.Noise = *noise
		}
	})

	if opts.treeLimit < 0 {
		return nil, errors.NewValidationError("trees", "must be non-negative", opts.treeLimit)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	opts.params = params
	return opts, nil
}

// loadParams decodes a JSON file over base. Keys missing from the file keep
// their value from base.
func loadParams(path string, base boosting.Params) (boosting.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "read config %s", path)
	}
	params := base
	if err := json.Unmarshal(data, &params); err != nil {
		return base, errors.Wrapf(err, "decode config %s", path)
	}
	return params, nil
}
