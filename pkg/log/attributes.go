// Package log defines standard attribute keys for boosting runs.
//
// Keys follow a hierarchical naming convention (e.g. "ml.operation",
// "data.samples") so that log lines from the engine, the tree builder and the
// host command can be filtered the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator type, e.g. "Regressor".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "render", "playback"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the run lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples in the dataset.
	SamplesKey = "data.samples"

	// NoiseKey records the half-width of the uniform noise added to targets.
	NoiseKey = "data.noise"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records the training MSE after a round.
	LossKey = "metrics.loss"

	// RMSEKey records the root mean squared error.
	RMSEKey = "metrics.rmse"

	// R2ScoreKey records R² coefficient of determination for regression.
	// Range typically [-∞, 1.0], with 1.0 being perfect prediction.
	R2ScoreKey = "metrics.r2_score"

	// IterationKey records the boosting round.
	IterationKey = "training.iteration"
)

// Tree structure
const (
	// TreeIDKey identifies a tree inside the ensemble.
	TreeIDKey = "tree.id"

	// TreeLeavesKey records the number of leaves of a built tree.
	TreeLeavesKey = "tree.leaves"

	// TreeDepthKey records the depth of a built tree.
	TreeDepthKey = "tree.depth"

	// StepKey records the playback cursor position.
	StepKey = "history.step"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// StacktraceKey contains stack trace information for debugging.
	// Populated by the zerolog backend for errors carrying a stack.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
const (
	// LearningRateKey records the shrinkage applied to each tree.
	LearningRateKey = "hyperparams.learning_rate"

	// NEstimatorsKey records the number of boosting rounds requested.
	NEstimatorsKey = "hyperparams.n_estimators"

	// MaxDepthKey records the maximum tree depth.
	MaxDepthKey = "hyperparams.max_depth"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationRender   = "render"
	OperationPlayback = "playback"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorNumerical         = "NUMERICAL_INSTABILITY"
)
