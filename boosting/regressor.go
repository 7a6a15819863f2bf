package boosting

import (
	"context"

	"github.com/YuminosukeSato/boostviz/core/model"
	"github.com/YuminosukeSato/boostviz/dataset"
	"github.com/YuminosukeSato/boostviz/metrics"
	"github.com/YuminosukeSato/boostviz/pkg/errors"
	"github.com/YuminosukeSato/boostviz/pkg/log"
)

// Regressor は任意の1次元データに対するブースティング回帰モデル
type Regressor struct {
	model.BaseEstimator // BaseEstimatorを埋め込み

	params  Params
	runOpts []Option
	logger  log.Logger

	result *RunResult // 直近の学習結果
}

// RegressorOption は Regressor を設定する関数
type RegressorOption func(*Regressor)

// WithParams はハイパーパラメータを設定する
func WithParams(params Params) RegressorOption {
	return func(r *Regressor) {
		r.params = params
	}
}

// WithRunOptions は学習時に Run へ渡すオプションを追加する
func WithRunOptions(opts ...Option) RegressorOption {
	return func(r *Regressor) {
		r.runOpts = append(r.runOpts, opts...)
	}
}

// NewRegressor は新しい Regressor を作成する。
// パラメータを指定しない場合は DefaultParams を使用する。
func NewRegressor(opts ...RegressorOption) *Regressor {
	r := &Regressor{
		params: DefaultParams(),
		logger: log.GetLoggerWithName("boosting.regressor"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Params は設定済みのハイパーパラメータを返す
func (r *Regressor) Params() Params {
	return r.params
}

// Fit はモデルを訓練データで学習させる
func (r *Regressor) Fit(X, y []float64) error {
	return r.FitContext(context.Background(), X, y)
}

// FitContext は ctx でキャンセル可能な Fit
func (r *Regressor) FitContext(ctx context.Context, X, y []float64) error {
	ds, err := dataset.New(X, y)
	if err != nil {
		return errors.Wrap(err, "Regressor.Fit")
	}

	res, err := RunOn(ctx, ds, r.params, r.runOpts...)
	if err != nil {
		return errors.NewModelError("Regressor.Fit", "boosting failed", err)
	}

	r.result = res
	// モデルを学習済み状態に設定
	r.SetFitted()

	r.logger.Debug("Regressor fitted",
		log.ModelNameKey, "Regressor",
		log.SamplesKey, ds.Len(),
		"trees", res.Rounds(),
	)
	return nil
}

// Predict は入力データに対する予測を行う。
// 予測値 = 初期値（yの平均） + 学習率 * Σ tree.Predict(x)
func (r *Regressor) Predict(xs []float64) ([]float64, error) {
	if err := r.CheckFitted("Regressor", "Predict"); err != nil {
		return nil, err
	}

	lr := r.result.Params.LearningRate
	out := make([]float64, len(xs))
	for i, x := range xs {
		p := r.result.InitialPrediction
		for _, t := range r.result.Trees {
			p += lr * t.Predict(x)
		}
		out[i] = p
	}
	return out, nil
}

// Score は決定係数（R²）を返す
func (r *Regressor) Score(X, y []float64) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	report, err := metrics.Evaluate(y, pred)
	if err != nil {
		return 0, err
	}
	return report.R2, nil
}

// Result は直近の学習結果を返す。未学習の場合は nil
func (r *Regressor) Result() *RunResult {
	return r.result
}

var _ model.Regressor = (*Regressor)(nil)
