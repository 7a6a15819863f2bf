package model

import "context"

// Fitter は1次元データで学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y []float64) error
}

// ContextFitter はキャンセル可能な学習をサポートするモデルのインターフェース
type ContextFitter interface {
	FitContext(ctx context.Context, X, y []float64) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X []float64) ([]float64, error)
}

// Scorer はスコアを計算できるモデルのインターフェース
type Scorer interface {
	// Score は予測の決定係数 R² を返す
	Score(X, y []float64) (float64, error)
}

// Regressor は回帰モデルのインターフェースを組み合わせたもの
type Regressor interface {
	Fitter
	ContextFitter
	Predictor
	Scorer

	// IsFitted はモデルが学習済みかどうかを返す
	IsFitted() bool
}
