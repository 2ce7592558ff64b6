package model

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Fitter はラベルを返すクラスタリング学習のインターフェース
type Fitter interface {
	// Fit はデータからクラスタ中心を学習し、各行のラベルを返す
	Fit(X mat.Matrix) ([]int, error)
}

// Predictor は学習済みクラスタへの割り当てを行うインターフェース
type Predictor interface {
	// Predict は各行に最も近いクラスタ中心のインデックスを返す
	Predict(X mat.Matrix) ([]int, error)
}

// ClusterModel は学習済みクラスタリングモデルの能力をまとめたインターフェース
// 初期ラベル生成方法だけが異なるモデル（ランダム、k-means++など）はこのインターフェースで差し替えられる
type ClusterModel interface {
	Fitter
	Predictor

	// Dim は学習時の特徴量数を返す（未学習なら0）
	Dim() int

	// ClusterCenters はクラスタ中心のコピーを返す
	ClusterCenters() [][]float64
}

// LabelInitializer はLloyd反復の開始ラベルを生成する
// 戻り値の長さはXの行数と等しく、各値は[0, nClusters)に収まること
type LabelInitializer interface {
	InitLabels(X mat.Matrix, nClusters int, rng *rand.Rand) []int

	// Name はGetParamsで報告される名前
	Name() string
}
