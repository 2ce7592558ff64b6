package model

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// PredictResult はストリーム予測の1バッチ分の結果
// Errが非nilの場合Labelsはnil
type PredictResult struct {
	Labels []int
	Err    error
}

// StreamPredictor はチャネルベースのストリーム予測インターフェース
type StreamPredictor interface {
	// PredictStream は入力ストリームの各バッチを予測し、入力と同じ順序で結果を送る
	// 入力チャネルが閉じられるかcontextがキャンセルされると出力チャネルは閉じられる
	PredictStream(ctx context.Context, inputChan <-chan mat.Matrix) <-chan PredictResult
}
