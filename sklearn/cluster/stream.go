package cluster

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scigo-cluster/core/model"
)

var _ model.StreamPredictor = (*KMeans)(nil)

// PredictStream は入力ストリームに対してリアルタイム予測
// DimensionMismatchErrorなどのエラーはそのバッチの結果として送られ、ストリームは継続する
func (km *KMeans) PredictStream(ctx context.Context, inputChan <-chan mat.Matrix) <-chan model.PredictResult {
	outputChan := make(chan model.PredictResult)

	go func() {
		defer close(outputChan)

		for {
			select {
			case <-ctx.Done():
				return
			case X, ok := <-inputChan:
				if !ok {
					return
				}

				labels, err := km.Predict(X)

				select {
				case outputChan <- model.PredictResult{Labels: labels, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return outputChan
}
