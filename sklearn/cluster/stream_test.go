package cluster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scigo-cluster/pkg/errors"
)

func TestKMeans_PredictStream(t *testing.T) {
	silenceWarnings(t)
	km := NewKMeans(2, 10, WithKMeansRandomState(1))
	_, err := km.Fit(twoGroups())
	require.NoError(t, err)

	want, err := km.Predict(twoGroups())
	require.NoError(t, err)

	in := make(chan mat.Matrix)
	out := km.PredictStream(context.Background(), in)

	go func() {
		defer close(in)
		in <- twoGroups()
		in <- mat.NewDense(1, 3, nil)
		in <- twoGroups()
	}()

	var results []error
	var labels [][]int
	for r := range out {
		results = append(results, r.Err)
		labels = append(labels, r.Labels)
	}

	require.Len(t, results, 3)
	assert.NoError(t, results[0])
	assert.Equal(t, want, labels[0])

	var dimErr *errors.DimensionMismatchError
	assert.True(t, errors.As(results[1], &dimErr))
	assert.Nil(t, labels[1])

	assert.NoError(t, results[2])
	assert.Equal(t, want, labels[2])
}

func TestKMeans_PredictStreamCancel(t *testing.T) {
	km := NewKMeans(1, 10)
	_, err := km.Fit(twoGroups())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan mat.Matrix)
	out := km.PredictStream(ctx, in)
	cancel()

	// 出力チャネルはキャンセル後に閉じられる
	for range out {
	}
}
