package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scigo-cluster/pkg/errors"
)

func TestStandardScaler_FitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 100,
		2, 100,
		3, 100,
		4, 100,
	})

	scaler := NewStandardScalerDefault()
	out, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 100}, scaler.Mean, 1e-12)
	// 定数列のスケールは1
	assert.InDelta(t, 1.0, scaler.Scale[1], 1e-12)

	col0 := mat.Col(nil, 0, out)
	assert.InDelta(t, 0.0, col0[0]+col0[1]+col0[2]+col0[3], 1e-12)
	for _, v := range mat.Col(nil, 1, out) {
		assert.Equal(t, 0.0, v)
	}
}

func TestStandardScaler_InverseTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, 10,
		5, 20,
		10, 60,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	back, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-9))
}

func TestStandardScaler_WithoutMeanOrStd(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{2, 4})

	scaler := NewStandardScaler(false, false)
	out, err := scaler.FitTransform(X)
	require.NoError(t, err)
	assert.True(t, mat.Equal(X, out))
	assert.Equal(t, map[string]interface{}{"with_mean": false, "with_std": false}, scaler.GetParams())
}

func TestStandardScaler_Errors(t *testing.T) {
	scaler := NewStandardScalerDefault()

	_, err := scaler.Transform(mat.NewDense(1, 2, nil))
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(err, &nfErr))
	assert.Contains(t, scaler.String(), "StandardScaler(")

	assert.True(t, errors.Is(scaler.Fit(&mat.Dense{}), errors.ErrEmptyData))

	require.NoError(t, scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	assert.True(t, scaler.IsFitted())
	assert.Contains(t, scaler.String(), "n_features=2")

	_, err = scaler.Transform(mat.NewDense(1, 3, nil))
	var dimErr *errors.DimensionMismatchError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 3, dimErr.Got)
}
