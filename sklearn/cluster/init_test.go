package cluster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scigo-cluster/metrics"
)

func TestRandomLabels(t *testing.T) {
	X, _ := fourBlobs(t, 100)
	rng := rand.New(rand.NewSource(1))

	labels := RandomLabels{}.InitLabels(X, 3, rng)
	require.Len(t, labels, 100)

	seen := make(map[int]bool)
	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 3)
		seen[l] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, "random", RandomLabels{}.Name())
}

func TestPlusPlusLabels(t *testing.T) {
	X, y := fourBlobs(t, 200)
	rng := rand.New(rand.NewSource(42))

	labels := PlusPlusLabels{}.InitLabels(X, 4, rng)
	require.Len(t, labels, 200)
	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 4)
	}

	// 十分に離れたブロブでは各種が別のブロブから選ばれる
	ari, err := metrics.AdjustedRandIndex(y, labels)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ari, 1e-9)
	assert.Equal(t, "k-means++", PlusPlusLabels{}.Name())
}

func TestPlusPlusLabels_DuplicateRows(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{5, 5, 5})

	labels := PlusPlusLabels{}.InitLabels(X, 2, rand.New(rand.NewSource(1)))
	// 全ての種が同じ点なので、同距離の規則で全てラベル0になる
	assert.Equal(t, []int{0, 0, 0}, labels)
}
