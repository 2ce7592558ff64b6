package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scigo-cluster/core/model"
)

var (
	_ model.LabelInitializer = RandomLabels{}
	_ model.LabelInitializer = PlusPlusLabels{}
)

// RandomLabels は各行のラベルを[0, nClusters)から独立に一様に選ぶ
type RandomLabels struct{}

// InitLabels はランダムな初期ラベルを返す
func (RandomLabels) InitLabels(X mat.Matrix, nClusters int, rng *rand.Rand) []int {
	rows, _ := X.Dims()
	labels := make([]int, rows)
	for i := range labels {
		labels[i] = rng.Intn(nClusters)
	}
	return labels
}

// Name implements model.LabelInitializer.
func (RandomLabels) Name() string { return "random" }

// PlusPlusLabels はk-means++でnClusters個の種を選び、各行を最も近い種のラベルで初期化する
// 反復エンジンは変えずに、初期ラベルだけを改善する
type PlusPlusLabels struct{}

// InitLabels はk-means++に基づく初期ラベルを返す
func (PlusPlusLabels) InitLabels(X mat.Matrix, nClusters int, rng *rand.Rand) []int {
	rows, cols := X.Dims()
	if rows == 0 {
		return []int{}
	}

	seeds := make([][]float64, 0, nClusters)
	seeds = append(seeds, mat.Row(nil, rng.Intn(rows), X))

	// 各サンプルから最近傍の種までの距離の二乗
	minSq := make([]float64, rows)
	for i := range minSq {
		minSq[i] = math.Inf(1)
	}
	row := make([]float64, cols)

	for len(seeds) < nClusters {
		last := seeds[len(seeds)-1]
		total := 0.0
		for i := 0; i < rows; i++ {
			mat.Row(row, i, X)
			d := floats.Distance(row, last, 2)
			if sq := d * d; sq < minSq[i] {
				minSq[i] = sq
			}
			total += minSq[i]
		}

		// 全ての点が既存の種と重なる場合は一様に選ぶ
		selected := rng.Intn(rows)
		if total > 0 {
			target := rng.Float64() * total
			cumSum := 0.0
			for i := 0; i < rows; i++ {
				cumSum += minSq[i]
				if cumSum >= target {
					selected = i
					break
				}
			}
		}
		seeds = append(seeds, mat.Row(nil, selected, X))
	}

	data := make([]float64, 0, nClusters*cols)
	for _, s := range seeds {
		data = append(data, s...)
	}
	dist, err := Distances(X, mat.NewDense(len(seeds), cols, data))
	if err != nil {
		// 種はXの行から取っているので形状は一致する
		return RandomLabels{}.InitLabels(X, nClusters, rng)
	}
	return AssignLabels(dist)
}

// Name implements model.LabelInitializer.
func (PlusPlusLabels) Name() string { return "k-means++" }
