// Package metrics はクラスタリング結果の評価指標を提供する
package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scigo-cluster/pkg/errors"
)

// Inertia はクラスタ内平方和（各サンプルと割り当てられた中心との距離の二乗和）を計算する
// labels[i] はcentersの行インデックスであること
func Inertia(X mat.Matrix, labels []int, centers mat.Matrix) (float64, error) {
	rows, cols := X.Dims()
	k, ccols := centers.Dims()

	if len(labels) != rows {
		return 0, errors.NewShapeMismatchError("Inertia", []int{rows}, []int{len(labels)})
	}
	if cols != ccols {
		return 0, errors.NewShapeMismatchError("Inertia", []int{k, cols}, []int{k, ccols})
	}

	centerRows := make([][]float64, k)
	for c := range centerRows {
		centerRows[c] = mat.Row(nil, c, centers)
	}

	row := make([]float64, cols)
	inertia := 0.0
	for i, l := range labels {
		if l < 0 || l >= k {
			return 0, errors.NewValidationError("labels", "label is not a row of centers", l)
		}
		mat.Row(row, i, X)
		d := floats.Distance(row, centerRows[l], 2)
		inertia += d * d
	}
	return inertia, nil
}

// SilhouetteScore はシルエット係数の平均を計算する（ユークリッド距離）
// 範囲は[-1, 1]で、1に近いほどクラスタが密で互いに離れている
// 要素数1のクラスタに属するサンプルの係数は0とする
func SilhouetteScore(X mat.Matrix, labels []int) (float64, error) {
	rows, _ := X.Dims()
	if len(labels) != rows {
		return 0, errors.NewShapeMismatchError("SilhouetteScore", []int{rows}, []int{len(labels)})
	}

	sizes := make(map[int]int)
	for _, l := range labels {
		sizes[l]++
	}
	if len(sizes) < 2 || len(sizes) >= rows {
		return 0, errors.NewValidationError("labels", "number of distinct labels must be in [2, n_samples-1]", len(sizes))
	}

	data := make([][]float64, rows)
	for i := range data {
		data[i] = mat.Row(nil, i, X)
	}

	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		if sizes[labels[i]] == 1 {
			continue
		}
		sums := make(map[int]float64, len(sizes))
		for j := 0; j < rows; j++ {
			if i == j {
				continue
			}
			sums[labels[j]] += floats.Distance(data[i], data[j], 2)
		}

		a := sums[labels[i]] / float64(sizes[labels[i]]-1)
		b := -1.0
		for l, s := range sums {
			if l == labels[i] {
				continue
			}
			if mean := s / float64(sizes[l]); b < 0 || mean < b {
				b = mean
			}
		}

		denom := a
		if b > denom {
			denom = b
		}
		if denom > 0 {
			scores[i] = (b - a) / denom
		}
	}
	return stat.Mean(scores, nil), nil
}

// AdjustedRandIndex は2つのラベル付けの一致度を偶然の一致で補正して計算する
// ラベルの値の置換には依存しない（同じ分割なら1.0）
func AdjustedRandIndex(labelsTrue, labelsPred []int) (float64, error) {
	n := len(labelsTrue)
	if len(labelsPred) != n {
		return 0, errors.NewShapeMismatchError("AdjustedRandIndex", []int{n}, []int{len(labelsPred)})
	}
	if n == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "AdjustedRandIndex")
	}

	type pair struct{ a, b int }
	contingency := make(map[pair]int)
	rowSums := make(map[int]int)
	colSums := make(map[int]int)
	for i := 0; i < n; i++ {
		contingency[pair{labelsTrue[i], labelsPred[i]}]++
		rowSums[labelsTrue[i]]++
		colSums[labelsPred[i]]++
	}

	// 両方とも1クラスタ、または両方とも全て別クラスタの場合は完全一致
	if (len(rowSums) == 1 && len(colSums) == 1) || (len(rowSums) == n && len(colSums) == n) {
		return 1.0, nil
	}

	sumComb := 0.0
	for _, c := range contingency {
		sumComb += comb2(c)
	}
	sumA := 0.0
	for _, c := range rowSums {
		sumA += comb2(c)
	}
	sumB := 0.0
	for _, c := range colSums {
		sumB += comb2(c)
	}

	expected := sumA * sumB / comb2(n)
	maxIndex := (sumA + sumB) / 2
	if maxIndex == expected {
		return 1.0, nil
	}
	return (sumComb - expected) / (maxIndex - expected), nil
}

func comb2(n int) float64 {
	return float64(n) * float64(n-1) / 2
}
