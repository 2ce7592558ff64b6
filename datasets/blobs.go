// Package datasets は検証やデモ用の合成データを生成する
package datasets

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/scigo-cluster/pkg/errors"
)

// Blob は1つの正規分布クラスタの定義
type Blob struct {
	Center []float64 // 各次元の平均
	StdDev float64   // 全次元共通の標準偏差
	N      int       // サンプル数
}

// MakeBlobs はblobsの順にサンプルを縦に連結した行列と、各行の生成元blobのインデックスを返す
// 同じseedなら同じデータを返す
func MakeBlobs(blobs []Blob, seed uint64) (*mat.Dense, []int, error) {
	if len(blobs) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "MakeBlobs")
	}

	dim := len(blobs[0].Center)
	total := 0
	for i, b := range blobs {
		if len(b.Center) != dim {
			return nil, nil, errors.NewShapeMismatchError("MakeBlobs", []int{dim}, []int{len(b.Center)})
		}
		if b.N < 0 || b.StdDev < 0 {
			return nil, nil, errors.NewValidationError("blobs", "N and StdDev must be non-negative", i)
		}
		total += b.N
	}
	if total == 0 || dim == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "MakeBlobs")
	}

	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	X := mat.NewDense(total, dim, nil)
	y := make([]int, 0, total)

	row := 0
	for bi, b := range blobs {
		dists := make([]distuv.Normal, dim)
		for j := range dists {
			dists[j] = distuv.Normal{Mu: b.Center[j], Sigma: b.StdDev, Src: src}
		}
		for n := 0; n < b.N; n++ {
			for j := range dists {
				if b.StdDev == 0 {
					X.Set(row, j, b.Center[j])
					continue
				}
				X.Set(row, j, dists[j].Rand())
			}
			y = append(y, bi)
			row++
		}
	}
	return X, y, nil
}

// FourBlobs は(2,2), (-2,-2), (12,12), (-20,-20)を中心とする4つの2次元ブロブを生成する
func FourBlobs(nSamples int, seed uint64) (*mat.Dense, []int, error) {
	per := nSamples / 4
	return MakeBlobs([]Blob{
		{Center: []float64{2, 2}, StdDev: 0.3, N: per},
		{Center: []float64{-2, -2}, StdDev: 0.5, N: per},
		{Center: []float64{12, 12}, StdDev: 0.1, N: per},
		{Center: []float64{-20, -20}, StdDev: 0.3, N: nSamples - 3*per},
	}, seed)
}
