package cluster

import (
	"context"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scigo-cluster/core/parallel"
	"github.com/YuminosukeSato/scigo-cluster/pkg/errors"
	"github.com/YuminosukeSato/scigo-cluster/pkg/log"
)

// Result はFitClustersの結果
type Result struct {
	// Labels は最終的なラベル（Centroidsの行インデックス）
	Labels []int
	// Centroids はクラスタ中心（行数 <= nClusters）
	Centroids *mat.Dense
	// NIter は実行した再割り当ての回数
	NIter int
	// Converged はラベル割り当てが固定点に到達したかどうか
	Converged bool
}

// FitClusters はLloydのアルゴリズムでクラスタ中心とラベルを学習する
//
// 各イテレーションは次の順で進む:
//  1. 現在のラベルと前回のラベルが全て一致すれば終了（前回は全て0から始まる）
//  2. クラスタ0..nClusters-1の順に所属行の平均を中心として計算
//  3. 全ての行を最も近い中心に再割り当て（同距離なら小さいインデックス）
//
// 反復がmaxIterに達しても収束していない場合はConvergenceWarningを出すが、エラーにはしない。
// 内部の行列構築で形状が合わない場合はShapeMismatchErrorを返す。
func FitClusters(X mat.Matrix, initLabels []int, nClusters, maxIter int, opts ...EngineOption) (*Result, error) {
	cfg := newEngineConfig(opts)
	rows, _ := X.Dims()

	if len(initLabels) != rows {
		return nil, errors.NewShapeMismatchError("FitClusters", []int{rows}, []int{len(initLabels)})
	}
	for i, l := range initLabels {
		if l < 0 || l >= nClusters {
			return nil, errors.NewValidationError("initial_labels", "label out of range [0, n_clusters)", map[string]int{"row": i, "label": l})
		}
	}
	if cfg.policy == EmptyClusterReseed && cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	labels := make([]int, rows)
	copy(labels, initLabels)
	prevLabels := make([]int, rows)

	var centroids *mat.Dense
	result := &Result{}
	warnedEmpty := false

	for iter := 0; iter < maxIter; iter++ {
		if equalLabels(labels, prevLabels) {
			result.Converged = true
			break
		}
		prevLabels = labels

		var empty []int
		var err error
		centroids, empty, err = computeCentroidsWith(cfg, X, labels, nClusters)
		if err != nil {
			return nil, err
		}
		if len(empty) > 0 {
			cfg.logger.Debug("empty clusters",
				log.IterationKey, iter+1,
				"clusters", empty,
				log.EmptyClusterPolicyKey, cfg.policy.String(),
			)
			if !warnedEmpty {
				errors.Warn(errors.NewEmptyClusterWarning(empty[0], iter+1, cfg.policy.String()))
				warnedEmpty = true
			}
		}

		labels, err = assignWith(cfg, X, centroids)
		if err != nil {
			return nil, err
		}
		result.NIter++

		if cfg.logger.Enabled(context.Background(), log.LevelDebug) {
			active, _ := centroids.Dims()
			cfg.logger.Debug("lloyd iteration",
				log.IterationKey, iter+1,
				log.ChangedLabelsKey, countChanged(prevLabels, labels),
				log.ActiveClustersKey, active,
			)
		}
	}

	// 最後の再割り当てでラベルが変わらなければ、次の判定を待たずに収束とみなす
	if !result.Converged && result.NIter > 0 && equalLabels(labels, prevLabels) {
		result.Converged = true
	}

	// 初期ラベルが全て0だと一度も更新されないので、ラベルと整合する中心を作る
	if centroids == nil && rows > 0 {
		var err error
		centroids, _, err = computeCentroidsWith(cfg, X, labels, nClusters)
		if err != nil {
			return nil, err
		}
	}

	if !result.Converged {
		errors.Warn(errors.NewConvergenceWarning("KMeans", result.NIter, ""))
	}

	result.Labels = labels
	result.Centroids = centroids
	return result, nil
}

// ComputeCentroids はクラスタごとの所属行の列平均を昇順に並べた行列を返す
// 2番目の戻り値はメンバーを持たなかったクラスタ番号
//
// EmptyClusterDropでは空クラスタの行は出力されないので、行数はnClusters未満になりうる。
// EmptyClusterReseedでは空クラスタの行をランダムな観測行で埋める。
func ComputeCentroids(X mat.Matrix, labels []int, nClusters int, opts ...EngineOption) (*mat.Dense, []int, error) {
	cfg := newEngineConfig(opts)
	if cfg.policy == EmptyClusterReseed && cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return computeCentroidsWith(cfg, X, labels, nClusters)
}

func computeCentroidsWith(cfg *engineConfig, X mat.Matrix, labels []int, nClusters int) (*mat.Dense, []int, error) {
	rows, cols := X.Dims()
	if len(labels) != rows {
		return nil, nil, errors.NewShapeMismatchError("ComputeCentroids", []int{rows}, []int{len(labels)})
	}

	members := make([][]int, nClusters)
	for i, l := range labels {
		if l >= 0 && l < nClusters {
			members[l] = append(members[l], i)
		}
	}

	means := make([][]float64, nClusters)
	meanOf := func(c int) error {
		idx := members[c]
		if len(idx) == 0 {
			return nil
		}
		sum := make([]float64, cols)
		row := make([]float64, cols)
		for _, i := range idx {
			mat.Row(row, i, X)
			floats.Add(sum, row)
		}
		floats.Scale(1/float64(len(idx)), sum)
		means[c] = sum
		return nil
	}

	err := guardShape("ComputeCentroids", func() error {
		if cfg.parallel && rows > cfg.threshold {
			return parallel.ForEach(context.Background(), nClusters, cfg.workers, func(_ context.Context, c int) error {
				return meanOf(c)
			})
		}
		for c := 0; c < nClusters; c++ {
			if err := meanOf(c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// 全ての平均が揃ってから組み立てる
	var empty []int
	data := make([]float64, 0, nClusters*cols)
	active := 0
	for c := 0; c < nClusters; c++ {
		mean := means[c]
		if mean == nil {
			empty = append(empty, c)
			if cfg.policy != EmptyClusterReseed || rows == 0 {
				continue
			}
			mean = mat.Row(nil, cfg.rng.Intn(rows), X)
		}
		if len(mean) != cols {
			return nil, nil, errors.NewShapeMismatchError("ComputeCentroids", []int{1, cols}, []int{1, len(mean)})
		}
		data = append(data, mean...)
		active++
	}

	if active == 0 {
		return nil, empty, nil
	}

	var centroids *mat.Dense
	err = guardShape("ComputeCentroids", func() error {
		centroids = mat.NewDense(active, cols, data)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return centroids, empty, nil
}

// Distances は各中心から各観測行までのユークリッド距離を返す
// 形状は (中心の数, 観測行の数)
func Distances(X mat.Matrix, centroids mat.Matrix, opts ...EngineOption) (*mat.Dense, error) {
	return distancesWith(newEngineConfig(opts), X, centroids)
}

func distancesWith(cfg *engineConfig, X mat.Matrix, centroids mat.Matrix) (*mat.Dense, error) {
	n, cols := X.Dims()
	k, ccols := centroids.Dims()
	if cols != ccols {
		return nil, errors.NewShapeMismatchError("Distances", []int{k, cols}, []int{k, ccols})
	}

	var dist *mat.Dense
	err := guardShape("Distances", func() error {
		dist = mat.NewDense(k, n, nil)

		centers := make([][]float64, k)
		for c := 0; c < k; c++ {
			centers[c] = mat.Row(nil, c, centroids)
		}

		fill := func(start, end int) {
			row := make([]float64, cols)
			diff := make([]float64, cols)
			for i := start; i < end; i++ {
				mat.Row(row, i, X)
				for c, center := range centers {
					floats.SubTo(diff, row, center)
					floats.Mul(diff, diff)
					dist.Set(c, i, math.Sqrt(floats.Sum(diff)))
				}
			}
		}

		if cfg.parallel {
			parallel.ParallelizeWithThreshold(n, cfg.threshold, cfg.workers, fill)
		} else {
			fill(0, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dist, nil
}

// AssignLabels は距離行列の各列（観測行）について最も近い中心のインデックスを返す
// 中心は昇順に走査し、厳密に小さい距離のときだけ更新するため、同距離なら小さいインデックスが選ばれる
func AssignLabels(dist mat.Matrix) []int {
	k, n := dist.Dims()
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		best := 0
		bestDist := math.Inf(1)
		for c := 0; c < k; c++ {
			if d := dist.At(c, i); d < bestDist {
				best = c
				bestDist = d
			}
		}
		labels[i] = best
	}
	return labels
}

func assignWith(cfg *engineConfig, X mat.Matrix, centroids mat.Matrix) ([]int, error) {
	dist, err := distancesWith(cfg, X, centroids)
	if err != nil {
		return nil, err
	}
	return AssignLabels(dist), nil
}

// guardShape はgonumの形状エラーによるpanicをShapeMismatchErrorに変換する
func guardShape(op string, fn func() error) error {
	err := errors.SafeExecute(op, fn)
	if err == nil {
		return nil
	}
	if pe, ok := errors.AsPanic(err); ok {
		if _, isMat := pe.PanicValue.(mat.Error); isMat {
			return errors.Wrapf(errors.NewShapeMismatchError(op, nil, nil), "%v", pe.PanicValue)
		}
	}
	return err
}

func equalLabels(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func countChanged(prev, next []int) int {
	changed := 0
	for i := range next {
		if prev[i] != next[i] {
			changed++
		}
	}
	return changed
}
