package cluster

import (
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scigo-cluster/core/model"
	"github.com/YuminosukeSato/scigo-cluster/metrics"
	"github.com/YuminosukeSato/scigo-cluster/pkg/errors"
	"github.com/YuminosukeSato/scigo-cluster/pkg/log"
)

var _ model.ClusterModel = (*KMeans)(nil)

// KMeans はLloydのアルゴリズムによるK-meansクラスタリング
//
// Fitはランダムな初期ラベルから反復を開始し、学習したクラスタ中心を保持する。
// PredictはFitと同じ距離計算と同距離時の規則（小さいインデックス優先）で最近傍の中心を返す。
//
// デフォルトの空クラスタ処理（EmptyClusterDrop）では、メンバーを持たないクラスタの中心は削除され、
// ラベルは詰めた後の中心行インデックスになる。そのためラベルの最大値はnClusters-1より小さいことがある。
// ラベルは常にClusterCenters()の行として有効なインデックスである。
type KMeans struct {
	mu    sync.RWMutex
	state *model.StateManager

	// ハイパーパラメータ
	nClusters   int   // クラスタ数
	maxIter     int   // 最大イテレーション数
	randomState int64 // 乱数シード（-1は非決定的）
	init        model.LabelInitializer
	emptyPolicy EmptyClusterPolicy
	parallel    bool
	logger      log.Logger
	rng         *rand.Rand

	// 学習パラメータ
	clusterCenters_ *mat.Dense // クラスタ中心（nActive x nFeatures）
	labels_         []int      // 学習データのラベル
	inertia_        float64    // クラスタ内平方和
	nIter_          int        // 実行された再割り当ての回数
	converged_      bool
}

// NewKMeans は新しいKMeansを作成する
// nClustersとmaxIterは作成後に変更できない。値の検証はFitで行う
func NewKMeans(nClusters, maxIter int, options ...KMeansOption) *KMeans {
	km := &KMeans{
		state:       model.NewStateManager(),
		nClusters:   nClusters,
		maxIter:     maxIter,
		randomState: -1,
		init:        RandomLabels{},
		emptyPolicy: EmptyClusterDrop,
	}

	for _, opt := range options {
		opt(km)
	}

	if km.rng == nil {
		km.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if km.init == nil {
		km.init = RandomLabels{}
	}

	return km
}

// Fit はデータからクラスタ中心を学習し、各行の最終ラベルを返す
func (km *KMeans) Fit(X mat.Matrix) ([]int, error) {
	km.mu.Lock()
	defer km.mu.Unlock()

	logger := km.log().With(log.OperationKey, log.OperationFit)

	if km.nClusters < 1 {
		return nil, errors.NewValidationError("n_clusters", "must be at least 1", km.nClusters)
	}
	if km.maxIter < 1 {
		return nil, errors.NewValidationError("max_iter", "must be at least 1", km.maxIter)
	}

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		err := errors.Wrap(errors.ErrEmptyData, "KMeans.Fit")
		logger.Error("KMeans fit failed", err, log.ErrorCodeKey, errorCode(err))
		return nil, err
	}

	start := time.Now()
	logger.Debug("KMeans fit started",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.ClusterCountKey, km.nClusters,
		log.MaxIterKey, km.maxIter,
		log.RandomSeedKey, km.randomState,
	)

	initLabels := km.init.InitLabels(X, km.nClusters, km.rng)
	res, err := FitClusters(X, initLabels, km.nClusters, km.maxIter, km.engineOptions(logger)...)
	if err != nil {
		logger.Error("KMeans fit failed", err, log.ErrorCodeKey, errorCode(err))
		return nil, err
	}

	inertia, err := metrics.Inertia(X, res.Labels, res.Centroids)
	if err != nil {
		return nil, errors.Wrap(err, "KMeans.Fit")
	}

	km.clusterCenters_ = res.Centroids
	km.labels_ = res.Labels
	km.inertia_ = inertia
	km.nIter_ = res.NIter
	km.converged_ = res.Converged
	km.state.MarkFitted(cols, rows)

	active, _ := res.Centroids.Dims()
	logger.Info("KMeans fit completed",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.IterationKey, res.NIter,
		log.ConvergedKey, res.Converged,
		log.ActiveClustersKey, active,
		log.InertiaKey, inertia,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return copyLabels(res.Labels), nil
}

// Predict は入力データの各行に最も近いクラスタ中心のインデックスを返す
// 列数が学習時と異なる場合（未学習を含む）はDimensionMismatchErrorを返す
func (km *KMeans) Predict(X mat.Matrix) ([]int, error) {
	km.mu.RLock()
	defer km.mu.RUnlock()

	dist, err := km.distances(X, "KMeans.Predict", log.OperationPredict)
	if err != nil {
		return nil, err
	}
	return AssignLabels(dist), nil
}

// FitPredict は学習と予測を同時に行う（Fitの戻り値と同じ）
func (km *KMeans) FitPredict(X mat.Matrix) ([]int, error) {
	return km.Fit(X)
}

// Transform はデータをクラスタ中心との距離に変換する（行数 x 中心の数）
func (km *KMeans) Transform(X mat.Matrix) (mat.Matrix, error) {
	km.mu.RLock()
	defer km.mu.RUnlock()

	if !km.state.IsFitted() {
		return nil, errors.NewNotFittedError("KMeans", "Transform")
	}

	dist, err := km.distances(X, "KMeans.Transform", log.OperationTransform)
	if err != nil {
		return nil, err
	}

	var out mat.Dense
	out.CloneFrom(dist.T())
	return &out, nil
}

func (km *KMeans) distances(X mat.Matrix, op, operation string) (*mat.Dense, error) {
	_, cols := X.Dims()
	dim := km.state.NFeatures()
	if cols != dim {
		err := errors.NewDimensionMismatchError(op, dim, cols)
		km.log().Warn("dimension mismatch",
			log.OperationKey, operation,
			log.FeaturesKey, cols,
			log.ErrorCodeKey, log.ErrorDimensionMismatch,
		)
		return nil, err
	}
	if km.clusterCenters_ == nil {
		return nil, errors.Wrap(errors.NewShapeMismatchError(op, []int{1, dim}, []int{0, 0}), op)
	}

	dist, err := distancesWith(newEngineConfig(km.engineOptions(km.log())), X, km.clusterCenters_)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return dist, nil
}

// Dim は学習時の特徴量数を返す（未学習なら0）
func (km *KMeans) Dim() int {
	return km.state.NFeatures()
}

// ClusterCenters は学習されたクラスタ中心のコピーを返す
// 未学習の場合は空のスライス
func (km *KMeans) ClusterCenters() [][]float64 {
	km.mu.RLock()
	defer km.mu.RUnlock()

	if km.clusterCenters_ == nil {
		return [][]float64{}
	}
	k, _ := km.clusterCenters_.Dims()
	centers := make([][]float64, k)
	for i := range centers {
		centers[i] = mat.Row(nil, i, km.clusterCenters_)
	}
	return centers
}

// Labels は学習データのクラスタラベルのコピーを返す
func (km *KMeans) Labels() []int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return copyLabels(km.labels_)
}

// Inertia は学習データのクラスタ内平方和を返す
func (km *KMeans) Inertia() float64 {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.inertia_
}

// NIter は最後のFitで実行された再割り当ての回数を返す
func (km *KMeans) NIter() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.nIter_
}

// Converged は最後のFitがmaxIter以内に収束したかどうかを返す
func (km *KMeans) Converged() bool {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.converged_
}

// NClusters は設定されたクラスタ数を返す
func (km *KMeans) NClusters() int { return km.nClusters }

// MaxIter は設定された最大イテレーション数を返す
func (km *KMeans) MaxIter() int { return km.maxIter }

// IsFitted はモデルが学習済みかどうかを返す
func (km *KMeans) IsFitted() bool { return km.state.IsFitted() }

// GetParams はハイパーパラメータを返す
func (km *KMeans) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_clusters":           km.nClusters,
		"max_iter":             km.maxIter,
		"random_state":         km.randomState,
		"init":                 km.init.Name(),
		"empty_cluster_policy": km.emptyPolicy.String(),
		"parallel":             km.parallel,
	}
}

func (km *KMeans) log() log.Logger {
	logger := km.logger
	if logger == nil {
		logger = log.GetLogger()
	}
	return logger.With(log.ModelNameKey, "KMeans")
}

func (km *KMeans) engineOptions(logger log.Logger) []EngineOption {
	return []EngineOption{
		WithEngineEmptyClusterPolicy(km.emptyPolicy),
		WithEngineRand(km.rng),
		WithEngineParallel(km.parallel, 0),
		WithEngineLogger(logger),
	}
}

func errorCode(err error) string {
	var shapeErr *errors.ShapeMismatchError
	if errors.As(err, &shapeErr) {
		return log.ErrorShapeMismatch
	}
	var valErr *errors.ValidationError
	if errors.As(err, &valErr) {
		return log.ErrorInvalidParameter
	}
	if errors.Is(err, errors.ErrEmptyData) {
		return log.ErrorEmptyData
	}
	return ""
}

func copyLabels(labels []int) []int {
	if labels == nil {
		return nil
	}
	out := make([]int, len(labels))
	copy(out, labels)
	return out
}
