package cluster

import (
	"math/rand"

	"github.com/YuminosukeSato/scigo-cluster/core/model"
	"github.com/YuminosukeSato/scigo-cluster/pkg/log"
)

// EmptyClusterPolicy は更新ステップでメンバーを持たないクラスタの扱いを決める
type EmptyClusterPolicy int

const (
	// EmptyClusterDrop は空クラスタの中心行を出力しない。
	// それより大きいクラスタ番号の中心は1行ずつ前に詰められ、
	// 以降のラベルは詰めた後の中心行インデックスになる。
	EmptyClusterDrop EmptyClusterPolicy = iota

	// EmptyClusterReseed は空クラスタの中心をランダムに選んだ観測行で置き換え、
	// クラスタ番号と中心行インデックスの対応を保つ。中心行数は常にnClustersになる。
	EmptyClusterReseed
)

// String はログとGetParams用の名前を返す
func (p EmptyClusterPolicy) String() string {
	switch p {
	case EmptyClusterDrop:
		return "drop"
	case EmptyClusterReseed:
		return "reseed"
	default:
		return "unknown"
	}
}

// parallelThreshold 以下の行数では並列化しない
const parallelThreshold = 1000

// ===========================================================================
//
//	エンジンのオプション
//
// ===========================================================================

// EngineOption はFitClustersの設定オプション
type EngineOption func(*engineConfig)

type engineConfig struct {
	policy    EmptyClusterPolicy
	rng       *rand.Rand
	parallel  bool
	workers   int
	threshold int
	logger    log.Logger
}

func newEngineConfig(opts []EngineOption) *engineConfig {
	cfg := &engineConfig{
		policy:    EmptyClusterDrop,
		threshold: parallelThreshold,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLogger().With(log.ComponentKey, "cluster")
	}
	return cfg
}

// WithEngineEmptyClusterPolicy は空クラスタの扱いを設定
func WithEngineEmptyClusterPolicy(p EmptyClusterPolicy) EngineOption {
	return func(cfg *engineConfig) {
		cfg.policy = p
	}
}

// WithEngineRand はEmptyClusterReseedで使う乱数生成器を設定
func WithEngineRand(rng *rand.Rand) EngineOption {
	return func(cfg *engineConfig) {
		cfg.rng = rng
	}
}

// WithEngineParallel は距離計算とクラスタ中心計算の並列化を設定
// workers <= 0 はCPU数を使う
func WithEngineParallel(enabled bool, workers int) EngineOption {
	return func(cfg *engineConfig) {
		cfg.parallel = enabled
		cfg.workers = workers
	}
}

// WithEngineParallelThreshold は並列化を始める行数を設定
func WithEngineParallelThreshold(rows int) EngineOption {
	return func(cfg *engineConfig) {
		cfg.threshold = rows
	}
}

// WithEngineLogger はロガーを設定
func WithEngineLogger(logger log.Logger) EngineOption {
	return func(cfg *engineConfig) {
		cfg.logger = logger
	}
}

// ===========================================================================
//
//	KMeansのオプション
//
// ===========================================================================

// KMeansOption はKMeansの設定オプション
type KMeansOption func(*KMeans)

// WithKMeansRandomState は乱数シードを設定
func WithKMeansRandomState(seed int64) KMeansOption {
	return func(km *KMeans) {
		km.randomState = seed
		if seed >= 0 {
			km.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithKMeansRand は乱数生成器を直接設定する。randomStateは-1として報告される
func WithKMeansRand(rng *rand.Rand) KMeansOption {
	return func(km *KMeans) {
		km.randomState = -1
		km.rng = rng
	}
}

// WithKMeansInit は初期ラベルの生成方法を設定
func WithKMeansInit(init model.LabelInitializer) KMeansOption {
	return func(km *KMeans) {
		km.init = init
	}
}

// WithKMeansEmptyClusterPolicy は空クラスタの扱いを設定
func WithKMeansEmptyClusterPolicy(p EmptyClusterPolicy) KMeansOption {
	return func(km *KMeans) {
		km.emptyPolicy = p
	}
}

// WithKMeansParallel は並列実行を設定（結果は逐次実行と一致する）
func WithKMeansParallel(enabled bool) KMeansOption {
	return func(km *KMeans) {
		km.parallel = enabled
	}
}

// WithKMeansLogger はロガーを設定
func WithKMeansLogger(logger log.Logger) KMeansOption {
	return func(km *KMeans) {
		km.logger = logger
	}
}
