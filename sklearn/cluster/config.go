package cluster

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/scigo-cluster/core/model"
	"github.com/YuminosukeSato/scigo-cluster/pkg/errors"
)

// Config はYAMLから読み込めるKMeansの設定
// ポインタのフィールドがnilなら未設定としてデフォルト値を使う
type Config struct {
	NClusters          int    `yaml:"n_clusters"`
	MaxIter            int    `yaml:"max_iter"`
	RandomState        *int64 `yaml:"random_state"`
	Init               string `yaml:"init"`
	EmptyClusterPolicy string `yaml:"empty_cluster_policy"`
	Parallel           bool   `yaml:"parallel"`
}

// ValidInits は認識される初期ラベルの名前
var ValidInits = map[string]model.LabelInitializer{
	"":          RandomLabels{},
	"random":    RandomLabels{},
	"k-means++": PlusPlusLabels{},
}

// ValidEmptyClusterPolicies は認識される空クラスタ処理の名前
var ValidEmptyClusterPolicies = map[string]EmptyClusterPolicy{
	"":       EmptyClusterDrop,
	"drop":   EmptyClusterDrop,
	"reseed": EmptyClusterReseed,
}

// LoadConfig はYAMLファイルからKMeansの設定を読み込み、検証する
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading kmeans config")
	}
	return ParseConfig(data)
}

// ParseConfig はYAMLのバイト列から設定を読み込み、検証する
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing kmeans config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate は名前と値の範囲を検証する
func (c *Config) Validate() error {
	if c.NClusters < 1 {
		return errors.NewValidationError("n_clusters", "must be at least 1", c.NClusters)
	}
	if c.MaxIter < 1 {
		return errors.NewValidationError("max_iter", "must be at least 1", c.MaxIter)
	}
	if _, ok := ValidInits[c.Init]; !ok {
		return errors.NewValidationError("init", "unknown initializer", c.Init)
	}
	if _, ok := ValidEmptyClusterPolicies[c.EmptyClusterPolicy]; !ok {
		return errors.NewValidationError("empty_cluster_policy", "unknown policy", c.EmptyClusterPolicy)
	}
	return nil
}

// Options は設定をKMeansOptionに変換する
func (c *Config) Options() []KMeansOption {
	opts := []KMeansOption{
		WithKMeansInit(ValidInits[c.Init]),
		WithKMeansEmptyClusterPolicy(ValidEmptyClusterPolicies[c.EmptyClusterPolicy]),
		WithKMeansParallel(c.Parallel),
	}
	if c.RandomState != nil {
		opts = append(opts, WithKMeansRandomState(*c.RandomState))
	}
	return opts
}

// NewKMeansFromConfig は設定からKMeansを作成する。extraはconfigの後に適用される
func NewKMeansFromConfig(c *Config, extra ...KMeansOption) *KMeans {
	return NewKMeans(c.NClusters, c.MaxIter, append(c.Options(), extra...)...)
}
