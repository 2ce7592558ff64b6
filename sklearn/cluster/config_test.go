package cluster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scigo-cluster/pkg/errors"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kmeans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeTempYAML(t, `
n_clusters: 4
max_iter: 50
random_state: 42
init: k-means++
empty_cluster_policy: reseed
parallel: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.NClusters)
	assert.Equal(t, 50, cfg.MaxIter)
	require.NotNil(t, cfg.RandomState)
	assert.Equal(t, int64(42), *cfg.RandomState)

	km := NewKMeansFromConfig(cfg)
	params := km.GetParams()
	assert.Equal(t, 4, params["n_clusters"])
	assert.Equal(t, int64(42), params["random_state"])
	assert.Equal(t, "k-means++", params["init"])
	assert.Equal(t, "reseed", params["empty_cluster_policy"])
	assert.Equal(t, true, params["parallel"])
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("n_clusters: 2\nmax_iter: 10\n"))
	require.NoError(t, err)
	assert.Nil(t, cfg.RandomState)

	params := NewKMeansFromConfig(cfg).GetParams()
	assert.Equal(t, int64(-1), params["random_state"])
	assert.Equal(t, "random", params["init"])
	assert.Equal(t, "drop", params["empty_cluster_policy"])
}

func TestParseConfig_ZeroSeedIsDistinctFromUnset(t *testing.T) {
	cfg, err := ParseConfig([]byte("n_clusters: 2\nmax_iter: 10\nrandom_state: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.RandomState)
	assert.Equal(t, int64(0), *cfg.RandomState)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		param string
	}{
		{"missing clusters", "max_iter: 10\n", "n_clusters"},
		{"zero max_iter", "n_clusters: 2\nmax_iter: 0\n", "max_iter"},
		{"unknown init", "n_clusters: 2\nmax_iter: 10\ninit: forgy\n", "init"},
		{"unknown policy", "n_clusters: 2\nmax_iter: 10\nempty_cluster_policy: split\n", "empty_cluster_policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}

	_, err := ParseConfig([]byte("n_clusters: [1, 2]\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
