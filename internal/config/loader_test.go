package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repofetch/repofetch/internal/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Equal(t, domain.KindConfigNotFound, domain.KindOf(err))
	})

	t.Run("path is a directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Equal(t, domain.KindConfigNotFound, domain.KindOf(err))
	})

	t.Run("valid minimal config", func(t *testing.T) {
		path := writeConfigFile(t, `{"username":"octocat","repositories":["Hello-World"]}`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "octocat", cfg.Username)
		assert.Equal(t, []string{"Hello-World"}, cfg.Repositories)
		assert.Nil(t, cfg.Path)
		assert.Nil(t, cfg.Timeout)
	})
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		wantKind domain.Kind
	}{
		{
			name:     "trailing comma is malformed input, not unclassified",
			raw:      `{"username":"octocat","repositories":["Hello-World"],}`,
			wantKind: domain.KindMalformedInput,
		},
		{
			name:     "truncated document",
			raw:      `{"username":"octocat"`,
			wantKind: domain.KindMalformedInput,
		},
		{
			name:     "username with wrong type",
			raw:      `{"username":42,"repositories":["Hello-World"]}`,
			wantKind: domain.KindSchemaViolation,
		},
		{
			name:     "missing repositories",
			raw:      `{"username":"octocat"}`,
			wantKind: domain.KindSchemaViolation,
		},
		{
			name:     "empty repositories list",
			raw:      `{"username":"octocat","repositories":[]}`,
			wantKind: domain.KindSchemaViolation,
		},
		{
			name:     "eleven repositories",
			raw:      `{"username":"octocat","repositories":["a","b","c","d","e","f","g","h","i","j","k"]}`,
			wantKind: domain.KindSchemaViolation,
		},
		{
			name:     "repositories with non-string element",
			raw:      `{"username":"octocat","repositories":["ok",7]}`,
			wantKind: domain.KindSchemaViolation,
		},
		{
			name:     "metrics with non-boolean value",
			raw:      `{"username":"octocat","repositories":["r"],"metrics":{"stars":"yes"}}`,
			wantKind: domain.KindSchemaViolation,
		},
		{
			name:     "path with unknown key",
			raw:      `{"username":"octocat","repositories":["r"],"path":{"input_path":"x"}}`,
			wantKind: domain.KindSchemaViolation,
		},
		{
			name:     "timeout with wrong type",
			raw:      `{"username":"octocat","repositories":["r"],"timeout":"30"}`,
			wantKind: domain.KindSchemaViolation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.raw))
			require.Error(t, err)
			assert.Equal(t, tc.wantKind, domain.KindOf(err))
		})
	}

	t.Run("full config decodes every field", func(t *testing.T) {
		cfg, err := Parse([]byte(Sample))
		require.NoError(t, err)
		assert.Equal(t, "octocat", cfg.Username)
		assert.Len(t, cfg.Repositories, 2)
		require.NotNil(t, cfg.Path)
		assert.Equal(t, "output/repo_stats.csv", cfg.Path.OutputPath)
		assert.Equal(t, "output/repofetch.log", cfg.Path.LogPath)
		require.NotNil(t, cfg.Timeout)
		assert.Equal(t, 30, *cfg.Timeout)
		assert.True(t, cfg.Metrics["stars"])
	})
}
