package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	require.NoError(t, Default().Validate(), "Defaults should be valid")
}

func TestLoad(t *testing.T) {
	t.Run("overriding defaults", func(t *testing.T) {
		path := writeConfig(t, "num_explores: 25\ntemperature: 0.5\nsample_action: false\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 25, cfg.NumExplores)
		require.Equal(t, 0.5, cfg.Temperature)
		require.False(t, cfg.SampleAction)
		require.Equal(t, Default().Capacity, cfg.Capacity, "Unset keys keep their defaults")
	})

	t.Run("rejecting unknown keys", func(t *testing.T) {
		path := writeConfig(t, "num_explorez: 25\n")

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("rejecting invalid values", func(t *testing.T) {
		path := writeConfig(t, "temperature: 0\n")

		_, err := Load(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"capacity", func(c *Config) { c.Capacity = 0 }},
		{"explores", func(c *Config) { c.NumExplores = 0 }},
		{"temperature", func(c *Config) { c.Temperature = -1 }},
		{"steps", func(c *Config) { c.Steps = 0 }},
		{"alpha", func(c *Config) { c.Alpha = 0 }},
		{"c_puct", func(c *Config) { c.CPuct = 0 }},
		{"noise fraction", func(c *Config) { c.NoiseFraction = 1.5 }},
		{"max plies", func(c *Config) { c.MaxPlies = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("alpha unused without noise", func(t *testing.T) {
		cfg := Default()
		cfg.NoisyExplore = false
		cfg.Alpha = 0
		require.NoError(t, cfg.Validate())
	})
}
