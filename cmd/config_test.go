package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndes-sim/ndes/sim/random"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadModelConfig_OverridesDefaults(t *testing.T) {
	// GIVEN a model file setting a few fields
	path := writeFile(t, `
seed: 7
campaigns: 3
arrival:
  process: discrete
  values: [1, 2]
  weights: [3, 1]
probes:
  window: 10
`)

	// WHEN it is loaded
	cfg, err := loadModelConfig(path)

	// THEN the file values win and the rest keeps its defaults
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 3, cfg.Campaigns)
	assert.Equal(t, "discrete", cfg.Arrival.Process)
	assert.Equal(t, 10, cfg.Probes.Window)
	assert.Equal(t, DefaultModelConfig().Until, cfg.Until)
	assert.Equal(t, DefaultModelConfig().Service, cfg.Service)
}

func TestLoadModelConfig_UnknownKeyIsAnError(t *testing.T) {
	path := writeFile(t, "seed: 1\nhorizon: 100\n")

	_, err := loadModelConfig(path)

	assert.Error(t, err)
}

func TestLoadModelConfig_InvalidCampaigns(t *testing.T) {
	path := writeFile(t, "campaigns: 0\n")

	_, err := loadModelConfig(path)

	assert.Error(t, err)
}

func TestDistConfig_Distribution(t *testing.T) {
	tests := []struct {
		name    string
		dist    DistConfig
		wantErr error
	}{
		{"exponential", DistConfig{Process: "exponential", Rate: 2}, nil},
		{"gamma", DistConfig{Process: "gamma", Rate: 2, CV: 3}, nil},
		{"constant", DistConfig{Process: "constant", Period: 1}, nil},
		{"uniform", DistConfig{Process: "uniform", Min: 1, Max: 2}, nil},
		{"discrete", DistConfig{Process: "discrete", Values: []float64{1}, Weights: []float64{1}}, nil},
		{"zero rate", DistConfig{Process: "exponential"}, random.ErrInvalidRate},
		{"unknown", DistConfig{Process: "pareto"}, random.ErrInvalidDistribution},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := tc.dist.distribution()
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, d)
		})
	}
}
