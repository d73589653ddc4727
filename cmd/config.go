package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ndes-sim/ndes/sim/random"
)

// DistConfig describes an interval distribution.
type DistConfig struct {
	Process string    `yaml:"process"` // exponential, constant, uniform, discrete, gamma
	Rate    float64   `yaml:"rate"`    // exponential, gamma
	CV      float64   `yaml:"cv"`      // gamma
	Period  float64   `yaml:"period"`  // constant
	Min     float64   `yaml:"min"`     // uniform
	Max     float64   `yaml:"max"`     // uniform
	Values  []float64 `yaml:"values"`  // discrete
	Weights []float64 `yaml:"weights"` // discrete
}

// HistogramConfig sets the bounds of the sojourn-time histogram.
type HistogramConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Buckets int     `yaml:"buckets"`
}

// ProbesConfig parameterizes the model's probes.
type ProbesConfig struct {
	Histogram HistogramConfig `yaml:"histogram"`
	Window    int             `yaml:"window"`   // sliding window width
	EMA       float64         `yaml:"ema"`      // EMA coefficient
	Slice     float64         `yaml:"slice"`    // time-slice duration
	Capacity  int             `yaml:"capacity"` // exhaustive probe capacity
}

// DumpConfig selects where probe content is exported after each campaign.
type DumpConfig struct {
	Dir        string `yaml:"dir"`        // gnuplot files, one per probe and campaign
	Format     string `yaml:"format"`     // gnuplot, gnuplot-indexed
	SQLite     string `yaml:"sqlite"`     // database file; "auto" picks a unique name
	Prometheus string `yaml:"prometheus"` // textfile written after the last campaign
}

// ModelConfig is the YAML model file. All top-level sections must be listed
// to satisfy KnownFields(true) strict parsing.
type ModelConfig struct {
	Seed      int64        `yaml:"seed"`
	Until     float64      `yaml:"until"`
	Campaigns int          `yaml:"campaigns"`
	Replay    bool         `yaml:"replay"`
	Trace     string       `yaml:"trace"`
	Arrival   DistConfig   `yaml:"arrival"`
	Service   DistConfig   `yaml:"service"`
	Probes    ProbesConfig `yaml:"probes"`
	Dump      DumpConfig   `yaml:"dump"`
}

// DefaultModelConfig returns an M/M/1 queue at 80% load.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Seed:      42,
		Until:     10000,
		Campaigns: 1,
		Trace:     "none",
		Arrival:   DistConfig{Process: "exponential", Rate: 0.8},
		Service:   DistConfig{Process: "exponential", Rate: 1},
		Probes: ProbesConfig{
			Histogram: HistogramConfig{Min: 0, Max: 50, Buckets: 50},
			Window:    100,
			EMA:       0.99,
			Slice:     100,
			Capacity:  1 << 20,
		},
		Dump: DumpConfig{Format: "gnuplot"},
	}
}

// loadModelConfig reads a model file over the defaults. Unknown keys are
// an error.
func loadModelConfig(path string) (ModelConfig, error) {
	cfg := DefaultModelConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading model file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing model file %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c ModelConfig) validate() error {
	if c.Campaigns < 1 {
		return fmt.Errorf("campaigns must be >= 1, got %d", c.Campaigns)
	}
	if !(c.Until > 0) {
		return fmt.Errorf("until must be > 0, got %g", c.Until)
	}
	return nil
}

// distribution builds the random distribution described by d.
func (d DistConfig) distribution() (random.Distribution, error) {
	switch d.Process {
	case "exponential":
		return random.NewExponential(d.Rate)
	case "gamma":
		return random.NewGamma(d.Rate, d.CV)
	case "constant":
		return random.NewConstant(d.Period)
	case "uniform":
		return random.NewUniform(d.Min, d.Max)
	case "discrete":
		return random.NewDiscrete(d.Values, d.Weights)
	default:
		return nil, fmt.Errorf("process %q: %w", d.Process, random.ErrInvalidDistribution)
	}
}
