package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndes-sim/ndes/sim"
)

func TestPrintSummary_ResultsPrintedToStdout(t *testing.T) {
	// GIVEN a summary of two campaigns
	r := &runSummary{
		Campaigns:    2,
		SojournMeans: []float64{1.9, 2.1},
		SojournCI95:  0.2,
		Expected:     2,
		Stats:        sim.Stats{Fired: 1234},
	}

	// Capture stdout
	old := os.Stdout
	rd, w, _ := os.Pipe()
	os.Stdout = w

	// WHEN printSummary is called
	printSummary(r)

	// Restore stdout and read captured output
	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, rd)
	output := buf.String()

	// THEN every campaign mean and the event count appear on stdout
	assert.Contains(t, output, "Simulation Summary")
	assert.Contains(t, output, "Sojourn mean [  1] : 2.1")
	assert.Contains(t, output, "Events fired       : 1234")
}

func TestApplyFlags_OnlyChangedFlagsOverrideFile(t *testing.T) {
	// GIVEN a model loaded from a file and a command where only --until is set
	cmd := &cobra.Command{Use: "test"}
	var u float64
	var c int
	cmd.Flags().Float64Var(&u, "until", 1, "")
	cmd.Flags().IntVar(&c, "campaigns", 1, "")
	require.NoError(t, cmd.Flags().Set("until", "250"))
	until = 250

	prevConfig := configPath
	configPath = "model.yaml"
	defer func() { configPath = prevConfig }()

	cfg := DefaultModelConfig()
	cfg.Campaigns = 5
	cfg.Seed = 99

	// WHEN flags are applied
	applyFlags(cmd, &cfg)

	// THEN the changed flag wins and file values are kept otherwise
	assert.Equal(t, 250.0, cfg.Until)
	assert.Equal(t, 5, cfg.Campaigns)
	assert.Equal(t, int64(99), cfg.Seed)
}
