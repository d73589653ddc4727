package dump

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndes-sim/ndes/sim/probe"
)

func TestWrite_Golden(t *testing.T) {
	s := newTestSimulator(t)
	latency := latencyProbe(t, s)
	sizes := sizesHistogram(t, s)

	tests := []struct {
		name   string
		p      *probe.Probe
		format Format
	}{
		{"exhaustive_dated", latency, FormatGnuplot},
		{"exhaustive_indexed", latency, FormatGnuplotIndexed},
		{"histogram", sizes, FormatGnuplot},
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tc.p, tc.format))
			g.Assert(t, tc.name, buf.Bytes())
		})
	}
}

func TestWrite_AggregateOnlyProbeIsRejected(t *testing.T) {
	s := newTestSimulator(t)
	var buf bytes.Buffer

	err := Write(&buf, probe.NewMean(s), FormatGnuplot)

	assert.True(t, errors.Is(err, ErrNotRetained))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("gnuplot-indexed")
	require.NoError(t, err)
	assert.Equal(t, FormatGnuplotIndexed, f)
	assert.Equal(t, "gnuplot-indexed", f.String())

	_, err = ParseFormat("csv")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}
