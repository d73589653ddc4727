package random

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/ndes-sim/ndes/sim"
)

type mode int

const (
	live mode = iota
	recording
	replaying
)

// Generator draws values from a Distribution using one of the simulator's
// partitioned RNG streams. In record-then-replay mode it replays the same
// sequence after every simulator reset.
type Generator struct {
	sim    *sim.Simulator
	stream string
	dist   Distribution
	rng    *rand.Rand

	mode     mode
	recorded []float64
	cursor   int
}

// New creates a generator drawing from dist on the named RNG stream of s,
// and registers it with the simulator's reset registry.
func New(s *sim.Simulator, stream string, dist Distribution) *Generator {
	g := &Generator{
		sim:    s,
		stream: stream,
		dist:   dist,
		rng:    s.RNG().ForSubsystem(stream),
	}
	s.RegisterReset(g, g.onReset)
	return g
}

// NextValue returns the next draw.
func (g *Generator) NextValue() float64 {
	if g.mode == replaying && g.cursor < len(g.recorded) {
		v := g.recorded[g.cursor]
		g.cursor++
		return v
	}
	v := g.dist.Sample(g.rng)
	if g.mode != live {
		// past the end of the recording the sequence is extended
		g.recorded = append(g.recorded, v)
		g.cursor = len(g.recorded)
	}
	return v
}

// SetRate changes the rate of the underlying distribution. Values already
// recorded for replay are not affected.
func (g *Generator) SetRate(rate float64) error {
	rs, ok := g.dist.(RateSetter)
	if !ok {
		return fmt.Errorf("setting rate on %T: %w", g.dist, ErrInvalidDistribution)
	}
	return rs.SetRate(rate)
}

// RecordThenReplay starts recording draws. From the next simulator reset on,
// the recorded sequence is replayed from its beginning after every reset.
func (g *Generator) RecordThenReplay() {
	g.mode = recording
	g.recorded = g.recorded[:0]
	g.cursor = 0
}

// Replaying reports whether the generator is replaying a recording.
func (g *Generator) Replaying() bool {
	return g.mode == replaying
}

// Recorded returns the number of recorded draws.
func (g *Generator) Recorded() int {
	return len(g.recorded)
}

// Distribution returns the underlying distribution.
func (g *Generator) Distribution() Distribution {
	return g.dist
}

// Close removes the generator from the reset registry.
func (g *Generator) Close() {
	g.sim.UnregisterReset(g)
}

func (g *Generator) onReset() {
	if g.mode == live {
		return
	}
	g.mode = replaying
	g.cursor = 0
	logrus.WithFields(logrus.Fields{
		"stream":   g.stream,
		"recorded": len(g.recorded),
	}).Debug("generator rewound for replay")
}
