package cmd

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ndes-sim/ndes/sim"
	"github.com/ndes-sim/ndes/sim/dategen"
	"github.com/ndes-sim/ndes/sim/probe"
	"github.com/ndes-sim/ndes/sim/random"
)

// queueModel is a single-server FIFO queue fed by a date generator, with
// service times drawn from a random generator.
type queueModel struct {
	s        *sim.Simulator
	arrivals *dategen.Generator
	service  *random.Generator

	waiting []float64 // arrival dates of customers not yet in service
	busy    bool

	sojourn      *probe.Probe // exhaustive: time in system per customer
	sojournHist  *probe.Probe
	sojournEMA   *probe.Probe
	recent       *probe.Probe // sliding window over the last sojourn times
	wait         *probe.Probe // mean time in queue
	interArrival *probe.Probe
	inSystem     *probe.Probe // time-slice average of the population seen by arrivals
	departures   *probe.Probe // time-slice throughput of departures
	occupancy    *probe.Probe // periodic snapshot of the mean population
	population   *probe.Probe // running mean feeding occupancy

	// campaignMeans survives resets and collects one sojourn mean per
	// campaign.
	campaignMeans *probe.Probe
}

func newQueueModel(s *sim.Simulator, cfg ModelConfig) (*queueModel, error) {
	arrivalDist, err := cfg.Arrival.distribution()
	if err != nil {
		return nil, fmt.Errorf("arrival: %w", err)
	}
	serviceDist, err := cfg.Service.distribution()
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	m := &queueModel{
		s:        s,
		arrivals: dategen.New(random.New(s, sim.SubsystemArrival, arrivalDist)),
		service:  random.New(s, sim.SubsystemService, serviceDist),
		waiting:  make([]float64, 0),
	}
	if cfg.Replay {
		m.arrivals.RecordThenReplay()
		m.service.RecordThenReplay()
	}

	pc := cfg.Probes
	m.sojourn = probe.NewExhaustive(s, probe.WithName("sojourn"), probe.WithCapacity(pc.Capacity))
	if m.sojournHist, err = probe.NewHistogram(s, pc.Histogram.Min, pc.Histogram.Max, pc.Histogram.Buckets,
		probe.WithName("sojourn_histogram")); err != nil {
		return nil, err
	}
	if m.sojournEMA, err = probe.NewEMA(s, pc.EMA, probe.WithName("sojourn_ema")); err != nil {
		return nil, err
	}
	if m.recent, err = probe.NewSlidingWindow(s, pc.Window, probe.WithName("sojourn_recent")); err != nil {
		return nil, err
	}
	m.wait = probe.NewMean(s, probe.WithName("wait"))
	m.interArrival = probe.NewMean(s, probe.WithName("inter_arrival"))
	if m.inSystem, err = probe.NewTimeSliceAverage(s, pc.Slice, probe.WithName("in_system"),
		probe.WithCapacity(pc.Capacity)); err != nil {
		return nil, err
	}
	if m.departures, err = probe.NewTimeSliceThroughput(s, pc.Slice, probe.WithName("departures"),
		probe.WithCapacity(pc.Capacity)); err != nil {
		return nil, err
	}
	m.population = probe.NewMean(s, probe.WithName("population"))
	if m.occupancy, err = probe.NewPeriodic(s, pc.Slice, probe.WithName("occupancy"),
		probe.WithCapacity(pc.Capacity)); err != nil {
		return nil, err
	}
	m.campaignMeans = probe.NewExhaustive(s, probe.WithName("campaign_sojourn_means"))
	m.campaignMeans.SetPersistent(true)

	probe.Chain(m.sojourn, m.sojournHist)
	probe.Chain(m.sojourn, m.sojournEMA)
	probe.Chain(m.sojourn, m.recent)
	probe.Chain(m.inSystem, m.population)
	probe.AddMeanProbe(m.population, m.occupancy)
	m.arrivals.SetInterArrivalProbe(m.interArrival)

	// registered after the generators so that they rewind first
	s.RegisterReset(m, m.restart)
	m.restart()
	return m, nil
}

// restart empties the queue and schedules the first arrival of a campaign.
func (m *queueModel) restart() {
	m.waiting = m.waiting[:0]
	m.busy = false
	m.s.Add(sim.ActionFunc(m.arrive), nil, m.arrivals.NextDate(m.s.Now()))
}

func (m *queueModel) populationNow() int {
	n := len(m.waiting)
	if m.busy {
		n++
	}
	return n
}

func (m *queueModel) arrive(any) {
	now := m.s.Now()
	m.inSystem.Sample(float64(m.populationNow()))
	m.s.Add(sim.ActionFunc(m.arrive), nil, m.arrivals.NextDate(now))

	m.waiting = append(m.waiting, now)
	if !m.busy {
		m.startService()
	}
}

func (m *queueModel) startService() {
	now := m.s.Now()
	arrival := m.waiting[0]
	m.waiting = m.waiting[1:]
	m.busy = true
	m.wait.Sample(now - arrival)
	m.s.Add(sim.ActionFunc(m.depart), arrival, now+m.service.NextValue())
}

func (m *queueModel) depart(payload any) {
	arrival := payload.(float64)
	m.sojourn.Sample(m.s.Now() - arrival)
	m.departures.Sample(1)
	m.busy = false
	if len(m.waiting) > 0 {
		m.startService()
	}
}

// probes returns the probes exported after each campaign.
func (m *queueModel) probes() []*probe.Probe {
	return []*probe.Probe{
		m.sojourn, m.sojournHist, m.sojournEMA, m.recent, m.wait, m.interArrival,
		m.inSystem, m.departures, m.occupancy, m.population,
	}
}

// expectedSojourn returns 1/(µ-λ) for an M/M/1 queue, NaN for other
// models or an unstable queue.
func (m *queueModel) expectedSojourn() float64 {
	a, ok1 := m.arrivals.Values().Distribution().(*random.Exponential)
	sv, ok2 := m.service.Distribution().(*random.Exponential)
	if !ok1 || !ok2 || sv.Rate() <= a.Rate() {
		return math.NaN()
	}
	return 1 / (sv.Rate() - a.Rate())
}

// endCampaign logs the campaign results and records its mean sojourn.
func (m *queueModel) endCampaign(campaign int) {
	m.campaignMeans.Sample(m.sojourn.Mean())
	logrus.WithFields(logrus.Fields{
		"campaign":      campaign,
		"customers":     m.sojourn.Count(),
		"sojourn_mean":  m.sojourn.Mean(),
		"sojourn_ci95":  m.sojourn.ConfidenceInterval(),
		"sojourn_bci95": m.sojourn.ExperimentalBlockConfidenceInterval(),
		"sojourn_p99":   m.sojourn.Percentile(99),
		"sojourn_ema":   m.sojournEMA.Mean(),
		"wait_mean":     m.wait.Mean(),
		"ia_mean":       m.interArrival.Mean(),
		"occupancy":     m.occupancy.Mean(),
		"throughput":    m.departures.Mean(),
		"expected":      m.expectedSojourn(),
	}).Info("campaign results")
}
