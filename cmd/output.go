package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ndes-sim/ndes/sim/dump"
	"github.com/ndes-sim/ndes/sim/probe"
)

// exporter writes probe content at the end of each campaign.
type exporter struct {
	cfg    DumpConfig
	format dump.Format
	sink   *dump.SQLiteSink
}

func newExporter(cfg DumpConfig) (*exporter, error) {
	e := &exporter{cfg: cfg}
	if cfg.Dir != "" {
		f, err := dump.ParseFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
		e.format = f
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating dump directory: %w", err)
		}
	}
	if cfg.SQLite != "" {
		path := cfg.SQLite
		if path == "auto" {
			path = ""
		}
		sink, err := dump.NewSQLiteSink(path)
		if err != nil {
			return nil, err
		}
		e.sink = sink
	}
	return e, nil
}

func (e *exporter) campaign(campaign int, probes []*probe.Probe) error {
	for _, p := range probes {
		if e.cfg.Dir != "" {
			if err := e.writeFile(campaign, p); err != nil {
				return err
			}
		}
		if e.sink != nil {
			if err := e.sink.WriteProbe(campaign, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *exporter) writeFile(campaign int, p *probe.Probe) error {
	path := filepath.Join(e.cfg.Dir, fmt.Sprintf("%s_%d.dat", p.Name(), campaign))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = dump.Write(f, p, e.format)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if errors.Is(err, dump.ErrNotRetained) {
		// aggregate-only probes are reported in the logs and the database
		return os.Remove(path)
	}
	return err
}

// finish writes the Prometheus textfile and closes the database.
func (e *exporter) finish(probes []*probe.Probe) error {
	if e.cfg.Prometheus != "" {
		if err := dump.WriteTextfile(e.cfg.Prometheus, dump.NewCollector("ndes", probes...)); err != nil {
			return err
		}
		logrus.Infof("probe aggregates written to %s", e.cfg.Prometheus)
	}
	if e.sink != nil {
		return e.sink.Close()
	}
	return nil
}
