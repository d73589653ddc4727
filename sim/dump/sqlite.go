package dump

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"

	"github.com/ndes-sim/ndes/sim/probe"
)

type sampleRow struct {
	campaign int
	probe    string
	index    int
	date     float64
	value    float64
}

// SQLiteSink stores probe values and summaries in a SQLite database. Rows
// are buffered and written in batches; pending rows are flushed at Close
// and on process exit through atexit.
type SQLiteSink struct {
	db         *sql.DB
	path       string
	run        string
	sampleStmt *sql.Stmt
	statStmt   *sql.Stmt

	pending   []sampleRow
	batchSize int
	closed    bool
}

// NewSQLiteSink creates a new database at path. An empty path picks
// "ndes_<id>.sqlite3" in the working directory. It fails if the file
// already exists.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	run := xid.New().String()
	if path == "" {
		path = "ndes_" + run + ".sqlite3"
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("creating sqlite sink: file %s already exists", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	s := &SQLiteSink{
		db:        db,
		path:      path,
		run:       run,
		batchSize: 100000,
	}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	atexit.Register(func() {
		if err := s.Close(); err != nil {
			logrus.Errorf("closing sqlite sink %s: %v", s.path, err)
		}
	})
	logrus.Infof("probe dump collected in database %s", path)
	return s, nil
}

// Path returns the database file.
func (s *SQLiteSink) Path() string { return s.path }

// RunID returns the identifier stored with every row of this sink.
func (s *SQLiteSink) RunID() string { return s.run }

func (s *SQLiteSink) createTables() error {
	stmts := []string{
		`create table samples
		(
			run      varchar(20)  not null,
			campaign integer      not null,
			probe    varchar(200) not null,
			idx      integer      not null,
			date     float        not null,
			value    float
		);`,
		`create index samples_probe_index on samples (probe);`,
		`create table summaries
		(
			run        varchar(20)  not null,
			campaign   integer      not null,
			probe      varchar(200) not null,
			kind       varchar(50)  not null,
			count      integer      not null,
			mean       float,
			variance   float,
			min        float,
			max        float,
			throughput float
		);`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("creating tables in %s: %w", s.path, err)
		}
	}

	var err error
	s.sampleStmt, err = s.db.Prepare(
		`insert into samples (run, campaign, probe, idx, date, value) values (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	s.statStmt, err = s.db.Prepare(
		`insert into summaries (run, campaign, probe, kind, count, mean, variance, min, max, throughput)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	return err
}

// WriteProbe records the summary of p immediately and buffers its retained
// values (bucket edges and counts for a histogram).
func (s *SQLiteSink) WriteProbe(campaign int, p *probe.Probe) error {
	if s.closed {
		return fmt.Errorf("writing probe %q: sqlite sink %s is closed", p.Name(), s.path)
	}
	_, err := s.statStmt.Exec(s.run, campaign, p.Name(), p.Kind().String(), p.Count(),
		p.Mean(), p.Variance(), p.Min(), p.Max(), p.Throughput())
	if err != nil {
		return fmt.Errorf("writing summary of probe %q: %w", p.Name(), err)
	}

	if p.Kind() == probe.KindHistogram {
		for i := 0; i < p.BucketCount(); i++ {
			s.pending = append(s.pending, sampleRow{campaign, p.Name(), i, p.BucketEdge(i), p.BucketValue(i)})
		}
	} else {
		dates := p.Dates()
		for i, v := range p.Values() {
			s.pending = append(s.pending, sampleRow{campaign, p.Name(), i, dates[i], v})
		}
	}
	if len(s.pending) >= s.batchSize {
		return s.Flush()
	}
	return nil
}

// Flush writes all buffered values in one transaction.
func (s *SQLiteSink) Flush() error {
	if len(s.pending) == 0 || s.closed {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt := tx.Stmt(s.sampleStmt)
	for _, r := range s.pending {
		if _, err := stmt.Exec(s.run, r.campaign, r.probe, r.index, r.date, r.value); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting value %d of probe %q: %w", r.index, r.probe, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.pending = nil
	return nil
}

// Close flushes pending rows and closes the database. Later calls do
// nothing.
func (s *SQLiteSink) Close() error {
	if s.closed {
		return nil
	}
	err := s.Flush()
	s.closed = true
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}
