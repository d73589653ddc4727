package dump

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSink_WritesSamplesAndSummaries(t *testing.T) {
	// GIVEN a sink in a fresh directory
	s := newTestSimulator(t)
	path := filepath.Join(t.TempDir(), "probes.sqlite3")
	sink, err := NewSQLiteSink(path)
	require.NoError(t, err)
	assert.NotEmpty(t, sink.RunID())

	// WHEN an exhaustive probe and a histogram are written and the sink closed
	require.NoError(t, sink.WriteProbe(0, latencyProbe(t, s)))
	require.NoError(t, sink.WriteProbe(0, sizesHistogram(t, s)))
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())

	// THEN every retained value and one summary per probe are stored
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var samples, summaries int
	require.NoError(t, db.QueryRow(`select count(*) from samples where probe = 'latency'`).Scan(&samples))
	require.NoError(t, db.QueryRow(`select count(*) from summaries`).Scan(&summaries))
	assert.Equal(t, 3, samples)
	assert.Equal(t, 2, summaries)

	var count int
	var mean float64
	require.NoError(t, db.QueryRow(`select count, mean from summaries where probe = 'sizes'`).Scan(&count, &mean))
	assert.Equal(t, 3, count)
	assert.InDelta(t, (2.5+9.99+3)/3, mean, 1e-12)
}

func TestSQLiteSink_RefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probes.sqlite3")
	sink, err := NewSQLiteSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	_, err = NewSQLiteSink(path)

	assert.Error(t, err)
}

func TestSQLiteSink_WriteAfterCloseFails(t *testing.T) {
	s := newTestSimulator(t)
	sink, err := NewSQLiteSink(filepath.Join(t.TempDir(), "probes.sqlite3"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	assert.Error(t, sink.WriteProbe(1, latencyProbe(t, s)))
}
