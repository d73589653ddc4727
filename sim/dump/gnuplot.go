package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ndes-sim/ndes/sim/probe"
)

var (
	// ErrUnknownFormat is returned by ParseFormat for an unknown name.
	ErrUnknownFormat = errors.New("unknown dump format")
	// ErrNotRetained is returned when dumping a probe that keeps only
	// aggregates (mean, EMA).
	ErrNotRetained = errors.New("probe does not retain values")
)

// Format selects the text layout of a dump.
type Format int

const (
	// FormatGnuplot writes "date value" lines.
	FormatGnuplot Format = iota
	// FormatGnuplotIndexed writes "index value" lines.
	FormatGnuplotIndexed
)

var formatNames = map[string]Format{
	"gnuplot":         FormatGnuplot,
	"gnuplot-indexed": FormatGnuplotIndexed,
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
	return f, nil
}

func (f Format) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Write dumps p to w. Histograms are written as "edge count" lines whatever
// the format; other probes as one line per retained value.
func Write(w io.Writer, p *probe.Probe, f Format) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s (%s)\n", p.Name(), p.Kind())

	switch {
	case p.Kind() == probe.KindHistogram:
		for i := 0; i < p.BucketCount(); i++ {
			writePair(bw, p.BucketEdge(i), p.BucketValue(i))
		}
	case p.Values() != nil:
		dates, values := p.Dates(), p.Values()
		for i, v := range values {
			if f == FormatGnuplotIndexed {
				writePair(bw, float64(i), v)
			} else {
				writePair(bw, dates[i], v)
			}
		}
	default:
		return fmt.Errorf("dumping %s probe %q: %w", p.Kind(), p.Name(), ErrNotRetained)
	}
	return bw.Flush()
}

func writePair(w *bufio.Writer, x, y float64) {
	w.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	w.WriteByte(' ')
	w.WriteString(strconv.FormatFloat(y, 'g', -1, 64))
	w.WriteByte('\n')
}
