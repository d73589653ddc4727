package probe

import (
	"fmt"

	"github.com/ndes-sim/ndes/sim"
)

// ExhaustiveToHistogram feeds every sample retained by the exhaustive probe
// src into the histogram probe dst. Observers of dst are not notified.
func ExhaustiveToHistogram(src, dst *Probe) error {
	if err := expectKinds(src, KindExhaustive, dst, KindHistogram); err != nil {
		return err
	}
	dates, values := src.agg.(*exhaustive).snapshot()
	for i, v := range values {
		dst.recordAt("ExhaustiveToHistogram", dates[i], v)
	}
	return nil
}

// ExhaustiveToBlockMean feeds dst with the mean of each full block of
// blockSize consecutive samples of the exhaustive probe src, dated at the
// block's last sample. A trailing partial block is ignored.
func ExhaustiveToBlockMean(src, dst *Probe, blockSize int) error {
	if src == nil || dst == nil {
		return fmt.Errorf("converting to block means: %w", ErrKindMismatch)
	}
	if src.kind != KindExhaustive {
		return fmt.Errorf("converting %s probe %q to block means: %w", src.kind, src.name, ErrKindMismatch)
	}
	if blockSize < 1 {
		return fmt.Errorf("converting probe %q to blocks of %d: %w", src.name, blockSize, ErrInvalidWindow)
	}
	dates, values := src.agg.(*exhaustive).snapshot()
	for end := blockSize; end <= len(values); end += blockSize {
		block := accumulate(values[end-blockSize : end])
		dst.recordAt("ExhaustiveToBlockMean", dates[end-1], block.mean())
	}
	return nil
}

func expectKinds(src *Probe, srcKind Kind, dst *Probe, dstKind Kind) error {
	if src == nil || dst == nil {
		return fmt.Errorf("converting %s to %s: %w", srcKind, dstKind, ErrKindMismatch)
	}
	if src.kind != srcKind || dst.kind != dstKind {
		return fmt.Errorf("converting %s probe %q to %s probe %q: %w",
			src.kind, src.name, dst.kind, dst.name, ErrKindMismatch)
	}
	return nil
}

// recordAt folds v into the aggregate as if sampled at date, bypassing the
// graph and inter-arrival tracking.
func (p *Probe) recordAt(op string, date, v float64) {
	if p.deleted {
		return
	}
	if err := p.agg.record(date, v); err != nil {
		sim.Fatalf(op, "probe %q (%s): %v after %d samples", p.name, p.kind, err, p.agg.count())
	}
}
