package condeval

import (
	"math"

	"github.com/smauto-dev/engine/domain/condition"
	"github.com/smauto-dev/engine/infrastructure/errors"
)

// aggregate reduces a (possibly zero-padded) buffer snapshot with fn,
// following the sample-statistics definitions: std/var use Bessel's
// correction (divide by N-1), never N.
func aggregate(fn condition.AggregateFunc, buf []float64) (float64, error) {
	switch fn {
	case condition.AggMean:
		return mean(buf), nil
	case condition.AggMin:
		return extremum(buf, false), nil
	case condition.AggMax:
		return extremum(buf, true), nil
	case condition.AggVar:
		return sampleVariance(buf)
	case condition.AggStd:
		v, err := sampleVariance(buf)
		if err != nil {
			return 0, err
		}
		return math.Sqrt(v), nil
	default:
		return 0, errors.EvaluationErrorf("unknown aggregate function %q", fn)
	}
}

func mean(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	var sum float64
	for _, v := range buf {
		sum += v
	}
	return sum / float64(len(buf))
}

func extremum(buf []float64, wantMax bool) float64 {
	if len(buf) == 0 {
		return 0
	}
	best := buf[0]
	for _, v := range buf[1:] {
		if (wantMax && v > best) || (!wantMax && v < best) {
			best = v
		}
	}
	return best
}

// sampleVariance returns the unbiased (N-1) sample variance. A buffer of
// fewer than 2 samples has no meaningful sample variance; this is the
// degenerate-buffer case §4.C requires resolve to a caught error rather than
// a division by zero.
func sampleVariance(buf []float64) (float64, error) {
	if len(buf) < 2 {
		return 0, errors.EvaluationErrorf("sample variance requires at least 2 samples, got %d", len(buf))
	}
	m := mean(buf)
	var sumSq float64
	for _, v := range buf {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(buf)-1), nil
}
