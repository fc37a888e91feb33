// Package calc samples functions and integrates them numerically.
package calc

import (
	"errors"
	"math"

	"github.com/verte-zerg/tuigral/internal/model"
)

// DefaultStep is the sampling distance between consecutive x values.
const DefaultStep = 0.001

// MaxSamples caps the size of a SampleSet.
const MaxSamples = 5_000_000

var (
	// ErrDegenerateWindow is returned when a range has no usable width.
	ErrDegenerateWindow = errors.New("degenerate window")
	// ErrTooManySamples is returned when the window holds more than MaxSamples steps.
	ErrTooManySamples = errors.New("too many samples")
)

// SampleSet holds the sampled function and the sample indices of the
// integration bounds. An index of -1 means the bound lies outside the samples.
type SampleSet struct {
	Points     []model.Point
	Step       float64
	LowerIndex int
	UpperIndex int
}

// HasRange reports whether both bound indices are set.
func (s SampleSet) HasRange() bool {
	return s.LowerIndex >= 0 && s.UpperIndex >= 0
}

// Sample evaluates f at window.XMin + i*step while x < window.XMax. Each bound
// index is the first sample with x >= that bound.
func Sample(f func(float64) float64, window model.PlotWindow, bounds model.Bounds, step float64) (SampleSet, error) {
	set := SampleSet{Step: step, LowerIndex: -1, UpperIndex: -1}
	if !(step > 0) || math.IsInf(step, 0) {
		return set, ErrDegenerateWindow
	}
	if !(window.XMin < window.XMax) || math.IsInf(window.XSpan(), 0) {
		return set, ErrDegenerateWindow
	}

	count := math.Ceil(window.XSpan() / step)
	if count > MaxSamples {
		return set, ErrTooManySamples
	}
	n := int(count)
	set.Points = make([]model.Point, 0, n)
	for i := 0; ; i++ {
		x := window.XMin + float64(i)*step
		if x >= window.XMax {
			break
		}
		if set.LowerIndex < 0 && x >= bounds.Lower {
			set.LowerIndex = i
		}
		if set.UpperIndex < 0 && x >= bounds.Upper {
			set.UpperIndex = i
		}
		set.Points = append(set.Points, model.Point{X: x, Y: f(x)})
	}
	return set, nil
}
