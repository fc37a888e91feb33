package calc

import (
	"errors"
	"fmt"
)

// ErrUndefinedRange is returned when the integration range cannot be taken
// from the samples.
var ErrUndefinedRange = errors.New("undefined integration range")

// Integrate applies the trapezoidal rule to the samples in
// [LowerIndex, UpperIndex). The result is signed.
func Integrate(set SampleSet) (float64, error) {
	lo, hi := set.LowerIndex, set.UpperIndex
	switch {
	case lo < 0:
		return 0, fmt.Errorf("%w: lower bound outside sampled domain", ErrUndefinedRange)
	case hi < 0:
		return 0, fmt.Errorf("%w: upper bound outside sampled domain", ErrUndefinedRange)
	case lo > hi:
		return 0, fmt.Errorf("%w: lower bound exceeds upper bound", ErrUndefinedRange)
	case hi > len(set.Points):
		return 0, fmt.Errorf("%w: upper index %d beyond %d samples", ErrUndefinedRange, hi, len(set.Points))
	}

	area := 0.0
	window := set.Points[lo:hi]
	for i := 1; i < len(window); i++ {
		area += set.Step * (window[i-1].Y + window[i].Y) / 2
	}
	return area, nil
}

// Area is the outcome of an integration: either a value or the reason it is
// undefined.
type Area struct {
	Value float64
	Err   error
}

// Defined reports whether Value holds a computed integral.
func (a Area) Defined() bool {
	return a.Err == nil
}

// ComputeArea wraps Integrate into an Area.
func ComputeArea(set SampleSet) Area {
	v, err := Integrate(set)
	if err != nil {
		return Area{Err: err}
	}
	return Area{Value: v}
}
