package calc

import (
	"math"

	"github.com/verte-zerg/tuigral/internal/model"
)

// LineResolution is the number of steps a marker line is split into.
const LineResolution = 100

// BoundLines are the overlay markers drawn on top of the function.
type BoundLines struct {
	Lower []model.Point
	Upper []model.Point
	Zero  []model.Point
}

// BuildBoundLines computes all overlay lines for the window. A degenerate
// window yields an empty zero line and ErrDegenerateWindow; the bound lines are
// still returned.
func BuildBoundLines(f func(float64) float64, window model.PlotWindow, bounds model.Bounds) (BoundLines, error) {
	lines := BoundLines{
		Lower: BoundLine(f, bounds.Lower, window),
		Upper: BoundLine(f, bounds.Upper, window),
	}
	zero, err := ZeroLine(window)
	lines.Zero = zero
	return lines, err
}

// BoundLine returns a vertical line at boundX rising from window.YMin to
// f(boundX). When f(boundX) is at or below YMin, or not finite, the line is
// empty.
func BoundLine(f func(float64) float64, boundX float64, window model.PlotWindow) []model.Point {
	height := f(boundX)
	if !isFinite(height) || !isFinite(window.YMin) || height <= window.YMin {
		return nil
	}
	step := math.Abs(height-window.YMin) / LineResolution
	if step == 0 {
		return nil
	}
	line := make([]model.Point, 0, LineResolution)
	for i := 0; i < LineResolution; i++ {
		y := window.YMin + float64(i)*step
		if y >= height {
			break
		}
		line = append(line, model.Point{X: boundX, Y: y})
	}
	return line
}

// ZeroLine returns the horizontal y = 0 line from window.XMin towards
// window.XMax. A zero or non-finite span returns ErrDegenerateWindow.
func ZeroLine(window model.PlotWindow) ([]model.Point, error) {
	span := math.Abs(window.XSpan())
	if span == 0 || !isFinite(span) {
		return nil, ErrDegenerateWindow
	}
	step := span / LineResolution
	line := make([]model.Point, 0, LineResolution)
	for i := 0; i < LineResolution; i++ {
		x := window.XMin + float64(i)*step
		if x >= window.XMax {
			break
		}
		line = append(line, model.Point{X: x, Y: 0})
	}
	return line, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
