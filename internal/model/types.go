// Package model defines shared data structures.
package model

import "time"

// Config defines the startup settings of a session.
type Config struct {
	Function string
	Window   PlotWindow
	Bounds   Bounds
	Step     float64
}

// Point is a single (x, y) sample.
type Point struct {
	X float64
	Y float64
}

// PlotWindow is the visible area of the chart.
type PlotWindow struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

// XSpan returns the width of the window.
func (w PlotWindow) XSpan() float64 {
	return w.XMax - w.XMin
}

// Valid reports whether both axis ranges are non-empty.
func (w PlotWindow) Valid() bool {
	return w.XMin < w.XMax && w.YMin < w.YMax
}

// Bounds holds the limits of integration. Lower may exceed Upper.
type Bounds struct {
	Lower float64
	Upper float64
}

// Computation records one evaluated integral.
type Computation struct {
	ComputedAt time.Time
	Function   string
	Window     PlotWindow
	Bounds     Bounds
	Step       float64
	Area       float64
}

// HistoryEntry is a stored computation.
type HistoryEntry struct {
	ID int64
	Computation
}
