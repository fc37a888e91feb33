package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/verte-zerg/tuigral/internal/model"
)

var defaultWindow = model.PlotWindow{XMin: -5, XMax: 5, YMin: -10, YMax: 10}

func identity(x float64) float64 { return x }

func zero(float64) float64 { return 0 }

func TestSampleCountAndDomain(t *testing.T) {
	cases := []struct {
		window model.PlotWindow
		step   float64
	}{
		{window: model.PlotWindow{XMin: 0, XMax: 1, YMin: -1, YMax: 1}, step: 0.25},
		{window: model.PlotWindow{XMin: -2, XMax: 3, YMin: -1, YMax: 1}, step: 0.5},
		{window: model.PlotWindow{XMin: 0, XMax: 1, YMin: -1, YMax: 1}, step: 0.3},
		{window: model.PlotWindow{XMin: -8, XMax: 8, YMin: -1, YMax: 1}, step: 0.0625},
		{window: model.PlotWindow{XMin: 1, XMax: 1.5, YMin: -1, YMax: 1}, step: 2},
	}
	for _, tc := range cases {
		set, err := Sample(identity, tc.window, model.Bounds{}, tc.step)
		if err != nil {
			t.Fatalf("sample %+v: %v", tc.window, err)
		}
		want := int(math.Ceil(tc.window.XSpan() / tc.step))
		if len(set.Points) != want {
			t.Fatalf("window %+v step %v: expected %d samples, got %d", tc.window, tc.step, want, len(set.Points))
		}
		for _, p := range set.Points {
			if p.X < tc.window.XMin || p.X >= tc.window.XMax {
				t.Fatalf("sample x %v outside [%v, %v)", p.X, tc.window.XMin, tc.window.XMax)
			}
			if p.Y != p.X {
				t.Fatalf("expected y == x, got %+v", p)
			}
		}
	}
}

func TestSampleBoundIndices(t *testing.T) {
	window := model.PlotWindow{XMin: 0, XMax: 4, YMin: -1, YMax: 1}
	set, err := Sample(identity, window, model.Bounds{Lower: 1, Upper: 2.1}, 0.5)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if set.LowerIndex != 2 {
		t.Fatalf("expected lower index 2, got %d", set.LowerIndex)
	}
	if set.UpperIndex != 5 {
		t.Fatalf("expected upper index 5, got %d", set.UpperIndex)
	}
}

func TestSampleEqualBoundsShareIndex(t *testing.T) {
	set, err := Sample(identity, defaultWindow, model.Bounds{}, 0.5)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if set.LowerIndex != 10 || set.UpperIndex != 10 {
		t.Fatalf("expected both indices at 10, got %d and %d", set.LowerIndex, set.UpperIndex)
	}
}

func TestSampleBoundsOutsideWindow(t *testing.T) {
	set, err := Sample(identity, defaultWindow, model.Bounds{Lower: -7, Upper: 5}, 0.5)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if set.LowerIndex != 0 {
		t.Fatalf("bound below window should map to the first sample, got %d", set.LowerIndex)
	}
	if set.UpperIndex != -1 {
		t.Fatalf("bound at x_max should stay unset, got %d", set.UpperIndex)
	}
	if set.HasRange() {
		t.Fatalf("expected no range")
	}
}

func TestSampleRejectsDegenerateInput(t *testing.T) {
	cases := []struct {
		window model.PlotWindow
		step   float64
	}{
		{window: defaultWindow, step: 0},
		{window: defaultWindow, step: -0.1},
		{window: defaultWindow, step: math.NaN()},
		{window: defaultWindow, step: math.Inf(1)},
		{window: model.PlotWindow{XMin: 1, XMax: 1}, step: 0.1},
		{window: model.PlotWindow{XMin: 2, XMax: 1}, step: 0.1},
		{window: model.PlotWindow{XMin: math.Inf(-1), XMax: 1}, step: 0.1},
	}
	for _, tc := range cases {
		if _, err := Sample(identity, tc.window, model.Bounds{}, tc.step); !errors.Is(err, ErrDegenerateWindow) {
			t.Fatalf("window %+v step %v: expected ErrDegenerateWindow, got %v", tc.window, tc.step, err)
		}
	}
}

func TestSampleRejectsHugeWindows(t *testing.T) {
	window := model.PlotWindow{XMin: -1e6, XMax: 1e6, YMin: -1, YMax: 1}
	if _, err := Sample(identity, window, model.Bounds{}, DefaultStep); !errors.Is(err, ErrTooManySamples) {
		t.Fatalf("expected ErrTooManySamples, got %v", err)
	}
}

func TestIntegrateIdentity(t *testing.T) {
	set, err := Sample(identity, defaultWindow, model.Bounds{Lower: 0, Upper: 2}, DefaultStep)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	area, err := Integrate(set)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	if math.Abs(area-2) > 0.01 {
		t.Fatalf("expected area near 2, got %v", area)
	}
}

func TestIntegrateMatchesAnalyticArea(t *testing.T) {
	cases := []model.Bounds{
		{Lower: -4, Upper: -1},
		{Lower: -2, Upper: 3},
		{Lower: 1, Upper: 4.5},
	}
	for _, b := range cases {
		set, err := Sample(identity, defaultWindow, b, DefaultStep)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		area, err := Integrate(set)
		if err != nil {
			t.Fatalf("integrate %+v: %v", b, err)
		}
		want := (b.Upper*b.Upper - b.Lower*b.Lower) / 2
		if math.Abs(area-want) > 0.01 {
			t.Fatalf("bounds %+v: expected %v, got %v", b, want, area)
		}
	}
}

func TestIntegrateSignedArea(t *testing.T) {
	set, err := Sample(identity, defaultWindow, model.Bounds{Lower: -3, Upper: -1}, DefaultStep)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	area, err := Integrate(set)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	if area >= 0 {
		t.Fatalf("expected negative area, got %v", area)
	}
}

func TestIntegrateConstantZero(t *testing.T) {
	for _, b := range []model.Bounds{{Lower: -5, Upper: 4}, {Lower: 0, Upper: 0}, {Lower: 1, Upper: 2}} {
		set, err := Sample(zero, defaultWindow, b, DefaultStep)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		area, err := Integrate(set)
		if err != nil {
			t.Fatalf("integrate %+v: %v", b, err)
		}
		if area != 0 {
			t.Fatalf("bounds %+v: expected 0, got %v", b, area)
		}
	}
}

func TestIntegrateIsIdempotent(t *testing.T) {
	set, err := Sample(func(x float64) float64 { return x * x }, defaultWindow, model.Bounds{Lower: -1, Upper: 3}, DefaultStep)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	first, err := Integrate(set)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	second, err := Integrate(set)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

func TestIntegrateInvertedBounds(t *testing.T) {
	set, err := Sample(identity, defaultWindow, model.Bounds{Lower: 3, Upper: 1}, DefaultStep)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if _, err := Integrate(set); !errors.Is(err, ErrUndefinedRange) {
		t.Fatalf("expected ErrUndefinedRange, got %v", err)
	}
	if area := ComputeArea(set); area.Defined() {
		t.Fatalf("expected undefined area, got %+v", area)
	}
}

func TestIntegrateUnsetIndices(t *testing.T) {
	cases := []SampleSet{
		{Points: make([]model.Point, 4), Step: 1, LowerIndex: -1, UpperIndex: 2},
		{Points: make([]model.Point, 4), Step: 1, LowerIndex: 0, UpperIndex: -1},
		{Points: make([]model.Point, 4), Step: 1, LowerIndex: 0, UpperIndex: 5},
	}
	for _, set := range cases {
		if _, err := Integrate(set); !errors.Is(err, ErrUndefinedRange) {
			t.Fatalf("set %+v: expected ErrUndefinedRange, got %v", set, err)
		}
	}
}

func TestIntegrateHalfOpenRange(t *testing.T) {
	set := SampleSet{
		Points: []model.Point{
			{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}, {X: 3, Y: 100},
		},
		Step:       1,
		LowerIndex: 0,
		UpperIndex: 3,
	}
	area, err := Integrate(set)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	if area != 6 {
		t.Fatalf("expected 6, got %v", area)
	}
}

func TestBoundLineRisesToFunction(t *testing.T) {
	line := BoundLine(func(float64) float64 { return 10 }, 2, model.PlotWindow{XMin: 0, XMax: 4, YMin: 0, YMax: 20})
	if len(line) != LineResolution {
		t.Fatalf("expected %d points, got %d", LineResolution, len(line))
	}
	for _, p := range line {
		if p.X != 2 {
			t.Fatalf("expected x = 2, got %v", p.X)
		}
		if p.Y < 0 || p.Y >= 10 {
			t.Fatalf("y %v outside [0, 10)", p.Y)
		}
	}
	if line[0].Y != 0 {
		t.Fatalf("expected line to start at y_min, got %v", line[0].Y)
	}
}

func TestBoundLineEmptyBelowWindow(t *testing.T) {
	window := model.PlotWindow{XMin: -5, XMax: 5, YMin: -10, YMax: 10}
	cases := []func(float64) float64{
		func(float64) float64 { return -20 },
		func(float64) float64 { return -10 },
		func(float64) float64 { return math.NaN() },
		func(float64) float64 { return math.Inf(1) },
	}
	for i, f := range cases {
		if line := BoundLine(f, 0, window); len(line) != 0 {
			t.Fatalf("case %d: expected empty line, got %d points", i, len(line))
		}
	}
}

func TestZeroLine(t *testing.T) {
	line, err := ZeroLine(defaultWindow)
	if err != nil {
		t.Fatalf("zero line: %v", err)
	}
	if len(line) != LineResolution {
		t.Fatalf("expected %d points, got %d", LineResolution, len(line))
	}
	for _, p := range line {
		if p.Y != 0 {
			t.Fatalf("expected y = 0, got %v", p.Y)
		}
		if p.X < defaultWindow.XMin || p.X >= defaultWindow.XMax {
			t.Fatalf("x %v outside window", p.X)
		}
	}
}

func TestZeroLineDegenerate(t *testing.T) {
	line, err := ZeroLine(model.PlotWindow{XMin: 3, XMax: 3, YMin: -1, YMax: 1})
	if !errors.Is(err, ErrDegenerateWindow) {
		t.Fatalf("expected ErrDegenerateWindow, got %v", err)
	}
	if len(line) != 0 {
		t.Fatalf("expected empty line, got %d points", len(line))
	}
}

func TestBuildBoundLines(t *testing.T) {
	lines, err := BuildBoundLines(identity, defaultWindow, model.Bounds{Lower: 1, Upper: 2})
	if err != nil {
		t.Fatalf("build lines: %v", err)
	}
	if len(lines.Lower) == 0 || len(lines.Upper) == 0 || len(lines.Zero) == 0 {
		t.Fatalf("expected all lines populated: %d %d %d", len(lines.Lower), len(lines.Upper), len(lines.Zero))
	}
	if lines.Lower[0].X != 1 || lines.Upper[0].X != 2 {
		t.Fatalf("unexpected bound line positions")
	}
}
