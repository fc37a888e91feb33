// Package session holds the calculator state and routes input events to it.
package session

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/tuigral/internal/calc"
	"github.com/verte-zerg/tuigral/internal/expression"
	"github.com/verte-zerg/tuigral/internal/model"
)

// Screen is the active top-level screen.
type Screen int

// Screens.
const (
	ScreenMain Screen = iota
	ScreenSettings
)

// ParseFunc converts formula text into a function.
type ParseFunc func(text string) (expression.Func, error)

// Recorder receives every computation with a defined area.
type Recorder interface {
	Record(ctx context.Context, c model.Computation) error
}

// Option configures a Session.
type Option func(*Session)

// WithParser replaces the expression parser.
func WithParser(p ParseFunc) Option {
	return func(s *Session) {
		s.parse = p
	}
}

// WithRecorder records committed computations.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithClock sets the time source used for recorded computations.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Status is the outcome of the last commit.
type Status struct {
	Text string
	Err  error
}

// Session owns the committed inputs, the text buffers and every derived
// result. It is not safe for concurrent use.
type Session struct {
	parse    ParseFunc
	recorder Recorder
	now      func() time.Time

	functionText string
	fn           func(float64) float64
	window       model.PlotWindow
	bounds       model.Bounds
	step         float64

	buffers [fieldCount]string

	samples calc.SampleSet
	lines   calc.BoundLines
	area    calc.Area

	grid   Grid
	screen Screen
	status Status
	exit   bool
}

// New builds a session from startup settings and computes the initial
// samples, lines and area.
func New(cfg model.Config, opts ...Option) (*Session, error) {
	s := &Session{
		parse: expression.Parse,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !(cfg.Step > 0) || math.IsInf(cfg.Step, 0) {
		return nil, fmt.Errorf("step must be a positive number, got %v", cfg.Step)
	}
	if !cfg.Window.Valid() {
		return nil, fmt.Errorf("%w: x [%g, %g] y [%g, %g]", ErrInvalidWindow,
			cfg.Window.XMin, cfg.Window.XMax, cfg.Window.YMin, cfg.Window.YMax)
	}
	fn, err := s.parse(cfg.Function)
	if err != nil {
		return nil, &ParseError{Field: FieldFunction, Input: cfg.Function, Err: err}
	}
	s.step = cfg.Step
	if err := s.apply(strings.TrimSpace(cfg.Function), fn, cfg.Window, cfg.Bounds); err != nil {
		return nil, err
	}

	s.buffers[FieldFunction] = s.functionText
	s.buffers[FieldLowerBound] = formatNumber(cfg.Bounds.Lower)
	s.buffers[FieldUpperBound] = formatNumber(cfg.Bounds.Upper)
	s.buffers[FieldMinX] = formatNumber(cfg.Window.XMin)
	s.buffers[FieldMaxX] = formatNumber(cfg.Window.XMax)
	s.buffers[FieldMinY] = formatNumber(cfg.Window.YMin)
	s.buffers[FieldMaxY] = formatNumber(cfg.Window.YMax)
	return s, nil
}

// Exited reports whether the user asked to quit.
func (s *Session) Exited() bool {
	return s.exit
}

// Screen returns the active screen.
func (s *Session) Screen() Screen {
	return s.screen
}

// Focus returns the focused settings field.
func (s *Session) Focus() Field {
	return s.grid.Focus()
}

// Buffer returns the text buffer of f. Fields without a buffer return "".
func (s *Session) Buffer(f Field) string {
	if !f.HasBuffer() {
		return ""
	}
	return s.buffers[f]
}

// Area returns the last computed area.
func (s *Session) Area() calc.Area {
	return s.area
}

// Samples returns the current sample set. Callers must not modify it.
func (s *Session) Samples() calc.SampleSet {
	return s.samples
}

// Window returns the committed plot window.
func (s *Session) Window() model.PlotWindow {
	return s.window
}

// Bounds returns the committed integration bounds.
func (s *Session) Bounds() model.Bounds {
	return s.bounds
}

// Function returns the committed formula text.
func (s *Session) Function() string {
	return s.functionText
}

// Status returns the outcome of the last commit.
func (s *Session) Status() Status {
	return s.status
}

// View is a read-only snapshot of everything the renderer draws.
type View struct {
	Samples   []model.Point
	LowerLine []model.Point
	UpperLine []model.Point
	ZeroLine  []model.Point
	Window    model.PlotWindow
	Bounds    model.Bounds
	Function  string
	Area      calc.Area
	Focus     Field
	FocusRow  int
	FocusCol  int
	Screen    Screen
	Status    Status
	buffers   [fieldCount]string
}

// Buffer returns the text buffer of f as it was when the view was taken.
func (v View) Buffer(f Field) string {
	if !f.HasBuffer() {
		return ""
	}
	return v.buffers[f]
}

// View takes a snapshot for rendering.
func (s *Session) View() View {
	row, col := s.grid.Position()
	return View{
		Samples:   s.samples.Points,
		LowerLine: s.lines.Lower,
		UpperLine: s.lines.Upper,
		ZeroLine:  s.lines.Zero,
		Window:    s.window,
		Bounds:    s.bounds,
		Function:  s.functionText,
		Area:      s.area,
		Focus:     s.grid.Focus(),
		FocusRow:  row,
		FocusCol:  col,
		Screen:    s.screen,
		Status:    s.status,
		buffers:   s.buffers,
	}
}

// commit parses the focused buffer and, on success, recomputes everything
// that depends on it. On failure the session is left untouched.
func (s *Session) commit(f Field) error {
	switch f {
	case FieldRecalculateArea:
		s.area = calc.ComputeArea(s.samples)
		s.record()
		return nil
	case FieldFunction:
		text := s.buffers[f]
		fn, err := s.parse(text)
		if err != nil {
			return &ParseError{Field: f, Input: text, Err: err}
		}
		if err := s.apply(strings.TrimSpace(text), fn, s.window, s.bounds); err != nil {
			return err
		}
		s.record()
		return nil
	}

	v, err := parseNumber(s.buffers[f])
	if err != nil {
		return &ParseError{Field: f, Input: s.buffers[f], Err: err}
	}
	window, bounds := s.window, s.bounds
	switch f {
	case FieldLowerBound:
		bounds.Lower = v
	case FieldUpperBound:
		bounds.Upper = v
	case FieldMinX:
		window.XMin = v
	case FieldMaxX:
		window.XMax = v
	case FieldMinY:
		window.YMin = v
	case FieldMaxY:
		window.YMax = v
	default:
		return fmt.Errorf("field %d cannot be committed", f)
	}
	if window.XMin >= window.XMax {
		return &WindowError{Field: f, Min: window.XMin, Max: window.XMax}
	}
	if window.YMin >= window.YMax {
		return &WindowError{Field: f, Min: window.YMin, Max: window.YMax}
	}
	if err := s.apply(s.functionText, s.fn, window, bounds); err != nil {
		return err
	}
	s.record()
	return nil
}

// apply rebuilds samples, lines and area for the candidate inputs and only
// then stores them.
func (s *Session) apply(text string, fn func(float64) float64, window model.PlotWindow, bounds model.Bounds) error {
	samples, err := calc.Sample(fn, window, bounds, s.step)
	if err != nil {
		return fmt.Errorf("failed to sample function: %w", err)
	}
	lines, err := calc.BuildBoundLines(fn, window, bounds)
	if err != nil {
		return fmt.Errorf("failed to build bound lines: %w", err)
	}
	s.functionText = text
	s.fn = fn
	s.window = window
	s.bounds = bounds
	s.samples = samples
	s.lines = lines
	s.area = calc.ComputeArea(samples)
	return nil
}

func (s *Session) record() {
	if s.recorder == nil || !s.area.Defined() {
		return
	}
	// The history column is REAL NOT NULL and cannot hold NaN.
	if math.IsNaN(s.area.Value) || math.IsInf(s.area.Value, 0) {
		return
	}
	c := model.Computation{
		ComputedAt: s.now(),
		Function:   s.functionText,
		Window:     s.window,
		Bounds:     s.bounds,
		Step:       s.step,
		Area:       s.area.Value,
	}
	if err := s.recorder.Record(context.Background(), c); err != nil {
		log.Printf("failed to record computation: %v", err)
	}
}

func parseNumber(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value must be finite")
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
