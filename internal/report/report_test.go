package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuigral/internal/calc"
	"github.com/verte-zerg/tuigral/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"ID", "Function", "Area"}
	rows := [][]string{
		{"1", "x^2", "2.6667"},
		{"12", "sin(x)", "0.0000"},
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 2: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "ID  Function    Area" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1  x^2       2.6667" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "12  sin(x)    0.0000" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"F", "A"}, [][]string{{"ab", "1"}, {"漢", "2"}}, nil)
	if lines[1] != "ab  1" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "漢  2" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatArea(t *testing.T) {
	if got := FormatArea(calc.Area{Value: 2}); got != "2.0000" {
		t.Fatalf("expected 2.0000, got %q", got)
	}
	got := FormatArea(calc.Area{Err: errors.New("bounds outside window")})
	if got != "undefined (bounds outside window)" {
		t.Fatalf("unexpected undefined area %q", got)
	}
}

func TestRenderComputation(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderComputation(&buf, "x", model.Bounds{Lower: 0, Upper: 2}, calc.Area{Value: 1.998}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Function  x", "Bounds    [0, 2]", "Area      1.9980"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	entries := []model.HistoryEntry{{
		ID: 3,
		Computation: model.Computation{
			ComputedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			Function:   "x^2",
			Window:     model.PlotWindow{XMin: -5, XMax: 5, YMin: -10, YMax: 10},
			Bounds:     model.Bounds{Lower: 0, Upper: 1},
			Step:       0.001,
			Area:       0.33283,
		},
	}}
	if err := RenderHistory(&buf, entries); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"History", "Computed At", "x^2", "[0, 1]", "x [-5, 5] y [-10, 10]", "0.001", "0.3328"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No computations recorded.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
