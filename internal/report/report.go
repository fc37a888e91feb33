// Package report prints integration results and history for the command line.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/tuigral/internal/calc"
	"github.com/verte-zerg/tuigral/internal/model"
)

// FormatArea renders an area for display. An undefined area shows its reason.
func FormatArea(area calc.Area) string {
	if !area.Defined() {
		return fmt.Sprintf("undefined (%v)", area.Err)
	}
	return fmt.Sprintf("%.4f", area.Value)
}

// RenderComputation prints the inputs and the area of a single evaluation.
func RenderComputation(w io.Writer, function string, bounds model.Bounds, area calc.Area) error {
	lines := formatTable(nil, [][]string{
		{"Function", function},
		{"Bounds", formatBounds(bounds)},
		{"Area", FormatArea(area)},
	}, nil)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints stored computations, oldest first.
func RenderHistory(w io.Writer, entries []model.HistoryEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No computations recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, "History"); err != nil {
		return err
	}
	headers := []string{"ID", "Computed At", "Function", "Bounds", "Window", "Step", "Area"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.ComputedAt.Local().Format(time.DateTime),
			e.Function,
			formatBounds(e.Bounds),
			formatWindow(e.Window),
			formatNumber(e.Step),
			fmt.Sprintf("%.4f", e.Area),
		})
	}
	rightAlign := map[int]bool{0: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatBounds(b model.Bounds) string {
	return fmt.Sprintf("[%s, %s]", formatNumber(b.Lower), formatNumber(b.Upper))
}

func formatWindow(win model.PlotWindow) string {
	return fmt.Sprintf("x [%s, %s] y [%s, %s]",
		formatNumber(win.XMin), formatNumber(win.XMax), formatNumber(win.YMin), formatNumber(win.YMax))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
