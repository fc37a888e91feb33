// Package chart renders XY datasets as braille plots.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/tuigral/internal/model"
)

// Dataset is a named set of points drawn in one color.
type Dataset struct {
	Name    string
	Points  []model.Point
	Color   lipgloss.Color
	Connect bool
}

// Options control the plot size and styling.
type Options struct {
	Width  int
	Height int
	Plain  bool
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	minPlotHeight       = 2
	axisSeparator       = " │ "
	terminalWidthBackup = 80
	dotsPerCellX        = 2
	dotsPerCellY        = 4
)

// Render draws datasets inside window. Earlier datasets win when two share a
// cell. Points outside the window, or not finite, are not drawn and break a
// connected line.
func Render(datasets []Dataset, window model.PlotWindow, opts Options) string {
	width, height := normalizeSize(opts.Width, opts.Height)
	yLabels := makeAxisLabels(window.YMin, window.YMax, height)
	labelWidth := axisLabelWidth(yLabels)

	layers := make([][][]uint8, len(datasets))
	for i, ds := range datasets {
		layers[i] = makeCells(height, width)
		plotDataset(layers[i], ds, window, width, height)
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		b.WriteString(padLeft(yLabels[y], labelWidth))
		b.WriteString(axisSeparator)
		writeRow(&b, datasets, layers, y, width, opts.Plain)
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", labelWidth+runewidth.StringWidth(axisSeparator)))
	b.WriteString(xAxisRow(window.XMin, window.XMax, width))
	return b.String()
}

// Write prints an optional title, the plot and a legend to w.
func Write(w io.Writer, title string, datasets []Dataset, window model.PlotWindow, opts Options) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, Render(datasets, window, opts)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, Legend(datasets, opts.Plain)); err != nil {
		return err
	}
	return nil
}

// Legend lists the dataset names in their colors.
func Legend(datasets []Dataset, plain bool) string {
	parts := make([]string, 0, len(datasets))
	marker := string(brailleFromMask(0xff))
	for _, ds := range datasets {
		if ds.Name == "" {
			continue
		}
		label := marker + " " + ds.Name
		if !plain {
			label = lipgloss.NewStyle().Foreground(ds.Color).Render(label)
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// PlotWidthFor computes the plot width that fits into totalWidth columns,
// axis labels included.
func PlotWidthFor(totalWidth int, window model.PlotWindow, height int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	_, height = normalizeSize(minPlotWidth, height)
	labels := makeAxisLabels(window.YMin, window.YMax, height)
	axisWidth := axisLabelWidth(labels) + runewidth.StringWidth(axisSeparator)
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func normalizeSize(width, height int) (int, int) {
	if height <= 0 {
		height = defaultPlotHeight
	}
	if height < minPlotHeight {
		height = minPlotHeight
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}
	return width, height
}

func plotDataset(cells [][]uint8, ds Dataset, window model.PlotWindow, width, height int) {
	dotsX := width * dotsPerCellX
	dotsY := height * dotsPerCellY
	prevX, prevY := -1, -1
	for _, p := range ds.Points {
		px, py, ok := toDot(p, window, dotsX, dotsY)
		if !ok {
			prevX, prevY = -1, -1
			continue
		}
		if ds.Connect && prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(x, y int) {
				setBrailleDot(cells, x, y)
			})
		} else {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}
}

// toDot maps a point to dot coordinates. Row 0 is the top of the plot.
func toDot(p model.Point, window model.PlotWindow, dotsX, dotsY int) (int, int, bool) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return 0, 0, false
	}
	if p.X < window.XMin || p.X > window.XMax || p.Y < window.YMin || p.Y > window.YMax {
		return 0, 0, false
	}
	xSpan := window.XMax - window.XMin
	ySpan := window.YMax - window.YMin
	if !(xSpan > 0) || !(ySpan > 0) {
		return 0, 0, false
	}
	px := int(math.Round((p.X - window.XMin) / xSpan * float64(dotsX-1)))
	py := int(math.Round((window.YMax - p.Y) / ySpan * float64(dotsY-1)))
	return px, py, true
}

func writeRow(b *strings.Builder, datasets []Dataset, layers [][][]uint8, y, width int, plain bool) {
	var run strings.Builder
	runColor := -1
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if plain || runColor < 0 {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(datasets[runColor].Color).Render(run.String()))
		}
		run.Reset()
	}
	for x := 0; x < width; x++ {
		mask, colorIdx := composeCell(layers, x, y)
		if colorIdx != runColor {
			flush()
			runColor = colorIdx
		}
		run.WriteRune(brailleFromMask(mask))
	}
	flush()
}

func makeAxisLabels(minVal, maxVal float64, height int) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = formatTick(maxVal)
	if height > 2 {
		labels[height/2] = formatTick(maxVal - (maxVal-minVal)*float64(height/2)/float64(height-1))
	}
	if height > 1 {
		labels[height-1] = formatTick(minVal)
	}
	return labels
}

func axisLabelWidth(labels []string) int {
	width := 0
	for _, label := range labels {
		if w := runewidth.StringWidth(label); w > width {
			width = w
		}
	}
	return width
}

func xAxisRow(minVal, maxVal float64, width int) string {
	left := formatTick(minVal)
	right := formatTick(maxVal)
	mid := formatTick((minVal + maxVal) / 2)
	row := []rune(strings.Repeat(" ", width))
	place := func(label string, start int) {
		for i, r := range []rune(label) {
			if start+i >= 0 && start+i < len(row) {
				row[start+i] = r
			}
		}
	}
	leftWidth := runewidth.StringWidth(left)
	rightWidth := runewidth.StringWidth(right)
	midWidth := runewidth.StringWidth(mid)
	midStart := (width - midWidth) / 2
	if midStart > leftWidth && midStart+midWidth < width-rightWidth {
		place(mid, midStart)
	}
	place(right, width-rightWidth)
	place(left, 0)
	return strings.TrimRight(string(row), " ")
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func padLeft(value string, width int) string {
	pad := width - runewidth.StringWidth(value)
	if pad <= 0 {
		return value
	}
	return strings.Repeat(" ", pad) + value
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	colorIdx := -1
	for i, cells := range layers {
		if y < 0 || y >= len(cells) {
			continue
		}
		if x < 0 || x >= len(cells[y]) {
			continue
		}
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if colorIdx == -1 {
			colorIdx = i
		}
		mask |= cellMask
	}
	return mask, colorIdx
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / dotsPerCellY
	cellX := x / dotsPerCellX
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%dotsPerCellX, y%dotsPerCellY)
}

// brailleDotMask maps a dot inside a 2x4 cell to its Unicode braille bit.
func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
