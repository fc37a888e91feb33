package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuigral/internal/chart"
	"github.com/verte-zerg/tuigral/internal/report"
	"github.com/verte-zerg/tuigral/internal/session"
)

const title = "Numerical integration calculator"

var (
	functionColor = lipgloss.Color("#FF4D4F")
	boundColor    = lipgloss.Color("#C89A3A")
	zeroColor     = lipgloss.Color("#C05BD6")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	errorStyle   = lipgloss.NewStyle().Foreground(functionColor)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cellStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6E6E6E")).Padding(0, 1)
	focusedStyle = cellStyle.BorderForeground(functionColor)
)

// cellChrome is the border plus padding width of a settings cell.
const cellChrome = 4

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.size()
	v := m.session.View()
	m.keys.settings = v.Screen == session.ScreenSettings

	header := titleStyle.Render(title) + "  " + mutedStyle.Render("f(x) = "+v.Function)
	footer := footerStyle.Render("Area: " + report.FormatArea(v.Area))
	helpLine := m.help.View(m.keys)

	sections := []string{header}
	reserved := lipgloss.Height(header) + lipgloss.Height(footer) + lipgloss.Height(helpLine) + 1
	status := renderStatus(v.Status)
	if status != "" {
		reserved += lipgloss.Height(status)
	}
	var grid string
	if v.Screen == session.ScreenSettings {
		grid = renderGrid(v, width)
		reserved += lipgloss.Height(grid)
	}

	plotHeight := height - reserved
	if plotHeight < 2 {
		plotHeight = 2
	}
	plotWidth := chart.PlotWidthFor(width, v.Window, plotHeight)
	sections = append(sections, chart.Render(datasets(v), v.Window, chart.Options{Width: plotWidth, Height: plotHeight}))
	sections = append(sections, footer)
	if grid != "" {
		sections = append(sections, grid)
	}
	if status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, helpLine)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// datasets lists the plotted layers. Earlier layers are drawn on top.
func datasets(v session.View) []chart.Dataset {
	return []chart.Dataset{
		{Name: "f(x)", Points: v.Samples, Color: functionColor, Connect: true},
		{Name: "lower", Points: v.LowerLine, Color: boundColor, Connect: true},
		{Name: "upper", Points: v.UpperLine, Color: boundColor, Connect: true},
		{Name: "y = 0", Points: v.ZeroLine, Color: zeroColor, Connect: true},
	}
}

// renderStatus shows the first line of the last commit outcome.
func renderStatus(st session.Status) string {
	text, _, _ := strings.Cut(st.Text, "\n")
	if text == "" {
		return ""
	}
	if st.Err != nil {
		return errorStyle.Render(text)
	}
	return mutedStyle.Render(text)
}

func renderGrid(v session.View, width int) string {
	cellWidth := width/session.GridCols - cellChrome
	if cellWidth < 6 {
		cellWidth = 6
	}
	rows := make([]string, 0, session.GridRows)
	for r := 0; r < session.GridRows; r++ {
		cells := make([]string, 0, session.GridCols)
		for c := 0; c < session.GridCols; c++ {
			f := session.Layout[r][c]
			focused := r == v.FocusRow && c == v.FocusCol
			cells = append(cells, renderCell(f, v.Buffer(f), focused, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(f session.Field, buffer string, focused bool, width int) string {
	label := runewidth.Truncate(f.String(), width, "…")
	value := buffer
	if !f.HasBuffer() {
		value = "[ enter ]"
	} else if focused {
		value += "▏"
	}
	value = tail(value, width)
	style := cellStyle
	if focused {
		style = focusedStyle
	}
	content := labelStyle.Render(label) + "\n" + value
	return style.Width(width + 2).Render(content)
}

// tail keeps the last runes of s that fit into width cells.
func tail(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	used := runewidth.RuneWidth('…')
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}
	return "…" + string(runes[start:])
}
