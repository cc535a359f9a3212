package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikey/email-sentiment/internal/core"
)

// DefaultGaugeWidth is the number of cells of the gauge bar
const DefaultGaugeWidth = 41

// palette maps the gauge colour names to terminal colours
var palette = map[string]lipgloss.Color{
	"red":    lipgloss.Color("#dc2626"),
	"orange": lipgloss.Color("#ea580c"),
	"yellow": lipgloss.Color("#eab308"),
	"green":  lipgloss.Color("#16a34a"),
	"blue":   lipgloss.Color("#2563eb"),
	"black":  lipgloss.Color("#000000"),
}

// gaugeColumn maps a value on the gauge axis to a cell index
func gaugeColumn(g core.GaugeSpec, value float64, width int) int {
	if g.Max <= g.Min || width <= 1 {
		return 0
	}
	ratio := (value - g.Min) / (g.Max - g.Min)
	ratio = math.Max(0, math.Min(1, ratio))
	return int(math.Round(ratio * float64(width-1)))
}

// cellValue is the axis value at the centre of a cell
func cellValue(g core.GaugeSpec, col, width int) float64 {
	if width <= 1 {
		return g.Min
	}
	return g.Min + (g.Max-g.Min)*float64(col)/float64(width-1)
}

// renderGauge draws the gauge as a title, a marker row, the banded bar and the tick labels
func renderGauge(r *lipgloss.Renderer, g core.GaugeSpec, width int) string {
	var b strings.Builder

	title := r.NewStyle().Bold(true)
	b.WriteString(title.Render(g.Title))
	b.WriteString("\n")

	marker := r.NewStyle().Foreground(palette[g.Threshold.Color]).Bold(true)
	needle := gaugeColumn(g, g.Threshold.Value, width)
	b.WriteString(strings.Repeat(" ", needle))
	b.WriteString(marker.Render("▼"))
	b.WriteString("\n")

	for col := 0; col < width; col++ {
		cell := "█"
		color := palette[g.BarColor]
		if band, ok := g.BandFor(cellValue(g, col, width)); ok {
			color = palette[band.Color]
		}
		if col == needle {
			cell = "┃"
			color = palette[g.Threshold.Color]
		}
		b.WriteString(r.NewStyle().Foreground(color).Render(cell))
	}
	b.WriteString("\n")

	b.WriteString(tickLine(g, width))
	return b.String()
}

// tickLine places every tick label under its axis position without overlapping the previous one
func tickLine(g core.GaugeSpec, width int) string {
	room := width
	for _, label := range g.TickLabels {
		room += len([]rune(label)) + 1
	}
	line := []rune(strings.Repeat(" ", room))
	next := 0
	for i, value := range g.TickValues {
		if i >= len(g.TickLabels) {
			break
		}
		label := []rune(g.TickLabels[i])
		start := gaugeColumn(g, value, width) - len(label)/2
		if start < next {
			start = next
		}
		if start+len(label) > len(line) {
			start = len(line) - len(label)
		}
		copy(line[start:], label)
		next = start + len(label) + 1
	}
	return strings.TrimRight(string(line), " ")
}
