package app

import (
	ui "github.com/gizak/termui/v3"
	w "github.com/gizak/termui/v3/widgets"
)

var colorMap = map[string]ui.Color{
	"green":   ui.ColorGreen,
	"red":     ui.ColorRed,
	"blue":    ui.ColorBlue,
	"cyan":    ui.ColorCyan,
	"magenta": ui.ColorMagenta,
	"yellow":  ui.ColorYellow,
	"white":   ui.ColorWhite,
}

var colorNames = []string{"green", "red", "blue", "cyan", "magenta", "yellow", "white"}

// applyTheme recolors the termui theme and every widget. Unknown names fall
// back to green.
func (a *App) applyTheme(name string) {
	color, ok := colorMap[name]
	if !ok {
		color, name = ui.ColorGreen, "green"
	}
	a.config.Theme = name
	a.themeColor = color

	ui.Theme.Block.Title.Fg = color
	ui.Theme.Block.Border.Fg = color
	ui.Theme.Paragraph.Text.Fg = color
	ui.Theme.Gauge.Label.Fg = color
	ui.Theme.Gauge.Bar = color

	if a.systemPar == nil {
		return
	}
	for _, p := range []*w.Paragraph{a.systemPar, a.memoryPar, a.commandPar, a.helpPar, a.detailPar} {
		p.BorderStyle.Fg = color
		p.TitleStyle.Fg = color
		p.TextStyle = ui.NewStyle(color)
	}
	for _, tbl := range []*w.Table{a.procTable, a.netTable} {
		tbl.BorderStyle.Fg = color
		tbl.TitleStyle.Fg = color
		tbl.TextStyle = ui.NewStyle(color)
	}
	a.memGauge.BarColor = color
	a.memGauge.BorderStyle.Fg = color
	a.memGauge.TitleStyle.Fg = color
}

// thresholdColor picks the usage color for a percentage: red above 90,
// yellow above 75, otherwise the fallback theme color.
func thresholdColor(pct float64, fallback ui.Color) ui.Color {
	switch {
	case pct > 90:
		return ui.ColorRed
	case pct > 75:
		return ui.ColorYellow
	default:
		return fallback
	}
}

// thresholdMarkup wraps a text line in termui color markup when the
// percentage crosses the usage thresholds.
func thresholdMarkup(line string, pct float64) string {
	switch {
	case pct > 90:
		return "[" + line + "](fg:red)"
	case pct > 75:
		return "[" + line + "](fg:yellow)"
	default:
		return line
	}
}

func (a *App) cycleTheme() {
	currentIndex := 0
	for i, name := range colorNames {
		if name == a.config.Theme {
			currentIndex = i
			break
		}
	}
	a.applyTheme(colorNames[(currentIndex+1)%len(colorNames)])
}
