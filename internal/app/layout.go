package app

import (
	ui "github.com/gizak/termui/v3"
	w "github.com/gizak/termui/v3/widgets"
)

func (a *App) setupUI() {
	a.systemPar = w.NewParagraph()
	a.systemPar.Title = "System"

	a.memGauge = w.NewGauge()
	a.memGauge.Title = "Memory Usage"
	a.memGauge.Percent = 0

	a.procTable = w.NewTable()
	a.procTable.Title = "Processes"
	a.procTable.RowSeparator = false
	a.procTable.FillRow = true
	a.procTable.Rows = [][]string{processTableHeader}

	a.memoryPar = w.NewParagraph()
	a.memoryPar.Title = "Memory"

	a.netTable = w.NewTable()
	a.netTable.Title = "Network"
	a.netTable.RowSeparator = false
	a.netTable.FillRow = true
	a.netTable.Rows = [][]string{networkTableHeader}

	a.commandPar = w.NewParagraph()
	a.commandPar.Title = "Command Line"

	a.helpPar = w.NewParagraph()
	a.helpPar.Title = "taskmgr help"
	a.helpPar.Text = helpScreenText

	a.detailPar = w.NewParagraph()
	a.detailPar.Title = "Process Detail"
}

// applyLayout builds the three grids: the normal dashboard plus the
// full-screen help and detail overlays.
func (a *App) applyLayout() {
	termWidth, termHeight := ui.TerminalDimensions()

	a.grid = ui.NewGrid()
	a.grid.Set(
		ui.NewRow(0.2,
			ui.NewCol(0.6, a.systemPar),
			ui.NewCol(0.4, a.memGauge),
		),
		ui.NewRow(0.45,
			ui.NewCol(1.0, a.procTable),
		),
		ui.NewRow(0.2,
			ui.NewCol(0.5, a.memoryPar),
			ui.NewCol(0.5, a.netTable),
		),
		ui.NewRow(0.15,
			ui.NewCol(1.0, a.commandPar),
		),
	)

	a.helpGrid = ui.NewGrid()
	a.helpGrid.Set(
		ui.NewRow(1.0, ui.NewCol(1.0, a.helpPar)),
	)

	a.detailGrid = ui.NewGrid()
	a.detailGrid.Set(
		ui.NewRow(0.85, ui.NewCol(1.0, a.detailPar)),
		ui.NewRow(0.15, ui.NewCol(1.0, a.commandPar)),
	)

	for _, g := range []*ui.Grid{a.grid, a.helpGrid, a.detailGrid} {
		g.SetRect(0, 0, termWidth, termHeight)
	}
}

// resize re-fits every grid to the new terminal geometry. The current mode
// (command entry, detail view, pause) is untouched.
func (a *App) resize(width, height int) {
	for _, g := range []*ui.Grid{a.grid, a.helpGrid, a.detailGrid} {
		g.SetRect(0, 0, width, height)
	}
	ui.Clear()
}
