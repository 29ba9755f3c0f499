package app

import (
	"fmt"
	"sort"
	"time"

	ui "github.com/gizak/termui/v3"
)

const maxProcessRows = 30

var processTableHeader = []string{"PID", "Name", "CPU %", "Memory", "Disk R/s", "Disk W/s", "Status"}
var networkTableHeader = []string{"Interface", "RX/s", "TX/s", "RX total", "TX total"}

const helpScreenText = `Keyboard:
  c          sort by CPU (descending)
  m          sort by memory (descending)
  p          sort by PID (ascending)
  Space / s  pause or resume the display
  t          cycle the color theme
  :          enter command mode
  h / ?      toggle this help
  Esc        close help or detail view
  q          quit

Command mode (type after ':', Enter to run, Esc to cancel):
  p <PID>    show detailed process information
  help, ?    list the available commands
  exit, q    leave command mode

While paused the display is frozen but sampling continues in the
background; resuming shows current data immediately.`

// refresh pulls the latest snapshot. While paused the displayed copy is kept,
// so resuming pops straight to current data on the next tick.
func (a *App) refresh() {
	fresh := a.store.Read()
	if a.cfg.PrometheusPort != "" {
		publishMetrics(fresh)
	}
	if !a.paused {
		a.view = fresh
	}
}

func (a *App) render() {
	a.updateSystemPanel()
	a.updateProcessTable()
	a.updateMemoryPanel()
	a.updateNetworkTable()
	a.updateCommandPanel()

	switch {
	case a.showHelp:
		ui.Render(a.helpGrid)
	case a.inDetail:
		a.updateDetailPanel()
		ui.Render(a.detailGrid)
	default:
		ui.Render(a.grid)
	}
}

func (a *App) updateSystemPanel() {
	pauseMark := ""
	if a.paused {
		pauseMark = " [PAUSED](fg:red,mod:bold)"
	}
	updated := "never"
	if !a.view.ProcessesUpdated.IsZero() {
		updated = a.view.ProcessesUpdated.Format("15:04:05")
	}
	a.systemPar.Text = fmt.Sprintf(
		"%s\n%s\n%s\nSort: %s  Updated: %s%s\nc/m/p sort  Space pause  : cmd  h help  q quit",
		a.hostLine, a.cpuModel,
		thresholdMarkup(fmt.Sprintf("Total CPU: %.1f%%", a.view.SystemCPUPercent), a.view.SystemCPUPercent),
		a.sortMode, updated, pauseMark,
	)
}

func (a *App) updateProcessTable() {
	procs := a.view.Processes
	sortProcesses(procs, a.sortMode)

	rows := [][]string{processTableHeader}
	total := a.view.Memory.TotalBytes
	styles := map[int]ui.Style{}
	for i, p := range procs {
		if i >= maxProcessRows {
			break
		}
		memPct := percentOf(p.MemoryBytes, total)
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.PID),
			truncateWithEllipsis(p.Name, 25),
			fmt.Sprintf("%.1f", p.CPUPercent),
			fmt.Sprintf("%s (%.1f%%)", formatBytes(p.MemoryBytes), memPct),
			formatRate(p.DiskReadBytesPerSec),
			formatRate(p.DiskWriteBytesPerSec),
			p.Status,
		})
		switch {
		case p.CPUPercent > 80:
			styles[len(rows)-1] = ui.NewStyle(ui.ColorRed)
		case p.CPUPercent > 50:
			styles[len(rows)-1] = ui.NewStyle(ui.ColorYellow)
		case memPct > 20:
			styles[len(rows)-1] = ui.NewStyle(ui.ColorMagenta)
		}
	}
	a.procTable.Rows = rows
	a.procTable.RowStyles = styles
	a.procTable.Title = fmt.Sprintf("Processes (%d)", len(procs))
}

func (a *App) updateMemoryPanel() {
	m := a.view.Memory
	pct := percentOf(m.UsedBytes, m.TotalBytes)
	a.memGauge.Percent = int(pct)
	a.memGauge.Label = fmt.Sprintf("%s / %s (%.1f%%)", formatBytes(m.UsedBytes), formatBytes(m.TotalBytes), pct)
	a.memGauge.BarColor = thresholdColor(pct, a.themeColor)

	swap := "Swap: none"
	if m.SwapTotalBytes > 0 {
		swapPct := percentOf(m.SwapUsedBytes, m.SwapTotalBytes)
		swap = thresholdMarkup(fmt.Sprintf("Swap: %s / %s (%.1f%%)",
			formatBytes(m.SwapUsedBytes), formatBytes(m.SwapTotalBytes), swapPct), swapPct)
	}

	var readBps, writeBps uint64
	for _, p := range a.view.Processes {
		readBps += p.DiskReadBytesPerSec
		writeBps += p.DiskWriteBytesPerSec
	}

	a.memoryPar.Text = fmt.Sprintf(
		"Available: %s\n%s\nDisk I/O: read %s  write %s",
		formatBytes(m.AvailableBytes), swap, formatRate(readBps), formatRate(writeBps),
	)
}

func (a *App) updateNetworkTable() {
	names := make([]string, 0, len(a.view.Interfaces))
	for name := range a.view.Interfaces {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := [][]string{networkTableHeader}
	for _, name := range names {
		st := a.view.Interfaces[name]
		rows = append(rows, []string{
			name,
			formatRate(st.RxBytesPerSec),
			formatRate(st.TxBytesPerSec),
			formatBytes(st.RxTotalBytes),
			formatBytes(st.TxTotalBytes),
		})
	}
	a.netTable.Rows = rows
	a.netTable.Title = fmt.Sprintf("Network (%d)", len(names))
}

func (a *App) updateCommandPanel() {
	if a.commandMode {
		a.commandPar.Text = fmt.Sprintf("[> %s_](fg:yellow,mod:bold)", a.commandBuf)
		return
	}
	if len(a.commandOut) > 0 {
		text := ""
		for i, line := range a.commandOut {
			if i > 0 {
				text += "\n"
			}
			text += line
		}
		a.commandPar.Text = text
		return
	}
	a.commandPar.Text = "Press ':' to enter a command"
}

func (a *App) updateDetailPanel() {
	a.detailPar.Title = fmt.Sprintf("Process %d", a.detailPID)
	entry, ok := findProcess(a.view.Processes, a.detailPID)
	if !ok {
		a.detailPar.Text = fmt.Sprintf("Process %d is no longer running.\n\nPress Esc to return.", a.detailPID)
		return
	}
	started := "unknown"
	running := "unknown"
	if !entry.StartedAt.IsZero() {
		started = entry.StartedAt.Format("2006-01-02 15:04:05")
		running = time.Since(entry.StartedAt).Round(time.Second).String()
	}
	a.detailPar.Text = fmt.Sprintf(
		"Name:        %s\nPID:         %d\nStatus:      %s\n\nCPU:         %.1f%%\nMemory:      %s (%.1f%% of %s)\nVirtual:     %s\n\nDisk read:   %s\nDisk write:  %s\n\nStarted:     %s\nRunning:     %s\nSampled:     %s\n\nPress Esc to return.",
		entry.Name, entry.PID, entry.Status,
		entry.CPUPercent,
		formatBytes(entry.MemoryBytes), percentOf(entry.MemoryBytes, a.view.Memory.TotalBytes), formatBytes(a.view.Memory.TotalBytes),
		formatBytes(entry.VirtualBytes),
		formatRate(entry.DiskReadBytesPerSec),
		formatRate(entry.DiskWriteBytesPerSec),
		started, running,
		a.view.ProcessesUpdated.Format(time.TimeOnly),
	)
}
