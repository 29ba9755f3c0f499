package app

import (
	"testing"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/stretchr/testify/assert"

	"github.com/Prisol7/TaskManager-lite-test/internal/command"
	"github.com/Prisol7/TaskManager-lite-test/internal/metrics"
)

func testTime(sec int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, sec, 0, time.UTC)
}

func pids(procs []metrics.ProcessEntry) []int32 {
	out := make([]int32, len(procs))
	for i, p := range procs {
		out[i] = p.PID
	}
	return out
}

func TestSortProcesses(t *testing.T) {
	tests := []struct {
		name  string
		procs []metrics.ProcessEntry
		mode  SortMode
		want  []int32
	}{
		{
			name: "cpu descending",
			procs: []metrics.ProcessEntry{
				{PID: 1, CPUPercent: 90},
				{PID: 2, CPUPercent: 10},
			},
			mode: SortByCPU,
			want: []int32{1, 2},
		},
		{
			name: "pid ascending",
			procs: []metrics.ProcessEntry{
				{PID: 2, CPUPercent: 10},
				{PID: 1, CPUPercent: 90},
			},
			mode: SortByPID,
			want: []int32{1, 2},
		},
		{
			name: "cpu tie breaks by ascending pid",
			procs: []metrics.ProcessEntry{
				{PID: 5, CPUPercent: 50},
				{PID: 3, CPUPercent: 50},
			},
			mode: SortByCPU,
			want: []int32{3, 5},
		},
		{
			name: "memory descending with pid tie break",
			procs: []metrics.ProcessEntry{
				{PID: 9, MemoryBytes: 100},
				{PID: 4, MemoryBytes: 300},
				{PID: 7, MemoryBytes: 100},
			},
			mode: SortByMemory,
			want: []int32{4, 7, 9},
		},
		{
			name:  "empty list",
			procs: []metrics.ProcessEntry{},
			mode:  SortByCPU,
			want:  []int32{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sortProcesses(tt.procs, tt.mode)
			assert.Equal(t, tt.want, pids(tt.procs))
		})
	}
}

func TestSortModeRoundTrip(t *testing.T) {
	for _, mode := range []SortMode{SortByCPU, SortByMemory, SortByPID} {
		assert.Equal(t, mode, sortModeFromName(mode.configName()))
	}
	assert.Equal(t, SortByCPU, sortModeFromName("bogus"))
	assert.Equal(t, SortByCPU, sortModeFromName(""))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
		{5 << 30, "5.0 GB"},
		{2 << 40, "2.0 TB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
	assert.Equal(t, "1.0 KB/s", formatRate(1024))
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, 0.0, percentOf(10, 0))
	assert.Equal(t, 50.0, percentOf(50, 100))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", truncateWithEllipsis("short", 10))
	assert.Equal(t, "a-very-...", truncateWithEllipsis("a-very-long-process-name", 10))
	assert.Equal(t, "...", truncateWithEllipsis("anything", 3))
}

func TestPauseToggleRoundTrip(t *testing.T) {
	a := &App{store: metrics.NewStore()}

	assert.False(t, a.paused)
	a.handleNormalKey("<Space>")
	assert.True(t, a.paused)
	a.handleNormalKey("s")
	assert.False(t, a.paused)
}

func TestPauseFreezesDisplayedSnapshot(t *testing.T) {
	a := &App{store: metrics.NewStore()}

	first := []metrics.ProcessEntry{{PID: 1, Name: "one"}}
	a.store.SetProcesses(first, metrics.MemoryStats{}, 0, testTime(1))
	a.refresh()
	assert.Len(t, a.view.Processes, 1)

	a.paused = true
	second := []metrics.ProcessEntry{{PID: 1, Name: "one"}, {PID: 2, Name: "two"}}
	a.store.SetProcesses(second, metrics.MemoryStats{}, 0, testTime(2))
	a.refresh()
	assert.Len(t, a.view.Processes, 1, "paused view must not advance")

	a.paused = false
	a.refresh()
	assert.Len(t, a.view.Processes, 2, "resume shows current data on next tick")
}

func TestApplyCommandDetail(t *testing.T) {
	a := &App{store: metrics.NewStore()}
	a.view.Processes = []metrics.ProcessEntry{{PID: 42, Name: "answer"}}

	a.applyCommand(command.Action{Kind: command.ShowProcessDetail, PID: 42})
	assert.True(t, a.inDetail)
	assert.Equal(t, int32(42), a.detailPID)

	a.inDetail = false
	a.applyCommand(command.Action{Kind: command.ShowProcessDetail, PID: 7})
	assert.False(t, a.inDetail)
	assert.Contains(t, a.commandOut[0], "PID 7 not found")
}

func TestApplyCommandUnknownAndHelp(t *testing.T) {
	a := &App{store: metrics.NewStore()}

	a.applyCommand(command.Parse("frobnicate"))
	assert.Contains(t, a.commandOut[0], "Unknown command")

	a.applyCommand(command.Parse("help"))
	assert.Contains(t, a.commandOut[0], "Available commands")

	a.applyCommand(command.Parse(""))
	assert.Empty(t, a.commandOut, "empty input produces no output")
}

func TestThresholdColor(t *testing.T) {
	theme := ui.ColorGreen
	tests := []struct {
		pct  float64
		want ui.Color
	}{
		{0, theme},
		{75, theme},
		{75.1, ui.ColorYellow},
		{90, ui.ColorYellow},
		{90.1, ui.ColorRed},
		{100, ui.ColorRed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, thresholdColor(tt.pct, theme), "pct %.1f", tt.pct)
	}
}

func TestThresholdMarkup(t *testing.T) {
	assert.Equal(t, "x", thresholdMarkup("x", 50))
	assert.Equal(t, "[x](fg:yellow)", thresholdMarkup("x", 80))
	assert.Equal(t, "[x](fg:red)", thresholdMarkup("x", 95))
}

func TestCtrlCQuitsFromAnyMode(t *testing.T) {
	a := &App{store: metrics.NewStore()}
	ctrlC := ui.Event{Type: ui.KeyboardEvent, ID: "<C-c>"}

	assert.True(t, a.handleEvent(ctrlC), "normal mode")

	a = &App{store: metrics.NewStore()}
	a.handleNormalKey(":")
	a.commandBuf = "p 12"
	assert.True(t, a.handleEvent(ctrlC), "command mode")
}

func TestCommandModeEditing(t *testing.T) {
	a := &App{store: metrics.NewStore()}
	a.handleNormalKey(":")
	assert.True(t, a.commandMode)

	for _, k := range []string{"p", "<Space>", "4", "2"} {
		a.handleCommandKey(k)
	}
	assert.Equal(t, "p 42", a.commandBuf)

	a.handleCommandKey("<Backspace>")
	assert.Equal(t, "p 4", a.commandBuf)

	a.handleCommandKey("<Escape>")
	assert.False(t, a.commandMode)
	assert.Equal(t, "", a.commandBuf)
}
