package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	ui "github.com/gizak/termui/v3"
	w "github.com/gizak/termui/v3/widgets"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/Prisol7/TaskManager-lite-test/internal/command"
	"github.com/Prisol7/TaskManager-lite-test/internal/metrics"
	"github.com/Prisol7/TaskManager-lite-test/internal/sampler"
)

const renderInterval = 250 * time.Millisecond

// Config carries the command line options into the app.
type Config struct {
	Interval       time.Duration
	Color          string
	PrometheusPort string
	HeadlessCount  int
}

// App owns all UI state. Everything below is touched only from the event
// loop goroutine; the samplers communicate exclusively through the store.
type App struct {
	cfg    Config
	config AppConfig
	store  *metrics.Store
	logger *log.Logger
	done   chan struct{}
	wg     sync.WaitGroup

	view        metrics.Snapshot
	sortMode    SortMode
	paused      bool
	commandMode bool
	commandBuf  string
	commandOut  []string
	inDetail    bool
	detailPID   int32
	showHelp    bool

	hostLine   string
	cpuModel   string
	themeColor ui.Color

	grid       *ui.Grid
	helpGrid   *ui.Grid
	detailGrid *ui.Grid
	systemPar  *w.Paragraph
	memoryPar  *w.Paragraph
	commandPar *w.Paragraph
	helpPar    *w.Paragraph
	detailPar  *w.Paragraph
	memGauge   *w.Gauge
	procTable  *w.Table
	netTable   *w.Table
}

func StderrToLogfile(logfile *os.File) {
	syscall.Dup2(int(logfile.Fd()), 2)
}

// Run starts the samplers and drives the TUI until the user quits.
func Run(cfg Config) error {
	logfile, err := setupLogfile()
	if err != nil {
		return fmt.Errorf("failed to setup logfile: %w", err)
	}
	defer logfile.Close()

	a := &App{
		cfg:    cfg,
		store:  metrics.NewStore(),
		done:   make(chan struct{}),
		logger: log.New(logfile, "", log.Ltime|log.Lshortfile),
	}
	a.config = loadConfig()
	if cfg.Color != "" {
		a.config.Theme = cfg.Color
	}
	if a.config.Theme == "" {
		if detectLightMode() {
			a.config.Theme = "blue"
		} else {
			a.config.Theme = "green"
		}
	}
	a.sortMode = sortModeFromName(a.config.SortMode)
	a.describeHost()

	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Second
	}
	procSampler := sampler.NewProcessSampler(a.store, sampler.PsutilProcessProvider{}, interval, a.logger)
	netSampler := sampler.NewNetSampler(a.store, sampler.PsutilNetProvider{}, interval, a.logger)

	if cfg.PrometheusPort != "" {
		startMetricsServer(cfg.PrometheusPort, a.logger)
	}

	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	defer ui.Close()
	StderrToLogfile(logfile)

	a.setupUI()
	a.applyTheme(a.config.Theme)
	a.applyLayout()

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		procSampler.Run(a.done)
	}()
	go func() {
		defer a.wg.Done()
		netSampler.Run(a.done)
	}()

	a.view = a.store.Read()
	a.render()
	a.eventLoop()

	close(a.done)
	stopped := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		a.logger.Printf("samplers did not stop within 2s, exiting anyway")
	}

	a.config.SortMode = a.sortMode.configName()
	saveConfig(a.config)
	return nil
}

func (a *App) describeHost() {
	if info, err := host.Info(); err == nil {
		a.hostLine = fmt.Sprintf("%s (%s %s)", info.Hostname, info.Platform, info.PlatformVersion)
	} else {
		a.logger.Printf("host info: %v", err)
		a.hostLine = "unknown host"
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		a.cpuModel = strings.TrimSpace(infos[0].ModelName)
	} else if err != nil {
		a.logger.Printf("cpu info: %v", err)
	}
}

func (a *App) eventLoop() {
	uiEvents := ui.PollEvents()
	ticker := time.NewTicker(renderInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case e := <-uiEvents:
			if a.handleEvent(e) {
				return
			}
			a.render()
		case <-ticker.C:
			a.refresh()
			a.render()
		case <-sigCh:
			return
		}
	}
}

// handleEvent returns true when the app should quit.
func (a *App) handleEvent(e ui.Event) bool {
	switch e.Type {
	case ui.ResizeEvent:
		payload := e.Payload.(ui.Resize)
		a.resize(payload.Width, payload.Height)
	case ui.KeyboardEvent:
		// Ctrl-C quits from any mode; raw mode means no SIGINT arrives.
		if e.ID == "<C-c>" {
			return true
		}
		if a.commandMode {
			a.handleCommandKey(e.ID)
			return false
		}
		return a.handleNormalKey(e.ID)
	}
	return false
}

func (a *App) handleNormalKey(id string) bool {
	switch id {
	case "q", "<C-c>":
		return true
	case ":":
		a.commandMode = true
		a.commandBuf = ""
	case "<Escape>":
		if a.inDetail || a.showHelp {
			ui.Clear()
		}
		a.inDetail = false
		a.showHelp = false
		a.commandOut = nil
	case "c":
		a.sortMode = SortByCPU
	case "m":
		a.sortMode = SortByMemory
	case "p":
		a.sortMode = SortByPID
	case "<Space>", "s":
		a.paused = !a.paused
	case "h", "?":
		a.showHelp = !a.showHelp
		ui.Clear()
	case "t":
		a.cycleTheme()
		saveConfig(a.config)
		ui.Clear()
	}
	return false
}

func (a *App) handleCommandKey(id string) {
	switch id {
	case "<Enter>":
		line := a.commandBuf
		a.commandBuf = ""
		a.commandMode = false
		a.applyCommand(command.Parse(line))
	case "<Escape>":
		a.commandBuf = ""
		a.commandMode = false
	case "<Backspace>", "<C-8>":
		if r := []rune(a.commandBuf); len(r) > 0 {
			a.commandBuf = string(r[:len(r)-1])
		}
	case "<Space>":
		a.commandBuf += " "
	default:
		// termui reports printable keys as their literal rune.
		if len([]rune(id)) == 1 {
			a.commandBuf += id
		}
	}
}

func (a *App) applyCommand(act command.Action) {
	a.commandOut = nil
	switch act.Kind {
	case command.ShowProcessDetail:
		if _, ok := findProcess(a.view.Processes, act.PID); ok {
			a.detailPID = act.PID
			a.inDetail = true
		} else {
			a.commandOut = []string{fmt.Sprintf("Process with PID %d not found", act.PID)}
		}
	case command.ShowHelp:
		a.commandOut = []string{
			"Available commands:",
			"  p <PID>    show detailed process information",
			"  help, ?    show this help message",
			"  exit, q    leave command mode",
		}
	case command.ExitCommandMode:
		// Mode was already left when Enter was pressed.
	case command.Unknown:
		if text := strings.TrimSpace(act.Text); text != "" {
			a.commandOut = []string{fmt.Sprintf("Unknown command: %q. Type 'help' for a list.", text)}
		}
	}
}

func findProcess(procs []metrics.ProcessEntry, pid int32) (metrics.ProcessEntry, bool) {
	for _, p := range procs {
		if p.PID == pid {
			return p, true
		}
	}
	return metrics.ProcessEntry{}, false
}
