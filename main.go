package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Prisol7/TaskManager-lite-test/internal/app"
)

var version = "dev"

func main() {
	var (
		interval       time.Duration
		color          string
		prometheusPort string
		headless       bool
		count          int
	)

	rootCmd := &cobra.Command{
		Use:   "taskmgr",
		Short: "Terminal task manager with live process, memory and network metrics",
		Long: `taskmgr is a terminal task manager. It samples processes, memory and
network interfaces in the background and renders them in an interactive
TUI. Press 'h' inside the TUI for the key bindings, or run with
--headless to stream JSON snapshots to stdout instead.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config{
				Interval:       interval,
				Color:          color,
				PrometheusPort: prometheusPort,
				HeadlessCount:  count,
			}
			if headless {
				return app.RunHeadless(cfg)
			}
			return app.Run(cfg)
		},
	}

	rootCmd.Flags().DurationVarP(&interval, "interval", "i", time.Second, "sampling interval")
	rootCmd.Flags().StringVarP(&color, "color", "c", "", "color theme: green, red, blue, cyan, magenta, yellow, white")
	rootCmd.Flags().StringVarP(&prometheusPort, "prometheus", "p", "", "port to expose prometheus metrics on (disabled when empty)")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "print JSON snapshots to stdout instead of the TUI")
	rootCmd.Flags().IntVar(&count, "count", 0, "with --headless, exit after this many snapshots (0 = run forever)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
