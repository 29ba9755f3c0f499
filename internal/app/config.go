package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// AppConfig is the persisted UI configuration.
type AppConfig struct {
	Theme    string `json:"theme"`
	SortMode string `json:"sort_mode"`
}

func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".taskmgr"), nil
}

func loadConfig() AppConfig {
	dir, err := configDir()
	if err != nil {
		return AppConfig{}
	}
	file, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		return AppConfig{}
	}
	var cfg AppConfig
	if err := json.Unmarshal(file, &cfg); err != nil {
		return AppConfig{}
	}
	return cfg
}

func saveConfig(cfg AppConfig) {
	dir, err := configDir()
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// setupLogfile opens ~/.taskmgr/taskmgr.log and points the standard logger
// at it. While the TUI owns the terminal, nothing may write to stdout/stderr.
func setupLogfile() (*os.File, error) {
	dir, err := configDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), ".taskmgr")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to make the log directory: %v", err)
	}
	logfile, err := os.OpenFile(filepath.Join(dir, "taskmgr.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0660)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}
	log.SetFlags(log.Ltime | log.Lshortfile)
	log.SetOutput(logfile)
	return logfile, nil
}
