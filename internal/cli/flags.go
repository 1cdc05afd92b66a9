package cli

import (
	"path/filepath"

	"github.com/thesyncim/glasscheck/pkg/config"
)

// Flags holds command-line flags shared by the commands.
type Flags struct {
	ConfigPath string
	LogLevel   string

	Projects   []string
	Grep       string
	Workers    int
	Driver     string
	Headed     bool
	TestDir    string
	JSONPath   string
	NoProgress bool
}

// Apply overrides config values with the flags that were set.
func (f *Flags) Apply(cfg *config.Config) {
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.Driver != "" {
		cfg.Driver = f.Driver
	}
	if f.Headed {
		cfg.Headless = false
	}
	if f.TestDir != "" {
		// A flag path is relative to the working directory, not to the
		// config file, so pin it before TestPath rebases it.
		dir, err := filepath.Abs(f.TestDir)
		if err != nil {
			dir = f.TestDir
		}
		cfg.TestDir = dir
	}
}
