// Package config declares the runner configuration: the project matrix
// (one project per browser engine) and where test files live.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/thesyncim/glasscheck/pkg/browser"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "glasscheck.yaml"

// DefaultTestDir is where test files are discovered by default.
// It is a starting point and can be changed per config file.
const DefaultTestDir = "tests"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the runner configuration.
type Config struct {
	Projects []Project     `yaml:"projects"`
	TestDir  string        `yaml:"testDir"`
	Workers  int           `yaml:"workers"`  // Projects run concurrently, at most this many at once
	Timeout  time.Duration `yaml:"timeout"`  // Navigation timeout
	Expect   Expect        `yaml:"expect"`   // Assertion settings
	Headless bool          `yaml:"headless"` // Run browsers without a window
	Driver   string        `yaml:"driver"`   // "playwright" or "rod"

	// baseDir is the directory of the file the config was loaded from.
	// Relative TestDir values resolve against it.
	baseDir string
}

// Expect configures title assertions.
type Expect struct {
	// Timeout bounds how long an assertion waits for the title to match.
	Timeout time.Duration `yaml:"timeout"`
}

// Project is a named execution profile bound to one browser engine.
type Project struct {
	Name string `yaml:"name"`
	Use  Use    `yaml:"use"`
}

// Use holds the per-project browser selection.
type Use struct {
	BrowserName string `yaml:"browserName"`
}

// Engine parses the project's browser name.
func (p Project) Engine() (browser.Engine, error) {
	return browser.ParseEngine(p.Use.BrowserName)
}

// Default returns one project per supported engine with tests under
// DefaultTestDir.
func Default() *Config {
	projects := make([]Project, 0, len(browser.Engines()))
	for _, e := range browser.Engines() {
		projects = append(projects, Project{
			Name: e.String(),
			Use:  Use{BrowserName: e.String()},
		})
	}

	return &Config{
		Projects: projects,
		TestDir:  DefaultTestDir,
		Workers:  len(projects),
		Timeout:  30 * time.Second,
		Expect:   Expect{Timeout: 5 * time.Second},
		Headless: true,
		Driver:   browser.DriverPlaywright,
	}
}

// Validate checks the configuration for errors the runner cannot recover
// from: missing or duplicate project names, unknown engines, and
// non-positive limits.
func (c *Config) Validate() error {
	if len(c.Projects) == 0 {
		return fmt.Errorf("%w: no projects defined", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Projects))
	for i, p := range c.Projects {
		if p.Name == "" {
			return fmt.Errorf("%w: project #%d has no name", ErrInvalid, i+1)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate project name %q", ErrInvalid, p.Name)
		}
		seen[p.Name] = true

		if _, err := p.Engine(); err != nil {
			return fmt.Errorf("%w: project %q: %w", ErrInvalid, p.Name, err)
		}
	}

	if c.TestDir == "" {
		return fmt.Errorf("%w: testDir is empty", ErrInvalid)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalid, c.Timeout)
	}
	if c.Expect.Timeout <= 0 {
		return fmt.Errorf("%w: expect.timeout must be positive, got %v", ErrInvalid, c.Expect.Timeout)
	}
	switch c.Driver {
	case "", browser.DriverPlaywright, browser.DriverRod:
	default:
		return fmt.Errorf("%w: unknown driver %q (want %q or %q)", ErrInvalid, c.Driver, browser.DriverPlaywright, browser.DriverRod)
	}
	return nil
}

// SelectProjects narrows the matrix to the named projects, keeping config
// order. An empty list selects everything.
func (c *Config) SelectProjects(names []string) ([]Project, error) {
	if len(names) == 0 {
		return c.Projects, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var selected []Project
	for _, p := range c.Projects {
		if want[p.Name] {
			selected = append(selected, p)
			delete(want, p.Name)
		}
	}
	for _, n := range names {
		if want[n] {
			return nil, fmt.Errorf("project %q not found in config", n)
		}
	}
	return selected, nil
}

// TestPath returns TestDir resolved against the config file's directory.
func (c *Config) TestPath() string {
	if filepath.IsAbs(c.TestDir) || c.baseDir == "" {
		return filepath.Clean(c.TestDir)
	}
	return filepath.Join(c.baseDir, c.TestDir)
}

// BrowserOptions converts the config into launch options.
func (c *Config) BrowserOptions() browser.Options {
	return browser.Options{
		Headless: c.Headless,
		Timeout:  c.Timeout,
	}
}
