package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// Load reads a config file on top of Default(). The format is chosen by
// extension: .yaml/.yml or .hcl. Keys the file omits keep their defaults.
// The result is not validated; call Validate after applying overrides.
func Load(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cfg, err = loadYAML(path)
	case ".hcl":
		cfg, err = loadHCL(path)
	default:
		return nil, fmt.Errorf("unsupported config format %q for %s (want .yaml, .yml or .hcl)", ext, path)
	}
	if err != nil {
		return nil, err
	}

	cfg.baseDir = filepath.Dir(path)
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default() when path does not
// exist. Used for the implicit config file.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

func loadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// hclConfig is the HCL shape of Config. Durations are strings ("30s").
type hclConfig struct {
	TestDir       *string      `hcl:"test_dir,optional"`
	Workers       *int         `hcl:"workers,optional"`
	Timeout       *string      `hcl:"timeout,optional"`
	ExpectTimeout *string      `hcl:"expect_timeout,optional"`
	Headless      *bool        `hcl:"headless,optional"`
	Driver        *string      `hcl:"driver,optional"`
	Projects      []hclProject `hcl:"project,block"`
}

type hclProject struct {
	Name        string `hcl:"name,label"`
	BrowserName string `hcl:"browser_name"`
}

func loadHCL(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL config %s: %w", path, diags)
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL config %s: %w", path, diags)
	}

	cfg := Default()
	if raw.TestDir != nil {
		cfg.TestDir = *raw.TestDir
	}
	if raw.Workers != nil {
		cfg.Workers = *raw.Workers
	}
	if raw.Headless != nil {
		cfg.Headless = *raw.Headless
	}
	if raw.Driver != nil {
		cfg.Driver = *raw.Driver
	}
	if raw.Timeout != nil {
		d, err := time.ParseDuration(*raw.Timeout)
		if err != nil {
			return nil, fmt.Errorf("config %s: timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	if raw.ExpectTimeout != nil {
		d, err := time.ParseDuration(*raw.ExpectTimeout)
		if err != nil {
			return nil, fmt.Errorf("config %s: expect_timeout: %w", path, err)
		}
		cfg.Expect.Timeout = d
	}
	if len(raw.Projects) > 0 {
		cfg.Projects = make([]Project, 0, len(raw.Projects))
		for _, p := range raw.Projects {
			cfg.Projects = append(cfg.Projects, Project{
				Name: p.Name,
				Use:  Use{BrowserName: p.BrowserName},
			})
		}
	}
	return cfg, nil
}
