// Package cli wires the glasscheck commands together.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesyncim/glasscheck/internal/ctxlog"
	"github.com/thesyncim/glasscheck/pkg/config"
	"github.com/thesyncim/glasscheck/pkg/smoke"
)

// NewRootCommand builds the glasscheck command tree.
func NewRootCommand(version string) *cobra.Command {
	var flags Flags

	rootCmd := &cobra.Command{
		Use:   "glasscheck",
		Short: "Run browser smoke tests across chromium, firefox and webkit",
		Long: `glasscheck loads a project matrix (one project per browser engine), collects
*.spec.yaml test files from the test directory and runs every test in every
project, reporting pass/fail per project.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctxlog.New(flags.LogLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = ctxlog.FromContext(cmd.Context()).Sync()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", config.DefaultFile, "Config file (.yaml, .yml or .hcl)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCommand(&flags))
	rootCmd.AddCommand(newListCommand(&flags))
	return rootCmd
}

// loadConfig reads the config file (falling back to defaults when the
// implicit file is absent), applies flag overrides and validates.
func loadConfig(cmd *cobra.Command, flags *Flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(flags.ConfigPath)
	} else {
		cfg, err = config.LoadOrDefault(flags.ConfigPath)
	}
	if err != nil {
		return nil, err
	}

	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctxlog.FromContext(cmd.Context()).Debug("config loaded",
		zap.String("path", flags.ConfigPath),
		zap.Int("projects", len(cfg.Projects)),
		zap.String("testDir", cfg.TestPath()),
	)
	return cfg, nil
}

// collect loads and filters the cases under the configured test directory.
func collect(cfg *config.Config, grep string) ([]smoke.Case, error) {
	cases, err := smoke.LoadDir(cfg.TestPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load tests: %w", err)
	}
	return smoke.Filter(cases, grep)
}
