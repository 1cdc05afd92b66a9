package cli

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesyncim/glasscheck/internal/ctxlog"
	"github.com/thesyncim/glasscheck/internal/storage"
	"github.com/thesyncim/glasscheck/internal/ui"
	"github.com/thesyncim/glasscheck/pkg/browser"
	"github.com/thesyncim/glasscheck/pkg/runner"
)

// newLauncher builds the browser driver for a run. Tests swap it out.
var newLauncher = browser.NewLauncher

func newRunCommand(flags *Flags) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the smoke tests in every project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, flags)
		},
	}
	runCmd.Flags().StringSliceVarP(&flags.Projects, "project", "p", nil, "Only run the named project (repeatable)")
	runCmd.Flags().StringVarP(&flags.Grep, "grep", "g", "", "Only run tests whose title matches this regular expression")
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "j", 0, "Maximum number of projects running at once")
	runCmd.Flags().StringVar(&flags.Driver, "driver", "", "Browser driver: playwright or rod")
	runCmd.Flags().BoolVar(&flags.Headed, "headed", false, "Show browser windows")
	runCmd.Flags().StringVarP(&flags.TestDir, "test-dir", "t", "", "Directory to collect *.spec.yaml files from")
	runCmd.Flags().StringVar(&flags.JSONPath, "json", "", "Write a JSON report to this path")
	runCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Print one line per test instead of a progress bar")
	return runCmd
}

func runTests(cmd *cobra.Command, flags *Flags) error {
	ctx := cmd.Context()
	logger := ctxlog.FromContext(ctx)

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	projects, err := cfg.SelectProjects(flags.Projects)
	if err != nil {
		return err
	}
	cases, err := collect(cfg, flags.Grep)
	if err != nil {
		return err
	}

	launcher, err := newLauncher(cfg.Driver)
	if err != nil {
		return err
	}
	defer func() {
		if err := launcher.Close(); err != nil {
			logger.Warn("driver shutdown failed", zap.Error(err))
		}
	}()

	reporter := ui.NewConsole(cmd.OutOrStdout(), progressWriter(flags.NoProgress))
	r, err := runner.New(cfg, launcher,
		runner.WithLogger(logger),
		runner.WithReporter(reporter),
		runner.WithProjects(projects),
	)
	if err != nil {
		return err
	}

	summary, err := r.Run(ctx, cases)
	if err != nil {
		return err
	}

	if flags.JSONPath != "" {
		if err := storage.Save(flags.JSONPath, summary, time.Now()); err != nil {
			return err
		}
		logger.Info("report written", zap.String("path", flags.JSONPath))
	}
	return summary.Err()
}

// progressWriter returns stderr when a progress bar makes sense there.
func progressWriter(disabled bool) io.Writer {
	if disabled || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return os.Stderr
}
