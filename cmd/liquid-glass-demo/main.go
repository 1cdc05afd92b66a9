// Liquid Glass Demo Server
//
// Serves the demo page the shipped smoke test targets. Run it before
// `glasscheck run` when no other application is listening on :3000.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesyncim/glasscheck/cmd/liquid-glass-demo/server"
	"github.com/thesyncim/glasscheck/internal/ctxlog"
)

func main() {
	cfg := server.DefaultConfig()
	cfg.Addr = ":3000"
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "liquid-glass-demo",
		Short: "Serve the Liquid Glass demo page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctxlog.New(logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return serve(cmd.Context(), cfg, logger)
		},
	}
	rootCmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	rootCmd.Flags().StringVar(&cfg.Title, "title", cfg.Title, "Document title of the served page")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg server.Config, logger *zap.Logger) error {
	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if _, err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	fmt.Printf("Open %s (title %q)\n", srv.URL(), cfg.Title)

	// Block until interrupted
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
