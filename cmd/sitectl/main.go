// Package main implements sitectl, the operator CLI of the site: seed sample
// collections, inspect the catalog and manage uploaded assets.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appcfg "folio/internal/infra/config"
	"folio/internal/infra/logging"
	shared "folio/internal/platform/di/shared"
	siteDI "folio/internal/platform/di/site"
)

var (
	// Global flags
	verbose bool
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sitectl",
	Short: "Operate the portfolio site backend",
	Long: `sitectl talks to the same stores as the site server, configured by the
same environment variables (CATALOG_STORE, ASSET_STORE, BOLT_PATH, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = logging.New(false, level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall command timeout")

	rootCmd.AddCommand(seedCmd, listCmd, uploadCmd, assetsCmd, categoriesCmd)
}

// openContainer builds the DI container from the environment.
func openContainer(ctx context.Context) (*siteDI.Container, error) {
	cfg := appcfg.Load()
	infra, err := shared.NewInfra(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	cont, err := siteDI.NewContainer(ctx, infra, logger)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	return cont, nil
}

// withContainer runs fn with a container and a timeout-bound context.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *siteDI.Container) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cont, err := openContainer(ctx)
	if err != nil {
		return err
	}
	defer cont.Close()
	return fn(ctx, cont)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
