package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	assetdom "folio/internal/domain/asset"
	siteDI "folio/internal/platform/di/site"
)

var errNoBrowser = errors.New("configured asset store cannot list or delete objects")

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Inspect and remove uploaded objects",
}

var assetsLsCmd = &cobra.Command{
	Use:   "ls [prefix]",
	Short: "List stored object paths",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		return withBrowser(cmd, func(ctx context.Context, b assetdom.Browser) error {
			paths, err := b.List(ctx, prefix)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		})
	},
}

var assetsRmCmd = &cobra.Command{
	Use:   "rm <object-path|public-url>...",
	Short: "Delete stored objects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBrowser(cmd, func(ctx context.Context, b assetdom.Browser) error {
			for _, arg := range args {
				p := arg
				if op, ok := b.ObjectPathFromURL(arg); ok {
					p = op
				}
				if err := b.Delete(ctx, p); err != nil {
					return fmt.Errorf("rm %s: %w", p, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", p)
			}
			return nil
		})
	},
}

func init() {
	assetsCmd.AddCommand(assetsLsCmd, assetsRmCmd)
}

func withBrowser(cmd *cobra.Command, fn func(ctx context.Context, b assetdom.Browser) error) error {
	return withContainer(cmd, func(ctx context.Context, c *siteDI.Container) error {
		b, ok := c.Assets.(assetdom.Browser)
		if !ok {
			return errNoBrowser
		}
		return fn(ctx, b)
	})
}
