package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	assetdom "folio/internal/domain/asset"
	siteDI "folio/internal/platform/di/site"
)

var uploadType string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image or 3D model and print its public URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := assetdom.ParseType(uploadType)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		return withContainer(cmd, func(ctx context.Context, c *siteDI.Container) error {
			stored, err := c.AssetUC.Upload(ctx, assetdom.Upload{
				Type:        typ,
				FileName:    filepath.Base(args[0]),
				ContentType: http.DetectContentType(data),
				Data:        data,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, stored.URL)
			if stored.ThumbnailURL != "" {
				fmt.Fprintln(out, stored.ThumbnailURL)
			}
			return nil
		})
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadType, "type", string(assetdom.TypeImage), "image or model")
}
