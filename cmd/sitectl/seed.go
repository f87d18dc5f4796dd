package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	siteDI "folio/internal/platform/di/site"
	catalogdom "folio/internal/domain/catalog"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample blog posts, works and products",
	Long: `Inserts two sample documents into each of the blog, works and products
collections. Collections that already hold documents are skipped unless
--force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *siteDI.Container) error {
			counts, err := seedCollections(ctx, c.CatalogRepo, time.Now().UTC(), seedForce)
			for _, kind := range catalogdom.Kinds {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %d inserted\n", kind, counts[kind])
			}
			return err
		})
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "insert even into non-empty collections")
}

// seedCollections inserts sampleDocuments through the repository port.
func seedCollections(ctx context.Context, repo catalogdom.Repository, now time.Time, force bool) (map[catalogdom.Kind]int, error) {
	counts := map[catalogdom.Kind]int{}
	samples := sampleDocuments()
	for _, kind := range catalogdom.Kinds {
		col := kind.Collection()
		if !force {
			existing, err := repo.List(ctx, col, 1)
			if err != nil {
				return counts, fmt.Errorf("seed: list %s: %w", col, err)
			}
			if len(existing) > 0 {
				continue
			}
		}
		for i, fields := range samples[kind] {
			// distinct timestamps keep the sample order stable
			ts := now.Add(-time.Duration(i) * time.Minute)
			fields["createdAt"] = ts
			fields["updatedAt"] = ts
			if _, err := repo.Create(ctx, col, fields); err != nil {
				return counts, fmt.Errorf("seed: create %s: %w", col, err)
			}
			counts[kind]++
		}
	}
	return counts, nil
}

// sampleDocuments use the legacy field layout (image, name, details map).
func sampleDocuments() map[catalogdom.Kind][]map[string]any {
	return map[catalogdom.Kind][]map[string]any{
		catalogdom.KindBlog: {
			{
				"title":   "Getting Started with 3D Design",
				"content": "Learn the basics of 3D design and how to create stunning visualizations...",
				"excerpt": "A comprehensive guide to 3D design fundamentals...",
				"image":   "https://example.com/images/3d-design.jpg",
			},
			{
				"title":   "The Future of Digital Art",
				"content": "Exploring the latest trends and technologies in digital art...",
				"excerpt": "Discover how digital art is evolving in the modern era...",
				"image":   "https://example.com/images/digital-art.jpg",
			},
		},
		catalogdom.KindWorks: {
			{
				"title":       "Modern Living Room Design",
				"description": "A contemporary living room design with minimalist aesthetics...",
				"image":       "https://example.com/images/living-room.jpg",
				"modelUrl":    "https://example.com/models/living-room.glb",
				"gallery":     []any{"https://example.com/images/living-room-1.jpg", "https://example.com/images/living-room-2.jpg"},
				"category":    "Interior Design",
				"details":     map[string]any{"dimensions": "5m x 4m", "materials": "Wood, Glass, Metal", "year": "2023"},
			},
			{
				"title":       "Urban Office Space",
				"description": "A modern office space designed for productivity and comfort...",
				"image":       "https://example.com/images/office-space.jpg",
				"modelUrl":    "https://example.com/models/office-space.glb",
				"gallery":     []any{"https://example.com/images/office-1.jpg", "https://example.com/images/office-2.jpg"},
				"category":    "Office Design",
				"details":     map[string]any{"dimensions": "8m x 6m", "materials": "Concrete, Steel, Glass", "year": "2023"},
			},
		},
		catalogdom.KindShop: {
			{
				"name":        "Minimalist Chair",
				"description": "A sleek and comfortable chair designed for modern living spaces...",
				"price":       299.99,
				"image":       "https://example.com/images/chair.jpg",
				"category":    "Furniture",
				"specs":       map[string]any{"dimensions": "50cm x 50cm x 80cm", "weight": "5kg", "material": "Wood, Fabric", "warranty": "2 years"},
				"gallery":     []any{"https://example.com/images/chair-1.jpg", "https://example.com/images/chair-2.jpg"},
			},
			{
				"name":        "Smart Desk Lamp",
				"description": "An intelligent desk lamp with adjustable brightness and color temperature...",
				"price":       89.99,
				"image":       "https://example.com/images/lamp.jpg",
				"category":    "Gadgets",
				"specs":       map[string]any{"dimensions": "30cm x 15cm x 15cm", "weight": "1.2kg", "material": "Aluminum, LED", "warranty": "1 year"},
				"gallery":     []any{"https://example.com/images/lamp-1.jpg", "https://example.com/images/lamp-2.jpg"},
			},
		},
	}
}
