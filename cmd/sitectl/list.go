package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	catalogdom "folio/internal/domain/catalog"
	siteDI "folio/internal/platform/di/site"
)

var (
	listQuery    string
	listCategory string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list <blog|works|shop>",
	Short: "List catalog items of one kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := catalogdom.ParseKind(args[0])
		if err != nil {
			return err
		}
		state := catalogdom.DefaultFilter()
		state.SearchTerm = listQuery
		if listCategory != "" {
			state.Category = listCategory
		}

		return withContainer(cmd, func(ctx context.Context, c *siteDI.Container) error {
			res := c.CatalogUC.List(ctx, kind, state)
			if res.Failed() {
				return fmt.Errorf("list %s: %w", kind, res.Err)
			}
			out := cmd.OutOrStdout()
			if listJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Items)
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRICE")
			for _, it := range res.Items {
				price := "-"
				if it.HasPrice() {
					price = it.Price.Decimal.StringFixed(2)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.ID, it.Title, it.Category, price)
			}
			return w.Flush()
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the shared work categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *siteDI.Container) error {
			cats, err := c.AdminUC.ListCategories(ctx)
			if err != nil {
				return err
			}
			for _, cat := range cats {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", cat.Slug, cat.Name)
			}
			return nil
		})
	},
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "search term")
	listCmd.Flags().StringVar(&listCategory, "category", "", "category filter")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print items as JSON")
}
