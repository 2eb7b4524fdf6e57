package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/clierr"
	"github.com/antopolskiy/skillz/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List catalog skills grouped by category",
	Long: `Lists the skills in the catalog, grouped by category with General last.
Filters combine: a skill must match the search text, one of the categories,
and one of the name patterns when each is given.`,
	RunE: runList,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the number of skills per category",
	RunE:  runCategories,
}

func init() {
	listCmd.Flags().String("search", "", "case-insensitive text to find in names and descriptions")
	listCmd.Flags().StringSlice("category", nil, "only list skills in these categories")
	listCmd.Flags().StringSlice("match", nil, "only list skills whose name matches a glob (e.g. 'cloudflare-*')")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	search, _ := cmd.Flags().GetString("search")
	categories, _ := cmd.Flags().GetStringSlice("category")
	patterns, _ := cmd.Flags().GetStringSlice("match")

	if err := catalog.ValidatePatterns(patterns); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, _, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	items := catalog.Filter(cat.Skills, catalog.FilterOptions{
		Search:     search,
		Categories: categories,
		Patterns:   patterns,
	})
	groups := catalog.Group(items)

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, groups)
	case output.FormatCompact:
		output.CatalogCompact(os.Stdout, groups)
	default:
		output.CatalogTable(os.Stdout, groups)
	}
	return nil
}

func runCategories(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, _, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	counts := catalog.Categories(cat.Skills)
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, counts)
	case output.FormatCompact:
		output.CategoryCompact(os.Stdout, counts)
	default:
		output.CategoryTable(os.Stdout, counts)
	}
	return nil
}
