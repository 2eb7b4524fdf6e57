package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/clierr"
	"github.com/antopolskiy/skillz/internal/describe"
	"github.com/antopolskiy/skillz/internal/output"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Maintain the skills catalog file",
}

var catalogBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the catalog from a skills directory",
	Long: `Scans the skills directory and writes a catalog with one entry per skill.
Descriptions come from SKILL.json, the SKILL.md frontmatter, or the first
descriptive SKILL.md line; skills without one get a placeholder that
'skillz enhance' can improve later.`,
	RunE: runCatalogBuild,
}

func init() {
	catalogBuildCmd.Flags().String("skills-dir", "", "directory with one subdirectory per skill (default from config)")
	catalogBuildCmd.Flags().StringP("out", "o", "", "catalog file to write (default: --catalog or config)")
	catalogCmd.AddCommand(catalogBuildCmd)
	rootCmd.AddCommand(catalogCmd)
}

// catalogBuildResult is the JSON summary of a build.
type catalogBuildResult struct {
	File         string `json:"file"`
	Skills       int    `json:"skills"`
	Placeholders int    `json:"placeholders"`
}

func runCatalogBuild(cmd *cobra.Command, _ []string) error {
	skillsDir, _ := cmd.Flags().GetString("skills-dir")
	out, _ := cmd.Flags().GetString("out")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if skillsDir == "" {
		skillsDir = cfg.SkillsPath()
	}
	if out == "" {
		out = flagCatalog
	}
	if out == "" {
		out = cfg.CatalogPath()
	}

	if info, statErr := os.Stat(skillsDir); statErr != nil || !info.IsDir() {
		return clierr.Newf(clierr.InvalidInput, "skills directory not found: %s", skillsDir).
			WithDetails(map[string]any{"path": skillsDir})
	}

	cat, err := catalog.Build(skillsDir)
	if err != nil {
		return err
	}
	if err := cat.Save(out); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}

	placeholders := 0
	for _, it := range cat.Skills {
		if describe.IsGeneric(it.Description) {
			placeholders++
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, catalogBuildResult{File: out, Skills: len(cat.Skills), Placeholders: placeholders})
	}
	output.Messagef(os.Stdout, "Wrote %s (%d skills, %d placeholder descriptions)", out, len(cat.Skills), placeholders)
	if placeholders > 0 {
		output.Messagef(os.Stdout, "Run 'skillz enhance' to improve placeholder descriptions.")
	}
	return nil
}
