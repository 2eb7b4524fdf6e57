package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/skillz/internal/clierr"
	"github.com/antopolskiy/skillz/internal/enhance"
	"github.com/antopolskiy/skillz/internal/output"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Replace placeholder descriptions using each skill's SKILL.md",
	Long: `Finds catalog skills whose description is the "Claude Code skill for ..."
placeholder, extracts a summary from <skills-dir>/<name>/SKILL.md, and writes
the improved descriptions back to the catalog file.`,
	RunE: runEnhance,
}

func init() {
	enhanceCmd.Flags().String("skills-dir", "", "directory with one subdirectory per skill (default from config)")
	enhanceCmd.Flags().Bool("dry-run", false, "report what would change without saving the catalog")
	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, _ []string) error {
	skillsDir, _ := cmd.Flags().GetString("skills-dir")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, path, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	if path == "" && !dryRun {
		return clierr.Newf(clierr.CatalogNotFound,
			"no catalog file at %s (pass --catalog, or --dry-run to preview against the built-in catalog)", cfg.CatalogPath())
	}
	if skillsDir == "" {
		skillsDir = cfg.SkillsPath()
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := enhance.Run(ctx, cat, enhance.DirSource{Dir: skillsDir}, enhance.Options{
		DryRun: dryRun,
		Logger: logger.With("catalog", path),
	})
	if err != nil {
		return err
	}

	if report.Changed() && !dryRun {
		if err := cat.Save(path); err != nil {
			return fmt.Errorf("saving catalog: %w", err)
		}
		logger.Info("catalog updated", "path", path, "enhanced", report.Enhanced)
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, report)
	case output.FormatCompact:
		output.EnhanceCompact(os.Stdout, report)
	default:
		output.EnhanceTable(os.Stdout, report)
	}
	return nil
}
