package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/skillz/internal/agent"
	"github.com/antopolskiy/skillz/internal/clierr"
	"github.com/antopolskiy/skillz/internal/config"
	"github.com/antopolskiy/skillz/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a " + config.ConfigFileName + " in the current directory",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("product", "", "skill collection name used in scripts")
	initCmd.Flags().String("repo-url", "", "git repository cloned by generated scripts")
	initCmd.Flags().String("agent", "", "default agent (claude, codex, cursor, openclaw; default: first found in home)")
	initCmd.Flags().String("platform", "", "default script platform (windows or unix)")
	initCmd.Flags().String("dir", "", "directory to create the config in (default: current directory)")
	initCmd.Flags().Bool("gitignore", false, "add generated script names to .gitignore without asking")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	gitignore, _ := cmd.Flags().GetBool("gitignore")
	if dir == "" {
		dir = flagConfig
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		dir = cwd
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	cfg := config.NewDefault()
	cfg.SetDir(absDir)
	if _, err := os.Stat(cfg.ConfigPath()); err == nil {
		return clierr.Newf(clierr.ConfigExists, "config already exists: %s", cfg.ConfigPath()).
			WithDetails(map[string]any{"path": cfg.ConfigPath()})
	}

	applyInitFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}

	if err := os.MkdirAll(absDir, 0o750); err != nil { //nolint:mnd // directory permissions
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	switch {
	case gitignore:
		err = ignoreGeneratedScripts(absDir)
	case isInteractive() && outputFormat() != output.FormatJSON:
		err = offerIgnoreGeneratedScripts(absDir, os.Stdin)
	}
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"path": cfg.ConfigPath(), "config": cfg})
	}
	output.Messagef(os.Stdout, "Created %s", cfg.ConfigPath())
	return nil
}

func applyInitFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("product"); v != "" {
		cfg.Product = v
	}
	if v, _ := cmd.Flags().GetString("repo-url"); v != "" {
		cfg.RepoURL = v
	}
	if v, _ := cmd.Flags().GetString("agent"); v != "" {
		cfg.Agent = v
	} else if home, err := os.UserHomeDir(); err == nil {
		cfg.Agent = defaultAgent(home)
	}
	if v, _ := cmd.Flags().GetString("platform"); v != "" {
		cfg.DefaultPlatform = v
	}
}

// defaultAgent picks the first agent already set up in home, or the default
// agent when none is.
func defaultAgent(home string) string {
	if detected := agent.Detect(home); len(detected) > 0 {
		return detected[0].Name
	}
	return agent.Default
}
