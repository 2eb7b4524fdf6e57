// Package cmd implements the skillz CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/clierr"
	"github.com/antopolskiy/skillz/internal/config"
	"github.com/antopolskiy/skillz/internal/logging"
	"github.com/antopolskiy/skillz/internal/output"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON     bool
	flagTable    bool
	flagCompact  bool
	flagConfig   string
	flagCatalog  string
	flagNoColor  bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "skillz",
	Short: "Browse a skill catalog and generate installer scripts",
	Long: `skillz lists the skills in a catalog, lets you pick a set of them, and
writes a PowerShell or shell script that clones the skill repository and
copies the chosen skills into your agent's skill directory.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "directory containing "+config.ConfigFileName)
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "path to a skills catalog JSON file")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level for progress messages (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	_, err := rootCmd.ExecuteContextC(ctx)
	stop()
	if err == nil {
		return
	}

	// SilentError exits with its code and prints nothing.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv(output.EnvVar) == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Anything else is reported as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// loadConfig loads the config named by --config, or the nearest one above the
// working directory. Without either, defaults rooted at the working directory
// are returned.
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err != nil {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) && cliErr.Code == clierr.ConfigNotFound {
			cfg := config.NewDefault()
			cfg.SetDir(cwd)
			return cfg, nil
		}
		return nil, err
	}
	return config.Load(dir)
}

// loadCatalog returns the catalog from --catalog, the configured catalog file
// if it exists, or the embedded catalog. The returned path is empty for the
// embedded catalog.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, string, error) {
	path := flagCatalog
	if path == "" {
		path = cfg.CatalogPath()
		if _, err := os.Stat(path); err != nil {
			c, err := catalog.Embedded()
			return c, "", err
		}
	}

	c, err := catalog.Load(path)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, "", clierr.Newf(clierr.CatalogNotFound, "catalog not found: %s", path).
			WithDetails(map[string]any{"path": path})
	}
	if err != nil {
		return nil, "", err
	}
	return c, path, nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// newLogger returns the progress logger, writing to stderr.
func newLogger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, clierr.New(clierr.InvalidInput, err.Error())
	}
	return logging.New(os.Stderr, logging.Options{
		Level:   level,
		NoColor: flagNoColor || os.Getenv("NO_COLOR") != "",
	}), nil
}
