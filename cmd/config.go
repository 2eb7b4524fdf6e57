package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/skillz/internal/agent"
	"github.com/antopolskiy/skillz/internal/clierr"
	"github.com/antopolskiy/skillz/internal/config"
	"github.com/antopolskiy/skillz/internal/installscript"
	"github.com/antopolskiy/skillz/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify skillz configuration",
	Long:  `View the resolved configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func setString(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		*field(c) = v
		return nil
	}
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"product": {
			get:      func(c *config.Config) any { return c.Product },
			set:      setString(func(c *config.Config) *string { return &c.Product }),
			writable: true,
		},
		"repo_url": {
			get:      func(c *config.Config) any { return c.RepoURL },
			set:      setString(func(c *config.Config) *string { return &c.RepoURL }),
			writable: true,
		},
		"agent": {
			get: func(c *config.Config) any { return c.Agent },
			set: func(c *config.Config, v string) error {
				a, ok := agent.ByName(v)
				if !ok {
					return clierr.Newf(clierr.InvalidAgent,
						"invalid agent %q; allowed: %s", v, strings.Join(agent.Names(), ", "))
				}
				c.Agent = a.Name
				return nil
			},
			writable: true,
		},
		"install_dir": {
			get:      func(c *config.Config) any { return c.ScriptOptions().InstallDir },
			set:      setString(func(c *config.Config) *string { return &c.InstallDir }),
			writable: true,
		},
		"catalog": {
			get:      func(c *config.Config) any { return c.Catalog },
			set:      setString(func(c *config.Config) *string { return &c.Catalog }),
			writable: true,
		},
		"skills_dir": {
			get:      func(c *config.Config) any { return c.SkillsDir },
			set:      setString(func(c *config.Config) *string { return &c.SkillsDir }),
			writable: true,
		},
		"default_platform": {
			get: func(c *config.Config) any { return c.DefaultPlatform },
			set: func(c *config.Config, v string) error {
				p, err := installscript.ParsePlatform(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidPlatform, "invalid platform %q; allowed: windows, unix", v)
				}
				c.DefaultPlatform = string(p)
				return nil
			},
			writable: true,
		},
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"product",
		"repo_url",
		"agent",
		"install_dir",
		"catalog",
		"skills_dir",
		"default_platform",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		fmt.Fprintf(os.Stdout, "%-20s %v\n", key, formatConfigValue(accessors[key].get(cfg)))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	val := acc.get(cfg)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}
	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(cfg.ConfigPath()); statErr != nil {
		return clierr.New(clierr.ConfigNotFound, config.ErrNotFound.Error())
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}
	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func formatConfigValue(val any) string {
	if s, ok := val.(string); ok && s == "" {
		return "--"
	}
	return fmt.Sprintf("%v", val)
}
