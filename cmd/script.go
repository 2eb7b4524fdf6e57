package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/antopolskiy/skillz/internal/agent"
	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/clierr"
	"github.com/antopolskiy/skillz/internal/config"
	"github.com/antopolskiy/skillz/internal/installscript"
	"github.com/antopolskiy/skillz/internal/output"
	"github.com/antopolskiy/skillz/internal/selection"
)

const (
	scriptModeUnix    = 0o755
	scriptModeWindows = 0o644
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Generate an installer script for selected skills",
	Long: `Generates a PowerShell (Windows) or shell (Linux/macOS) script that clones
the skill repository and copies the selected skills into the agent's skill
directory under your home directory.

Skills are chosen with --skill (names or globs), --category, or --all. Without
any of these an interactive menu is shown when stdin is a terminal.`,
	RunE: runScript,
}

func init() {
	scriptCmd.Flags().String("platform", "", "target platform: windows or unix (default: current OS or config)")
	scriptCmd.Flags().StringSlice("skill", nil, "skill names or glob patterns to include")
	scriptCmd.Flags().StringSlice("category", nil, "include every skill in these categories")
	scriptCmd.Flags().Bool("all", false, "include every skill in the catalog")
	scriptCmd.Flags().String("agent", "", "agent whose skill directory is targeted ("+strings.Join(agent.Names(), ", ")+")")
	scriptCmd.Flags().StringP("out", "o", "", "output file (default install-<product>.<ext>; '-' for stdout)")
	scriptCmd.Flags().Bool("stdout", false, "print the script instead of writing a file")
	rootCmd.AddCommand(scriptCmd)
}

// scriptResult is the JSON summary of a written script.
type scriptResult struct {
	File          string   `json:"file"`
	Platform      string   `json:"platform"`
	PlatformLabel string   `json:"platform_label"`
	Product       string   `json:"product"`
	InstallDir    string   `json:"install_dir"`
	Skills        []string `json:"skills"`
}

func runScript(cmd *cobra.Command, _ []string) error {
	platformFlag, _ := cmd.Flags().GetString("platform")
	agentFlag, _ := cmd.Flags().GetString("agent")
	outFlag, _ := cmd.Flags().GetString("out")
	toStdout, _ := cmd.Flags().GetBool("stdout")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	platform, err := resolvePlatform(platformFlag, cfg)
	if err != nil {
		return err
	}
	opts, err := resolveScriptOptions(agentFlag, cfg)
	if err != nil {
		return err
	}

	cat, _, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	set, err := selectionFromFlags(cmd, cat)
	if err != nil {
		return err
	}
	if set.Len() == 0 {
		if !isInteractive() {
			return clierr.New(clierr.NoSkillsSelected,
				"no skills selected (use --skill, --category, or --all, or run in a terminal)")
		}
		names, err := selectSkills("Select skills to install:", cat.Skills, set, installedSkills(agentFlag, cfg, cat))
		if errors.Is(err, errMenuCanceled) {
			output.Messagef(os.Stderr, "No script written.")
			return nil
		}
		if err != nil {
			return err
		}
		set = selection.New(names...)
	}
	if set.Len() == 0 {
		return clierr.New(clierr.NoSkillsSelected, "no skills selected")
	}

	script, err := installscript.Generate(set.Names(), platform, time.Now(), opts)
	if err != nil {
		return fmt.Errorf("generating script: %w", err)
	}

	if toStdout || outFlag == "-" {
		fmt.Fprint(os.Stdout, script.Text)
		return nil
	}

	path := outFlag
	if path == "" {
		path = script.Filename()
	}
	if err := writeScript(path, script); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, scriptResult{
			File:          path,
			Platform:      string(script.Platform),
			PlatformLabel: script.PlatformLabel,
			Product:       script.Product,
			InstallDir:    opts.InstallDir,
			Skills:        set.Names(),
		})
	}
	output.Messagef(os.Stdout, "Wrote %s (%d skill(s), %s)", path, script.Skills, script.PlatformLabel)
	output.Messagef(os.Stdout, "Run: %s", runHint(path, platform))
	return nil
}

// resolvePlatform picks the platform from the flag, then config, then the
// running OS.
func resolvePlatform(flag string, cfg *config.Config) (installscript.Platform, error) {
	if flag != "" {
		p, err := installscript.ParsePlatform(flag)
		if err != nil {
			return "", clierr.Newf(clierr.InvalidPlatform, "invalid platform %q (valid: windows, unix)", flag)
		}
		return p, nil
	}
	if p := cfg.Platform(); p != "" {
		return p, nil
	}
	return installscript.DetectPlatform(runtime.GOOS), nil
}

// resolveScriptOptions applies an --agent override to the configured options.
func resolveScriptOptions(agentName string, cfg *config.Config) (installscript.Options, error) {
	opts := cfg.ScriptOptions()
	if agentName == "" {
		return opts, nil
	}
	a, ok := agent.ByName(agentName)
	if !ok {
		return opts, clierr.Newf(clierr.InvalidAgent, "unknown agent %q (valid: %s)",
			agentName, strings.Join(agent.Names(), ", "))
	}
	opts.InstallDir = a.InstallDir()
	return opts, nil
}

// selectionFromFlags builds the selection from --all, --category, and --skill.
// An empty set means no selection flags were given.
func selectionFromFlags(cmd *cobra.Command, cat *catalog.Catalog) (*selection.Set, error) {
	all, _ := cmd.Flags().GetBool("all")
	categories, _ := cmd.Flags().GetStringSlice("category")
	skills, _ := cmd.Flags().GetStringSlice("skill")

	set := selection.New()
	if all {
		set.SelectMatching(cat.Skills)
	}
	if len(categories) > 0 {
		matched := catalog.Filter(cat.Skills, catalog.FilterOptions{Categories: categories})
		if len(matched) == 0 {
			return nil, clierr.Newf(clierr.SkillNotFound, "no skills in categories: %s", strings.Join(categories, ", ")).
				WithDetails(map[string]any{"categories": categories})
		}
		set.SelectMatching(matched)
	}
	for _, s := range skills {
		if err := addSkillArg(set, cat, strings.TrimSpace(s)); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// addSkillArg adds a single skill name, or every skill matching a glob.
func addSkillArg(set *selection.Set, cat *catalog.Catalog, arg string) error {
	if arg == "" {
		return nil
	}
	if catalog.IsPattern(arg) {
		if err := catalog.ValidatePatterns([]string{arg}); err != nil {
			return clierr.New(clierr.InvalidInput, err.Error())
		}
		matched := catalog.Filter(cat.Skills, catalog.FilterOptions{Patterns: []string{arg}})
		if len(matched) == 0 {
			return clierr.Newf(clierr.SkillNotFound, "no skills match %q", arg).
				WithDetails(map[string]any{"pattern": arg})
		}
		set.SelectMatching(matched)
		return nil
	}
	if _, ok := cat.Find(arg); !ok {
		return clierr.Newf(clierr.SkillNotFound, "unknown skill %q", arg).
			WithDetails(map[string]any{"skill": arg})
	}
	set.Add(arg)
	return nil
}

// installedSkills marks catalog skills already present in the agent's
// directory under the user's home.
func installedSkills(agentName string, cfg *config.Config, cat *catalog.Catalog) map[string]bool {
	if agentName == "" {
		agentName = cfg.Agent
	}
	a, ok := agent.ByName(agentName)
	if !ok {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	out := make(map[string]bool)
	for _, n := range a.Installed(home, cat.Names()) {
		out[n] = true
	}
	return out
}

func writeScript(path string, s installscript.Script) error {
	mode := os.FileMode(scriptModeUnix)
	if s.Platform == installscript.Windows {
		mode = scriptModeWindows
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:mnd // directory permissions
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(s.Text), mode); err != nil {
		return fmt.Errorf("writing script: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("setting script permissions: %w", err)
	}
	return nil
}

func runHint(path string, p installscript.Platform) string {
	if p == installscript.Windows {
		return `powershell -ExecutionPolicy Bypass -File .\` + filepath.Base(path)
	}
	if filepath.IsAbs(path) || strings.ContainsRune(path, filepath.Separator) {
		return "bash " + path
	}
	return "bash ./" + path
}

// isInteractive returns true if stdin is a real terminal (not /dev/null, NUL, or a pipe).
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
