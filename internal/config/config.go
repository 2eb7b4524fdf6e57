package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/antopolskiy/skillz/internal/agent"
	"github.com/antopolskiy/skillz/internal/clierr"
	"github.com/antopolskiy/skillz/internal/installscript"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no skillz config found (run 'skillz init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents a skillz project configuration.
type Config struct {
	Version int    `yaml:"version" json:"version"`
	Product string `yaml:"product" json:"product"`
	RepoURL string `yaml:"repo_url" json:"repo_url"`
	// Agent picks the install directory unless InstallDir overrides it.
	Agent      string `yaml:"agent" json:"agent"`
	InstallDir string `yaml:"install_dir,omitempty" json:"install_dir,omitempty"`
	// Catalog and SkillsDir are relative to the config directory.
	Catalog         string `yaml:"catalog" json:"catalog"`
	SkillsDir       string `yaml:"skills_dir" json:"skills_dir"`
	DefaultPlatform string `yaml:"default_platform,omitempty" json:"default_platform,omitempty"`

	// dir is the absolute path to the directory holding the config file.
	dir string `yaml:"-"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:   CurrentVersion,
		Product:   DefaultProduct,
		RepoURL:   DefaultRepoURL,
		Agent:     agent.Default,
		Catalog:   DefaultCatalog,
		SkillsDir: DefaultSkillsDir,
	}
}

// Dir returns the absolute path to the config directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the config directory.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// CatalogPath returns the absolute catalog path.
func (c *Config) CatalogPath() string {
	return c.resolve(c.Catalog)
}

// SkillsPath returns the absolute path of the local skills checkout.
func (c *Config) SkillsPath() string {
	return c.resolve(c.SkillsDir)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if strings.TrimSpace(c.Product) == "" {
		return fmt.Errorf("%w: product is required", ErrInvalid)
	}
	if strings.TrimSpace(c.RepoURL) == "" {
		return fmt.Errorf("%w: repo_url is required", ErrInvalid)
	}
	if _, ok := agent.ByName(c.Agent); !ok {
		return fmt.Errorf("%w: unknown agent %q (valid: %s)", ErrInvalid, c.Agent, strings.Join(agent.Names(), ", "))
	}
	if c.InstallDir != "" && (path.IsAbs(c.InstallDir) || filepath.IsAbs(c.InstallDir)) {
		return fmt.Errorf("%w: install_dir must be relative to the home directory", ErrInvalid)
	}
	if c.DefaultPlatform != "" {
		if _, err := installscript.ParsePlatform(c.DefaultPlatform); err != nil {
			return fmt.Errorf("%w: default_platform: %w", ErrInvalid, err)
		}
	}
	return nil
}

// ScriptOptions converts the config into installer script options.
func (c *Config) ScriptOptions() installscript.Options {
	opts := installscript.DefaultOptions()
	opts.Product = c.Product
	opts.RepoURL = c.RepoURL
	if a, ok := agent.ByName(c.Agent); ok {
		opts.InstallDir = a.InstallDir()
	}
	if c.InstallDir != "" {
		opts.InstallDir = filepath.ToSlash(c.InstallDir)
	}
	return opts
}

// Platform returns the configured default platform, or "" when unset.
func (c *Config) Platform() installscript.Platform {
	p, err := installscript.ParsePlatform(c.DefaultPlatform)
	if err != nil {
		return ""
	}
	return p
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates the config in dir.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(absDir, ConfigFileName)) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	if err := migrate(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindDir walks upward from startDir looking for a directory containing
// .skillz.yml and returns its absolute path.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.ConfigNotFound,
				"no skillz config found (run 'skillz init' to create one)")
		}
		dir = parent
	}
}
