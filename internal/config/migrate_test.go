package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/antopolskiy/skillz/internal/agent"
)

func TestMigrateCurrentVersionNoop(t *testing.T) {
	cfg := NewDefault()
	if err := migrate(cfg); err != nil {
		t.Errorf("migrate() current version: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
}

func TestMigrateNewerVersionErrors(t *testing.T) {
	cfg := NewDefault()
	cfg.Version = CurrentVersion + 1

	err := migrate(cfg)
	if err == nil {
		t.Fatal("migrate() newer version: expected error, got nil")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("migrate() error = %v, want ErrInvalid", err)
	}
}

func TestMigrateZeroVersionErrors(t *testing.T) {
	cfg := NewDefault()
	cfg.Version = 0

	if err := migrate(cfg); !errors.Is(err, ErrInvalid) {
		t.Errorf("migrate() error = %v, want ErrInvalid", err)
	}
}

func TestMigrateV1ToV2(t *testing.T) {
	cfg := &Config{Version: 1, Product: "Old", RepoURL: DefaultRepoURL, InstallDir: ".claude/skills"}

	if err := migrate(cfg); err != nil {
		t.Fatalf("migrate() v1→v2: %v", err)
	}
	if cfg.Version != 2 {
		t.Errorf("Version = %d, want 2", cfg.Version)
	}
	if cfg.Agent != agent.Default {
		t.Errorf("Agent = %q, want %q", cfg.Agent, agent.Default)
	}
	if cfg.Catalog != DefaultCatalog || cfg.SkillsDir != DefaultSkillsDir {
		t.Errorf("paths = %q, %q", cfg.Catalog, cfg.SkillsDir)
	}
	if cfg.InstallDir != ".claude/skills" {
		t.Errorf("InstallDir = %q, want preserved", cfg.InstallDir)
	}
}

func TestLoadMigratesV1File(t *testing.T) {
	dir := t.TempDir()
	data := "version: 1\nproduct: Legacy\nrepo_url: https://example.com/legacy.git\ninstall_dir: .claude/skills\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Version != CurrentVersion || cfg.Agent != agent.Default {
		t.Errorf("loaded = %+v", cfg)
	}
}
