package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureGitignoreEntry_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitignore")
	if err := ensureGitignoreEntry(path, "install-*.sh"); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "install-*.sh\n" {
		t.Errorf(".gitignore = %q", got)
	}
}

func TestEnsureGitignoreEntry_AppendsWithNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitignore")
	if err := os.WriteFile(path, []byte("node_modules/"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := ensureGitignoreEntry(path, "install-*.ps1"); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "node_modules/\ninstall-*.ps1\n" {
		t.Errorf(".gitignore = %q", got)
	}
}

func TestIgnoreGeneratedScripts_Idempotent(t *testing.T) {
	dir := t.TempDir()
	for range 2 {
		if err := ignoreGeneratedScripts(dir); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if string(got) != "install-*.sh\ninstall-*.ps1\n" {
		t.Errorf(".gitignore = %q", got)
	}
}

func TestOfferIgnoreGeneratedScripts(t *testing.T) {
	dir := t.TempDir()
	if err := offerIgnoreGeneratedScripts(dir, strings.NewReader("n\n")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".gitignore")); !os.IsNotExist(err) {
		t.Fatal("expected no .gitignore when user declines")
	}

	// Empty answer means yes.
	if err := offerIgnoreGeneratedScripts(dir, strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".gitignore")); err != nil {
		t.Errorf("expected .gitignore after accepting: %v", err)
	}
}
