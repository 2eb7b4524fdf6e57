package e2e_test

import (
	"strings"
	"testing"
)

type groupJSON struct {
	Category string `json:"category"`
	Skills   []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"skills"`
}

func TestListEmbeddedCatalog(t *testing.T) {
	dir := t.TempDir()

	var groups []groupJSON
	r := runSkillzJSON(t, dir, &groups, "list")
	if r.exitCode != 0 {
		t.Fatalf("list failed (exit %d): %s", r.exitCode, r.stderr)
	}
	if len(groups) < 2 {
		t.Fatalf("expected several categories, got %d", len(groups))
	}
	if last := groups[len(groups)-1].Category; last != "General" {
		t.Errorf("last category = %q, want General", last)
	}
}

func TestListFilters(t *testing.T) {
	dir := t.TempDir()

	var groups []groupJSON
	r := runSkillzJSON(t, dir, &groups, "list", "--match", "cloudflare-*", "--search", "worker")
	if r.exitCode != 0 {
		t.Fatalf("list failed: %s", r.stderr)
	}
	if len(groups) != 1 || groups[0].Category != "Cloudflare" {
		t.Fatalf("groups = %+v", groups)
	}
	for _, s := range groups[0].Skills {
		if !strings.HasPrefix(s.Name, "cloudflare-") {
			t.Errorf("unexpected skill %q", s.Name)
		}
	}
}

func TestListInvalidPattern(t *testing.T) {
	errResp := runSkillzJSONError(t, t.TempDir(), "list", "--match", "[oops")
	if errResp.Code != codeInvalidInput {
		t.Errorf("code = %q, want %q", errResp.Code, codeInvalidInput)
	}
}

func TestListCompact(t *testing.T) {
	r := runSkillz(t, t.TempDir(), "--compact", "list", "--match", skillWorkers)
	if r.exitCode != 0 {
		t.Fatalf("list failed: %s", r.stderr)
	}
	if !strings.HasPrefix(r.stdout, skillWorkers+" [Cloudflare] ") {
		t.Errorf("compact output = %q", r.stdout)
	}
}

func TestCategories(t *testing.T) {
	var counts []struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}
	r := runSkillzJSON(t, t.TempDir(), &counts, "categories")
	if r.exitCode != 0 {
		t.Fatalf("categories failed: %s", r.stderr)
	}
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		t.Error("categories reported no skills")
	}
}

func TestCatalogFlagMissing(t *testing.T) {
	errResp := runSkillzJSONError(t, t.TempDir(), "--catalog", "missing.json", "list")
	if errResp.Code != codeCatalogNotFound {
		t.Errorf("code = %q, want %q", errResp.Code, codeCatalogNotFound)
	}
}
