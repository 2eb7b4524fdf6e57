package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/enhance"
)

func plainStyles(t *testing.T) {
	t.Helper()
	oldHeader, oldCategory, oldDim, oldOK, oldWarn := headerStyle, categoryStyle, dimStyle, okStyle, warnStyle
	t.Cleanup(func() {
		headerStyle, categoryStyle, dimStyle, okStyle, warnStyle = oldHeader, oldCategory, oldDim, oldOK, oldWarn
	})
	DisableColor()
}

var groups = catalog.Group([]catalog.Item{
	{Name: "cloudflare-workers", Description: "Deploy serverless code at the edge.", Category: "Cloudflare"},
	{Name: "d1", Description: strings.Repeat("long ", 30), Category: "Cloudflare"},
	{Name: "brainstorming", Description: "Refine rough ideas."},
})

func TestCatalogTable(t *testing.T) {
	plainStyles(t)

	var buf strings.Builder
	CatalogTable(&buf, groups)
	out := buf.String()

	for _, want := range []string{"Cloudflare (2)", "General (1)", "NAME", "cloudflare-workers", "Refine rough ideas."} {
		if !strings.Contains(out, want) {
			t.Errorf("CatalogTable output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Cloudflare (2)") > strings.Index(out, "General (1)") {
		t.Errorf("General should be listed last:\n%s", out)
	}
	if !strings.Contains(out, "...") {
		t.Errorf("long description not truncated:\n%s", out)
	}
}

func TestCatalogTableEmptyWritesNothing(t *testing.T) {
	var buf strings.Builder
	CatalogTable(&buf, nil)
	// "No skills found." is written to stderr, not the writer.
	if buf.String() != "" {
		t.Errorf("CatalogTable empty output to writer = %q, want empty", buf.String())
	}
}

func TestCatalogTableColumnAlignment(t *testing.T) {
	// Force ANSI output so escape bytes would show up as misalignment.
	oldHeader := headerStyle
	t.Cleanup(func() { headerStyle = oldHeader })
	lipgloss.SetColorProfile(termenv.ANSI256)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))

	var buf strings.Builder
	CatalogTable(&buf, groups[:1])
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}

	header, row := lines[1], lines[2]
	descCol := strings.Index(row, "Deploy")
	if descCol < 0 {
		t.Fatalf("row missing description: %q", row)
	}
	plainHeader := []rune(stripANSI(header))
	if descCol >= len(plainHeader) || string(plainHeader[descCol:descCol+len("DESCRIPTION")]) != "DESCRIPTION" {
		t.Errorf("description column misaligned:\nheader: %q\nrow:    %q", stripANSI(header), row)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && r == 'm':
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestCategoryTable(t *testing.T) {
	plainStyles(t)

	var buf strings.Builder
	CategoryTable(&buf, catalog.Categories(groupsItems()))
	out := buf.String()
	for _, want := range []string{"CATEGORY", "Cloudflare", "General", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("CategoryTable output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "      3") {
		t.Errorf("CategoryTable total missing:\n%s", out)
	}
}

func groupsItems() []catalog.Item {
	var items []catalog.Item
	for _, g := range groups {
		items = append(items, g.Items...)
	}
	return items
}

func TestEnhanceTable(t *testing.T) {
	plainStyles(t)

	r := enhance.Report{
		Candidates: 2, Enhanced: 1, Skipped: 1, DryRun: true,
		Outcomes: []enhance.Outcome{
			{Name: "docker-compose", Status: enhance.StatusEnhanced, Description: "Runs containers."},
			{Name: "missing", Status: enhance.StatusSkipped, Reason: "SKILL.md not found"},
		},
	}

	var buf strings.Builder
	EnhanceTable(&buf, r)
	out := buf.String()
	for _, want := range []string{"enhanced docker-compose", "Runs containers.", "skipped missing: SKILL.md not found", "Enhanced:", "dry run"} {
		if !strings.Contains(out, want) {
			t.Errorf("EnhanceTable output missing %q:\n%s", want, out)
		}
	}
}

func TestMessagefWritesToWriter(t *testing.T) {
	var buf strings.Builder
	Messagef(&buf, "hello %s", "world")
	if buf.String() != "hello world\n" {
		t.Errorf("Messagef output = %q, want %q", buf.String(), "hello world\n")
	}
}

func TestJSONWritesToWriter(t *testing.T) {
	var buf strings.Builder
	if err := JSON(&buf, map[string]string{"key": "a<b"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"key": "a<b"`) {
		t.Errorf("JSON output missing content:\n%s", buf.String())
	}
}

func TestJSONErrorWritesToWriter(t *testing.T) {
	var buf strings.Builder
	JSONError(&buf, "TEST_CODE", "test message", map[string]any{"skill": "x"})
	for _, want := range []string{`"code": "TEST_CODE"`, `"error": "test message"`, `"skill": "x"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("JSONError output missing %s:\n%s", want, buf.String())
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("abcdefghijkl", 8); got != "abcde..." {
		t.Errorf("truncate = %q, want abcde...", got)
	}
}
