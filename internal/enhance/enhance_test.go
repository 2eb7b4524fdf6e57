package enhance

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/describe"
	"github.com/antopolskiy/skillz/internal/logging"
)

const composeDoc = "---\nname: docker-compose\n---\n# Docker Compose\n\nOrchestrates multi-container applications with compose files.\n"

func newCatalog() *catalog.Catalog {
	return &catalog.Catalog{Skills: []catalog.Item{
		{Name: "docker-compose", Description: "Claude Code skill for Docker Compose"},
		{Name: "kept", Description: "Already has a real description."},
		{Name: "vague", Description: "claude code skill for Vague"},
		{Name: "missing", Description: "Claude Code skill for Missing"},
	}}
}

func TestRun(t *testing.T) {
	cat := newCatalog()
	src := MapSource{
		"docker-compose": composeDoc,
		"kept":           composeDoc,
		"vague":          "tiny",
	}

	report, err := Run(context.Background(), cat, src, Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if report.Candidates != 3 || report.Enhanced != 1 || report.Failed != 1 || report.Skipped != 1 {
		t.Errorf("report = %+v, want 3 candidates, 1 enhanced, 1 failed, 1 skipped", report)
	}
	if !report.Changed() {
		t.Error("Changed() = false")
	}

	want := "Orchestrates multi-container applications with compose files."
	if it, _ := cat.Find("docker-compose"); it.Description != want {
		t.Errorf("docker-compose description = %q, want %q", it.Description, want)
	}
	if it, _ := cat.Find("kept"); it.Description != "Already has a real description." {
		t.Errorf("non-generic description changed to %q", it.Description)
	}
	if it, _ := cat.Find("vague"); !describe.IsGeneric(it.Description) {
		t.Errorf("failed item changed to %q", it.Description)
	}

	statuses := map[string]Status{}
	for _, o := range report.Outcomes {
		statuses[o.Name] = o.Status
	}
	if statuses["docker-compose"] != StatusEnhanced || statuses["vague"] != StatusFailed || statuses["missing"] != StatusSkipped {
		t.Errorf("outcomes = %v", statuses)
	}
	if report.Outcomes[0].Rule != describe.RuleHeadingParagraph {
		t.Errorf("rule = %q, want %q", report.Outcomes[0].Rule, describe.RuleHeadingParagraph)
	}
}

func TestRunDryRun(t *testing.T) {
	cat := newCatalog()
	report, err := Run(context.Background(), cat, MapSource{"docker-compose": composeDoc}, Options{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if report.Enhanced != 1 || !report.DryRun {
		t.Errorf("report = %+v", report)
	}
	if it, _ := cat.Find("docker-compose"); !describe.IsGeneric(it.Description) {
		t.Errorf("dry run modified catalog: %q", it.Description)
	}
}

type errSource struct{}

func (errSource) Document(string) (string, error) { return "", errors.New("permission denied") }

func TestRunReadErrorFails(t *testing.T) {
	cat := &catalog.Catalog{Skills: []catalog.Item{{Name: "a", Description: "Claude Code skill for A"}}}
	report, err := Run(context.Background(), cat, errSource{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Failed != 1 || report.Outcomes[0].Reason != "permission denied" {
		t.Errorf("report = %+v", report)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, newCatalog(), MapSource{}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(report.Outcomes) != 0 {
		t.Errorf("processed %d items after cancellation", len(report.Outcomes))
	}
}

func TestRunLogs(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(context.Background(), newCatalog(), MapSource{"docker-compose": composeDoc},
		Options{Logger: logging.New(&buf, logging.Options{})})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"enhanced", "skill=docker-compose", "skipped", "summary"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "docker-compose"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "docker-compose", "SKILL.md"), []byte(composeDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	src := DirSource{Dir: dir}

	doc, err := src.Document("docker-compose")
	if err != nil || doc != composeDoc {
		t.Errorf("Document() = %q, %v", doc, err)
	}
	if _, err := src.Document("absent"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("Document(absent) error = %v, want ErrDocumentNotFound", err)
	}
}
