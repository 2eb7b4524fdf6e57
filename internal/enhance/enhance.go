// Package enhance replaces placeholder catalog descriptions with summaries
// extracted from each skill's SKILL.md.
package enhance

import (
	"context"
	"errors"
	"log/slog"

	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/describe"
	"github.com/antopolskiy/skillz/internal/logging"
)

// Status is the per-skill result of a run.
type Status string

const (
	StatusEnhanced Status = "enhanced"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
)

// Outcome records what happened to one skill.
type Outcome struct {
	Name        string            `json:"name"`
	Status      Status            `json:"status"`
	Description string            `json:"description,omitempty"`
	Rule        describe.RuleName `json:"rule,omitempty"`
	Reason      string            `json:"reason,omitempty"`
}

// Report summarizes a run.
type Report struct {
	Candidates int       `json:"candidates"`
	Enhanced   int       `json:"enhanced"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
	DryRun     bool      `json:"dry_run"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Changed reports whether the catalog was (or would be) modified.
func (r Report) Changed() bool { return r.Enhanced > 0 }

// Options configures Run.
type Options struct {
	// DryRun computes outcomes without touching the catalog.
	DryRun bool
	Logger *slog.Logger
}

const (
	reasonNoMatch   = "could not extract a better description"
	reasonUnchanged = "extracted description is unchanged"
	reasonMissing   = "SKILL.md not found"
)

// Run processes every catalog item whose description is a placeholder.
// Items are updated in place unless opts.DryRun is set. A cancelled context
// stops the run between items and returns the partial report with ctx.Err().
func Run(ctx context.Context, cat *catalog.Catalog, src DocumentSource, opts Options) (Report, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	var candidates []string
	for _, it := range cat.Skills {
		if describe.IsGeneric(it.Description) {
			candidates = append(candidates, it.Name)
		}
	}

	report := Report{Candidates: len(candidates), DryRun: opts.DryRun, Outcomes: []Outcome{}}
	log.Info("found skills with generic descriptions", "count", len(candidates))

	for _, name := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		out := process(cat, src, name, opts.DryRun)
		report.Outcomes = append(report.Outcomes, out)

		switch out.Status {
		case StatusEnhanced:
			report.Enhanced++
			log.Info("enhanced", "skill", name, "rule", out.Rule, "description", out.Description)
		case StatusSkipped:
			report.Skipped++
			log.Warn("skipped", "skill", name, "reason", out.Reason)
		case StatusFailed:
			report.Failed++
			log.Warn("failed", "skill", name, "reason", out.Reason)
		}
	}

	log.Info("summary",
		"enhanced", report.Enhanced,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"total", report.Candidates,
		"dry_run", report.DryRun)
	return report, nil
}

func process(cat *catalog.Catalog, src DocumentSource, name string, dryRun bool) Outcome {
	doc, err := src.Document(name)
	if errors.Is(err, ErrDocumentNotFound) {
		return Outcome{Name: name, Status: StatusSkipped, Reason: reasonMissing}
	}
	if err != nil {
		return Outcome{Name: name, Status: StatusFailed, Reason: err.Error()}
	}

	res := describe.Extract(doc, name)
	if !res.OK {
		return Outcome{Name: name, Status: StatusFailed, Reason: reasonNoMatch}
	}
	current, _ := cat.Find(name)
	if res.Description == current.Description {
		return Outcome{Name: name, Status: StatusFailed, Rule: res.Rule, Reason: reasonUnchanged}
	}

	if !dryRun {
		cat.SetDescription(name, res.Description)
	}
	return Outcome{Name: name, Status: StatusEnhanced, Description: res.Description, Rule: res.Rule}
}
