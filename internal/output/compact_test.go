package output

import (
	"strings"
	"testing"

	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/enhance"
)

func TestCatalogCompact(t *testing.T) {
	var buf strings.Builder
	CatalogCompact(&buf, catalog.Group([]catalog.Item{
		{Name: "b", Description: "Second.", Category: "Web"},
		{Name: "a", Description: "First."},
	}))
	want := "b [Web] Second.\na [General] First.\n"
	if buf.String() != want {
		t.Errorf("CatalogCompact = %q, want %q", buf.String(), want)
	}
}

func TestCategoryCompact(t *testing.T) {
	var buf strings.Builder
	CategoryCompact(&buf, []catalog.CategoryCount{{Category: "Web", Count: 2}, {Category: "General", Count: 1}})
	if buf.String() != "Web: 2\nGeneral: 1\n" {
		t.Errorf("CategoryCompact = %q", buf.String())
	}
}

func TestEnhanceCompact(t *testing.T) {
	var buf strings.Builder
	EnhanceCompact(&buf, enhance.Report{
		Candidates: 2, Enhanced: 1, Failed: 1,
		Outcomes: []enhance.Outcome{
			{Name: "a", Status: enhance.StatusEnhanced, Description: "Does A."},
			{Name: "b", Status: enhance.StatusFailed, Reason: "could not extract a better description"},
		},
	})
	want := "enhanced a: Does A.\nfailed b: could not extract a better description\nenhanced:1 failed:1 skipped:0 total:2\n"
	if buf.String() != want {
		t.Errorf("EnhanceCompact = %q, want %q", buf.String(), want)
	}
}
