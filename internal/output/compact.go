package output

import (
	"fmt"
	"io"
	"os"

	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/enhance"
)

// CatalogCompact renders one line per skill: name, category, description.
func CatalogCompact(w io.Writer, groups []catalog.CategoryGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(os.Stderr, "No skills found.")
		return
	}
	for _, g := range groups {
		for _, it := range g.Items {
			fmt.Fprintf(w, "%s [%s] %s\n", it.Name, g.Category, it.Description)
		}
	}
}

// CategoryCompact renders one "category: count" line per category.
func CategoryCompact(w io.Writer, counts []catalog.CategoryCount) {
	for _, c := range counts {
		fmt.Fprintf(w, "%s: %d\n", c.Category, c.Count)
	}
}

// EnhanceCompact renders one line per outcome followed by the counters.
func EnhanceCompact(w io.Writer, r enhance.Report) {
	for _, o := range r.Outcomes {
		detail := o.Reason
		if o.Status == enhance.StatusEnhanced {
			detail = o.Description
		}
		fmt.Fprintf(w, "%s %s: %s\n", o.Status, o.Name, detail)
	}
	fmt.Fprintf(w, "enhanced:%d failed:%d skipped:%d total:%d\n",
		r.Enhanced, r.Failed, r.Skipped, r.Candidates)
}
